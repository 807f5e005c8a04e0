package utils

import (
	"math"
	"strconv"
)

var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// FormatFileSize renders size (in bytes, decimal units of 1000) as a
// human-readable string with at most decimals fractional digits, trailing
// zeros dropped: 1536 → "1.54 KB", 2000 → "2 KB", 0 → "0 Bytes".
func FormatFileSize(size int64, decimals int) string {
	if size <= 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 2
	}

	index := int(math.Floor(math.Log(float64(size)) / math.Log(1000)))
	if index >= len(fileSizeUnits) {
		index = len(fileSizeUnits) - 1
	}

	value := float64(size) / math.Pow(1000, float64(index))
	scale := math.Pow(10, float64(decimals))
	value = math.Round(value*scale) / scale

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + fileSizeUnits[index]
}
