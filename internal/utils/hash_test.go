// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", digest)
	assert.True(t, ComparePassword(digest, "secret1"))
	assert.False(t, ComparePassword(digest, "secret2"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same password must produce different digests")
}

func TestHashPassword_CostFallback(t *testing.T) {
	digest, err := HashPassword("secret1", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestComparePassword_GarbageDigest(t *testing.T) {
	assert.False(t, ComparePassword("not-a-bcrypt-digest", "secret1"))
}

func TestGenerateResetToken(t *testing.T) {
	const userID = "0190a5b2-0000-7000-8000-000000000001"

	first, err := GenerateResetToken(userID)
	require.NoError(t, err)
	second, err := GenerateResetToken(userID)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(first, userID))
	assert.Len(t, first, 2*resetTokenEntropy+len(userID))
	assert.NotEqual(t, first, second)

	_, err = hex.DecodeString(strings.TrimSuffix(first, userID))
	assert.NoError(t, err, "random part must be hex")
}

func TestHashToken(t *testing.T) {
	raw := "abc123"
	sum := sha256.Sum256([]byte(raw))

	assert.Equal(t, hex.EncodeToString(sum[:]), HashToken(raw))
	assert.Equal(t, HashToken(raw), HashToken(raw))
	assert.NotEqual(t, HashToken(raw), HashToken(raw+"x"))
	assert.Len(t, HashToken(raw), 64)
}
