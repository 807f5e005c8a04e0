package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxRelayErrorBody bounds how much of a relay error body ends up in logs.
const maxRelayErrorBody = 256

// mapHTTPError classifies a mail relay response. 2xx yields nil.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxRelayErrorBody {
		body = body[:maxRelayErrorBody] + "..."
	}
	if body == "" {
		body = http.StatusText(status)
	}

	var kind error
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		kind = ErrRelayAuth
	case status == http.StatusTooManyRequests:
		kind = ErrRelayThrottled
	case status >= http.StatusInternalServerError:
		kind = ErrRelayUnavailable
	case status >= http.StatusBadRequest:
		kind = ErrMailRejected
	default:
		return fmt.Errorf("http %d: %s", status, body)
	}

	return fmt.Errorf("%w (http %d): %s", kind, status, body)
}
