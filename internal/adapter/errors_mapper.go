package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapIdentityError turns a non-2xx identity service answer into a sentinel.
// The response body is kept in the message for operators only.
func mapIdentityError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusBadRequest,
		code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		code == http.StatusNotFound,
		code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: http %d: %s", ErrCredentialRejected, code, body)
	case code == http.StatusTooManyRequests,
		code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrIdentityUnavailable, code, body)
	default:
		return fmt.Errorf("unexpected identity service answer: http %d: %s", code, body)
	}
}

// mapCacheError turns a non-2xx REST cache answer into a sentinel.
func mapCacheError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", ErrCacheCommand, body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrCacheUnavailable, resp.StatusCode(), body)
}
