package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// errorBody is the error payload shape the API returns.
type errorBody struct {
	Message any `json:"message"`
	Error   any `json:"error"`
}

// classifyResponse maps a non-2xx response to a taxonomy error.
func classifyResponse(resp *http.Response, body []byte) *apierrors.Error {
	msg := errorMessage(resp, body)

	var e *apierrors.Error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e = apierrors.Authentication(msg)
	case http.StatusForbidden:
		e = apierrors.Generic("Forbidden: " + msg)
	case http.StatusNotFound:
		e = apierrors.Generic("Not found: " + msg)
	case http.StatusTooManyRequests:
		e = apierrors.Generic("Rate limit exceeded: " + msg)
	case http.StatusInternalServerError:
		e = apierrors.Generic("Server error: " + msg)
	default:
		e = apierrors.Generic(msg)
	}
	return e.WithStatus(resp.StatusCode)
}

// errorMessage takes body.message, then body.error, then falls back to the
// status line when the body is not a JSON object or carries neither.
func errorMessage(resp *http.Response, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if s := nonEmptyString(eb.Message); s != "" {
			return s
		}
		if s := nonEmptyString(eb.Error); s != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp))
}

func nonEmptyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func statusText(resp *http.Response) string {
	if text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
