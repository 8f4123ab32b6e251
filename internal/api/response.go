package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Envelope is the result of a successful call.
type Envelope struct {
	Success bool
	// Data is the raw JSON body; nil for an empty body.
	Data   json.RawMessage
	Status int
	// Headers maps lower-cased header names to their values; repeated
	// headers are joined with ", ".
	Headers map[string]string
}

var errInvalidJSON = errors.New("invalid JSON in response body")

func newEnvelope(resp *http.Response, body []byte) (*Envelope, error) {
	var data json.RawMessage
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		if !json.Valid(trimmed) {
			return nil, errInvalidJSON
		}
		data = json.RawMessage(trimmed)
	}

	return &Envelope{
		Success: true,
		Data:    data,
		Status:  resp.StatusCode,
		Headers: flattenHeaders(resp.Header),
	}, nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		key := strings.ToLower(k)
		if prev, ok := out[key]; ok {
			out[key] = prev + ", " + strings.Join(vv, ", ")
			continue
		}
		out[key] = strings.Join(vv, ", ")
	}
	return out
}
