package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// RequestOptions are per-call overrides. They live for one Execute call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is sent as-is when it is []byte, json.RawMessage, string or
	// io.Reader, encoded as multipart when it is *Form, and JSON-encoded
	// otherwise.
	Body any
	// Headers are merged over the defaults and replace same-named ones.
	Headers http.Header
	// RemoveHeaders drops headers after merging, e.g. Content-Type for
	// multipart bodies so the boundary type is used instead.
	RemoveHeaders []string
	// Timeout overrides the configured per-attempt timeout when > 0.
	Timeout time.Duration
	// Retries overrides the configured retry budget when non-nil.
	Retries *int
}

// prepared is a request ready to be replayed on each attempt.
type prepared struct {
	method string
	url    string
	header http.Header
	body   []byte
}

func (p *prepared) newBody() io.Reader {
	if p.body == nil {
		return nil
	}
	return bytes.NewReader(p.body)
}

func (c *Client) prepare(url string, opts RequestOptions) (*prepared, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	body, formType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	return &prepared{
		method: method,
		url:    url,
		header: c.buildHeaders(opts, formType),
		body:   body,
	}, nil
}

// buildHeaders sets the default headers, then merges caller headers on top.
func (c *Client) buildHeaders(opts RequestOptions, formType string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+c.apiKey)
	h.Set("User-Agent", c.userAgent)

	for k, vv := range opts.Headers {
		h.Del(k)
		for _, v := range vv {
			h.Add(k, v)
		}
	}
	for _, k := range opts.RemoveHeaders {
		h.Del(k)
	}
	if formType != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", formType)
	}
	return h
}

// encodeBody renders the body once so every attempt sends identical bytes.
// formType is the multipart content type when body is a *Form.
func encodeBody(body any) (data []byte, formType string, err error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		return b.Encode()
	case []byte:
		return b, "", nil
	case json.RawMessage:
		return b, "", nil
	case string:
		return []byte(b), "", nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, "", apierrors.Generic(fmt.Sprintf("failed to read request body: %v", err))
		}
		return data, "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", apierrors.Generic(fmt.Sprintf("failed to marshal request body: %v", err))
		}
		return data, "", nil
	}
}
