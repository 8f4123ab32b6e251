package mashub

import (
	"context"
	"net/http"
	"net/url"
)

// call executes one request and returns the decoded body.
func call[T any](ctx context.Context, c *Client, endpoint string, opts ...RequestOption) (T, error) {
	resp, err := Request[T](ctx, c, endpoint, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Data, nil
}

// post sends body as JSON and returns the decoded response body.
func post[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return call[T](ctx, c, endpoint, WithMethod(http.MethodPost), WithJSON(body))
}

// list fetches a list endpoint, defaulting a missing result or pagination.
func list[T any](ctx context.Context, c *Client, endpoint string) (*Page[T], error) {
	body, err := call[listBody[T]](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	return body.page(), nil
}

// withQuery appends the encoded query to endpoint when q is non-empty.
func withQuery(endpoint string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return endpoint + "?" + enc
	}
	return endpoint
}

// addIf sets key when value is non-empty.
func addIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func pathSegment(s string) string {
	return url.PathEscape(s)
}
