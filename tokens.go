package mashub

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// TokensService manages tokenized assets.
type TokensService struct {
	client *Client
}

// Create tokenizes an asset.
func (s *TokensService) Create(ctx context.Context, req TokenizationRequest) (*Token, error) {
	return post[*Token](ctx, s.client, "/tokenization", req)
}

// List lists tokens matching filter.
func (s *TokensService) List(ctx context.Context, filter TokenFilter) (*Page[Token], error) {
	q := url.Values{}
	addIf(q, "asset_type", string(filter.AssetType))
	addIf(q, "status", string(filter.Status))
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	return list[Token](ctx, s.client, withQuery("/tokenization", q))
}

// Get returns a token by ID.
func (s *TokensService) Get(ctx context.Context, id string) (*Token, error) {
	return call[*Token](ctx, s.client, "/tokenization/"+pathSegment(id))
}

// Transfer moves token units to another wallet.
func (s *TokensService) Transfer(ctx context.Context, id string, req TransferRequest) (json.RawMessage, error) {
	return post[json.RawMessage](ctx, s.client, "/tokenization/"+pathSegment(id)+"/transfer", req)
}
