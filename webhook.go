package mashub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// maxWebhookBody caps the size of a delivered webhook payload.
const maxWebhookBody = 1 << 20

// ParseWebhookEvent decodes a webhook payload delivered to a callback URL.
// Malformed payloads and payloads without an id or event type are
// Validation errors.
func ParseWebhookEvent(data []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, apierrors.Validation(fmt.Sprintf("invalid webhook payload: %v", err))
	}
	if ev.ID == "" {
		return nil, apierrors.Validation("webhook event has no id")
	}
	if ev.EventType == "" {
		return nil, apierrors.Validation("webhook event has no event_type")
	}
	if ev.Payload == nil {
		ev.Payload = map[string]any{}
	}
	return &ev, nil
}

// WebhookHandler returns an http.Handler that decodes POSTed events and
// passes them to fn. It replies 400 to malformed payloads, 405 to other
// methods and 500 when fn fails.
func WebhookHandler(fn func(*http.Request, *WebhookEvent) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		ev, err := ParseWebhookEvent(data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := fn(r, ev); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
