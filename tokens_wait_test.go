package mashub

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestTokens_WaitForConfirmation(t *testing.T) {
	tests := []struct {
		name   string
		final  string
		status TokenStatus
	}{
		{"confirmed", "confirmed", TokenConfirmed},
		{"failed", "failed", TokenFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/tokenization/tok-1" {
					t.Errorf("path = %q", r.URL.Path)
				}
				if calls.Add(1) < 3 {
					writeJSON(w, http.StatusOK, `{"id":"tok-1","status":"pending"}`)
					return
				}
				writeJSON(w, http.StatusOK, `{"id":"tok-1","status":"`+tt.final+`"}`)
			})

			token, err := client.Tokens.WaitForConfirmation(context.Background(), "tok-1",
				WithPollInterval(time.Millisecond))
			if err != nil {
				t.Fatalf("WaitForConfirmation() error = %v", err)
			}
			if token.Status != tt.status {
				t.Errorf("Status = %q, want %q", token.Status, tt.status)
			}
			if got := calls.Load(); got != 3 {
				t.Errorf("calls = %d, want 3", got)
			}
		})
	}
}

func TestTokens_WaitForConfirmation_KeepsPollingOnServerError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, `{"message":"busy"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"tok-1","status":"confirmed"}`)
	})

	token, err := client.Tokens.WaitForConfirmation(context.Background(), "tok-1",
		WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("WaitForConfirmation() error = %v", err)
	}
	if token.Status != TokenConfirmed {
		t.Errorf("Status = %q, want confirmed", token.Status)
	}
}

func TestTokens_WaitForConfirmation_StopsOnNotFound(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, `{"message":"no such token"}`)
	})

	_, err := client.Tokens.WaitForConfirmation(context.Background(), "missing",
		WithPollInterval(time.Millisecond))
	if err == nil {
		t.Fatal("WaitForConfirmation() error = nil")
	}
	if err.Error() != "Not found: no such token" {
		t.Errorf("error = %q", err.Error())
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestTokens_WaitForConfirmation_Timeout(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"tok-1","status":"pending"}`)
	})

	start := time.Now()
	_, err := client.Tokens.WaitForConfirmation(context.Background(), "tok-1",
		WithPollInterval(5*time.Millisecond),
		WithWaitTimeout(50*time.Millisecond))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("wait took %v", elapsed)
	}
}

func TestNextPollInterval(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{2 * time.Second, 3 * time.Second},
		{10 * time.Second, 15 * time.Second},
		{25 * time.Second, maxPollInterval},
		{maxPollInterval, maxPollInterval},
	}
	for _, tt := range tests {
		if got := nextPollInterval(tt.in); got != tt.want {
			t.Errorf("nextPollInterval(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithJitter_Bounds(t *testing.T) {
	d := 100 * time.Millisecond
	for range 100 {
		got := withJitter(d)
		if got < d || got > d+30*time.Millisecond {
			t.Fatalf("withJitter(%v) = %v, want within [%v, %v]", d, got, d, d+30*time.Millisecond)
		}
	}
}
