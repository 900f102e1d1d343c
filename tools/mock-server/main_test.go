package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const digestBody = `{"embeds":[{"title":"2 laptop deals in the latest catalog","color":3066993,"fields":[{"name":"Casper (33% off)","value":"30.000 TL"},{"name":"HP Victus (31% off)","value":"31.000 TL"}]}]}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/1/mock", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func newMux(rec *recorder) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks/{id}/{token}", webhookHandler(testLogger(), rec))
	mux.HandleFunc("GET /messages", messagesHandler(rec))
	return mux
}

func TestWebhook_RecordsDigest(t *testing.T) {
	rec := &recorder{}
	mux := newMux(rec)

	w := post(t, mux, digestBody)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNoContent)
	}

	req := httptest.NewRequest(http.MethodGet, "/messages", http.NoBody)
	mw := httptest.NewRecorder()
	mux.ServeHTTP(mw, req)

	var got []webhookPayload
	if err := json.NewDecoder(mw.Body).Decode(&got); err != nil {
		t.Fatalf("decoding messages: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("messages=%d, want 1", len(got))
	}
	if n := len(got[0].Embeds[0].Fields); n != 2 {
		t.Errorf("fields=%d, want 2", n)
	}
	if got[0].Embeds[0].Color != 3066993 {
		t.Errorf("color=%d, want 3066993", got[0].Embeds[0].Color)
	}
}

func TestWebhook_RejectsEmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no embeds", body: `{"embeds":[]}`},
		{name: "not json", body: `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			w := post(t, newMux(rec), tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
			}
			if len(rec.all()) != 0 {
				t.Error("rejected payload must not be recorded")
			}
		})
	}
}

func TestWebhook_RateLimitEvery(t *testing.T) {
	rec := &recorder{limitEvery: 2, retryAfterS: 0.5}
	mux := newMux(rec)

	want := []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusNoContent, http.StatusTooManyRequests}
	for i, code := range want {
		w := post(t, mux, digestBody)
		if w.Code != code {
			t.Fatalf("call %d: status=%d, want %d", i+1, w.Code, code)
		}
		if code != http.StatusTooManyRequests {
			continue
		}
		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decoding 429 body: %v", err)
		}
		if body["retry_after"] != 0.5 {
			t.Errorf("retry_after=%v, want 0.5", body["retry_after"])
		}
	}

	if n := len(rec.all()); n != 2 {
		t.Errorf("recorded=%d, want 2", n)
	}
}

func TestWebhook_WrongPath(t *testing.T) {
	mux := newMux(&recorder{})
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/1", strings.NewReader(digestBody))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}
