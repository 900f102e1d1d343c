// Package main implements a mock Discord webhook for local development.
// It records every deal digest posted to it, can answer with 429 to exercise
// the notifier's retry path, and lists what it received.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

type embedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type embed struct {
	Title  string       `json:"title"`
	Color  int          `json:"color"`
	Fields []embedField `json:"fields"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// recorder keeps received payloads and decides when to rate limit.
type recorder struct {
	mu          sync.Mutex
	received    []webhookPayload
	calls       int
	limitEvery  int
	retryAfterS float64
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	limitEvery := flag.Int("rate-limit-every", 0, "answer every Nth webhook call with 429 (0 disables)")
	retryAfter := flag.Float64("retry-after", 1, "retry_after seconds reported on 429")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rec := &recorder{limitEvery: *limitEvery, retryAfterS: *retryAfter}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks/{id}/{token}", webhookHandler(logger, rec))
	mux.HandleFunc("GET /messages", messagesHandler(rec))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Discord webhook", "addr", addr,
		"webhook_url", fmt.Sprintf("http://localhost:%d/api/webhooks/1/mock", *port))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// limited counts the call and reports whether it should be rejected.
func (rec *recorder) limited() bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.calls++
	return rec.limitEvery > 0 && rec.calls%rec.limitEvery == 0
}

func (rec *recorder) add(p webhookPayload) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.received = append(rec.received, p)
}

func (rec *recorder) all() []webhookPayload {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]webhookPayload, len(rec.received))
	copy(out, rec.received)
	return out
}

func webhookHandler(logger *slog.Logger, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rec.limited() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{
				"message":     "You are being rate limited.",
				"retry_after": rec.retryAfterS,
				"global":      false,
			})
			logger.Warn("rate limited webhook call")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading body", http.StatusBadRequest)
			return
		}
		var p webhookPayload
		if err := json.Unmarshal(body, &p); err != nil || len(p.Embeds) == 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{"message": "Cannot send an empty message", "code": 50006})
			return
		}

		rec.add(p)
		for _, e := range p.Embeds {
			logger.Info("deal digest received", "title", e.Title, "deals", len(e.Fields), "color", fmt.Sprintf("#%06X", e.Color))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func messagesHandler(rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(rec.all())
	}
}
