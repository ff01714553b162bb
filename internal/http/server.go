// Package http exposes report generation over a small HTTP surface.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"kassa/internal/log"
	"kassa/internal/report"
)

// Publisher queues a report request for asynchronous generation.
type Publisher interface {
	PublishReportRequest(ctx context.Context, from, to time.Time) error
}

// NewServer builds the HTTP server. The publisher is optional; without it
// the async endpoint responds 503.
func NewServer(addr string, generator *report.Generator, publisher Publisher) *http.Server {
	h := &handler{generator: generator, publisher: publisher}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /api/report", h.generateReport)
	mux.HandleFunc("POST /api/report/async", h.queueReport)

	return &http.Server{
		Addr:           addr,
		Handler:        logRequests(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   120 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

// logRequests logs one line per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldComponent, log.ComponentHTTP,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}
