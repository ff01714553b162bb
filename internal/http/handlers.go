package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"kassa/internal/log"
	"kassa/internal/render/excel"
	"kassa/internal/report"
)

const dateLayout = "2006-01-02"

type handler struct {
	generator *report.Generator
	publisher Publisher
}

type reportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// generateReport runs the pipeline synchronously and streams the workbook.
func (h *handler) generateReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.generator.Generate(r.Context(), from, to)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation failed", log.FieldError, err)
		http.Error(w, "report generation failed", http.StatusBadGateway)
		return
	}

	f, err := excel.Workbook(rep)
	if err != nil {
		slog.ErrorContext(r.Context(), "Workbook build failed", log.FieldError, err)
		http.Error(w, "report rendering failed", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="financial_report.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.ErrorContext(r.Context(), "Workbook write failed", log.FieldError, err)
	}
}

// queueReport publishes the request for the worker to pick up.
func (h *handler) queueReport(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		http.Error(w, "async generation not configured", http.StatusServiceUnavailable)
		return
	}
	from, to, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.publisher.PublishReportRequest(r.Context(), from, to); err != nil {
		slog.ErrorContext(r.Context(), "Publish report request failed", log.FieldError, err)
		http.Error(w, "failed to queue report", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintln(w, "queued")
}

// parseWindow reads the date window from the JSON body, falling back to
// query parameters. Missing dates default to 2022-01-01..today, matching
// the report form's defaults.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	var req reportRequest
	if r.Body != nil {
		// An empty or non-JSON body just means "use the defaults".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.From == "" {
		req.From = r.URL.Query().Get("from")
	}
	if req.To == "" {
		req.To = r.URL.Query().Get("to")
	}

	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Now().UTC().Truncate(24 * time.Hour)

	var err error
	if req.From != "" {
		if from, err = time.Parse(dateLayout, req.From); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q", req.From)
		}
	}
	if req.To != "" {
		if to, err = time.Parse(dateLayout, req.To); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q", req.To)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %s precedes from date %s", req.To, req.From)
	}
	return from, to, nil
}
