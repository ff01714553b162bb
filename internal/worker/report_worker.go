// Package worker turns queued report requests into rendered reports.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"kassa/internal/amqp"
	"kassa/internal/render"
	"kassa/internal/report"
)

// ReportWorker consumes report requests and runs the full pipeline for each.
type ReportWorker struct {
	generator *report.Generator
	renderer  render.Renderer
}

func NewReportWorker(generator *report.Generator, renderer render.Renderer) *ReportWorker {
	return &ReportWorker{generator: generator, renderer: renderer}
}

// HandleRequest processes a single report request message.
func (w *ReportWorker) HandleRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error {
	from, to, err := msg.Window()
	if err != nil {
		return fmt.Errorf("report request window: %w", err)
	}

	slog.InfoContext(ctx, "Processing report request", "from", msg.From, "to", msg.To)

	r, err := w.generator.Generate(ctx, from, to)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	if err := w.renderer.Render(ctx, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Run consumes requests until the context is canceled.
func (w *ReportWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeReportRequests(ctx, func(msg *amqp.ReportRequestMessage) error {
		return w.HandleRequest(ctx, msg)
	})
}
