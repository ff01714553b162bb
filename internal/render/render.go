// Package render defines the outbound port for report backends.
package render

import (
	"context"

	"kassa/internal/report"
)

// Renderer writes a finished report to some spreadsheet backend.
type Renderer interface {
	Render(ctx context.Context, r *report.Report) error
}
