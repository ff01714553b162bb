package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"kassa/internal/core"
)

// Source feeds raw orders into the pipeline, one call per flow direction.
// The implementation owns pagination, auth and date-window filtering.
type Source interface {
	CashIn(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error)
	CashOut(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error)
}

// Generator runs a full report: fetch both directions, normalize, aggregate,
// assemble. A run either returns a complete report or fails with no partial
// result.
type Generator struct {
	source     Source
	normalizer core.Normalizer
}

func NewGenerator(source Source, normalizer core.Normalizer) *Generator {
	return &Generator{source: source, normalizer: normalizer}
}

// Generate produces the report for the given date window.
func (g *Generator) Generate(ctx context.Context, from, to time.Time) (*Report, error) {
	var cashIn, cashOut []core.RawTransaction

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cashIn, err = g.source.CashIn(egCtx, from, to)
		if err != nil {
			return fmt.Errorf("fetch cash-in orders: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		cashOut, err = g.source.CashOut(egCtx, from, to)
		if err != nil {
			return fmt.Errorf("fetch cash-out orders: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	transactions := make([]core.Transaction, 0, len(cashIn)+len(cashOut))
	var err error
	if transactions, err = g.normalize(ctx, transactions, cashIn, core.Income); err != nil {
		return nil, err
	}
	if transactions, err = g.normalize(ctx, transactions, cashOut, core.Expense); err != nil {
		return nil, err
	}

	totals, rows := core.Aggregate(transactions)
	slog.InfoContext(ctx, "Report aggregated",
		"transactions", len(transactions),
		"detail_rows", len(rows),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))

	return Build(totals, rows, from, to), nil
}

// normalize appends the normalized form of each raw order to dst. Skippable
// orders are dropped (malformed timestamps with a log line); structural
// errors abort the run.
func (g *Generator) normalize(ctx context.Context, dst []core.Transaction, raws []core.RawTransaction, direction core.FlowDirection) ([]core.Transaction, error) {
	for _, raw := range raws {
		tx, err := g.normalizer.Normalize(raw, direction)
		switch {
		case err == nil:
			dst = append(dst, tx)
		case errors.Is(err, core.ErrBadTimestamp):
			slog.WarnContext(ctx, "Dropping order with malformed timestamp",
				"order", raw.OrderID,
				"moment", raw.Moment,
				"direction", string(direction))
		case errors.Is(err, core.ErrNotApplicable), errors.Is(err, core.ErrUnclassified):
			slog.DebugContext(ctx, "Skipping order", "order", raw.OrderID, "reason", err)
		default:
			return nil, fmt.Errorf("normalize %s order: %w", direction, err)
		}
	}
	return dst, nil
}
