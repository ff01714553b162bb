package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"kassa/internal/amqp"
	"kassa/internal/core"
	"kassa/internal/report"
)

type fakeSource struct {
	cashIn []core.RawTransaction
	err    error
}

func (f *fakeSource) CashIn(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error) {
	return f.cashIn, f.err
}

func (f *fakeSource) CashOut(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error) {
	return nil, f.err
}

type captureRenderer struct {
	rendered []*report.Report
	err      error
}

func (r *captureRenderer) Render(ctx context.Context, rep *report.Report) error {
	r.rendered = append(r.rendered, rep)
	return r.err
}

func newWorker(src report.Source, renderer *captureRenderer) *ReportWorker {
	g := report.NewGenerator(src, core.Normalizer{
		Currencies: core.NewCurrencyTable("currency/pln-0001", "currency/usd-0002", "currency/eur-0003"),
		Payments:   core.PaymentTable{Cash: "Cash-in-showroom", Card: "Card-in-showroom"},
	})
	return NewReportWorker(g, renderer)
}

func TestHandleRequest(t *testing.T) {
	src := &fakeSource{cashIn: []core.RawTransaction{{
		AmountMinor: 10000,
		CurrencyRef: "currency/pln-0001",
		Attributes:  []core.Attribute{{Name: core.AttrPaymentType, Value: "Cash-in-showroom"}},
		Moment:      "2023-01-05 10:00:00",
		OrderID:     "IN-1",
		Applicable:  true,
	}}}
	renderer := &captureRenderer{}
	w := newWorker(src, renderer)

	msg := &amqp.ReportRequestMessage{From: "2023-01-01", To: "2023-01-31"}
	if err := w.HandleRequest(context.Background(), msg); err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
	if len(renderer.rendered) != 1 {
		t.Fatalf("rendered = %d reports, want 1", len(renderer.rendered))
	}
	if got := renderer.rendered[0].Summary[0].Cash.StringFixed(2); got != "100.00" {
		t.Fatalf("PLN cash = %s, want 100.00", got)
	}
}

func TestHandleRequestBadWindow(t *testing.T) {
	w := newWorker(&fakeSource{}, &captureRenderer{})
	msg := &amqp.ReportRequestMessage{From: "bad", To: "2023-01-31"}
	if err := w.HandleRequest(context.Background(), msg); err == nil {
		t.Fatal("expected error for bad window")
	}
}

func TestHandleRequestGenerateFailure(t *testing.T) {
	w := newWorker(&fakeSource{err: errors.New("api down")}, &captureRenderer{})
	msg := &amqp.ReportRequestMessage{From: "2023-01-01", To: "2023-01-31"}
	if err := w.HandleRequest(context.Background(), msg); err == nil {
		t.Fatal("expected error when fetch fails")
	}
}

func TestHandleRequestRenderFailure(t *testing.T) {
	renderer := &captureRenderer{err: errors.New("disk full")}
	w := newWorker(&fakeSource{}, renderer)
	msg := &amqp.ReportRequestMessage{From: "2023-01-01", To: "2023-01-31"}
	if err := w.HandleRequest(context.Background(), msg); err == nil {
		t.Fatal("expected error when render fails")
	}
}
