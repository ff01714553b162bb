package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"kassa/internal/core"
)

type fakeSource struct {
	cashIn  []core.RawTransaction
	cashOut []core.RawTransaction
	err     error
}

func (f *fakeSource) CashIn(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error) {
	return f.cashIn, f.err
}

func (f *fakeSource) CashOut(ctx context.Context, from, to time.Time) ([]core.RawTransaction, error) {
	return f.cashOut, f.err
}

var (
	pipelineCurrencies = core.NewCurrencyTable("currency/pln-0001", "currency/usd-0002", "currency/eur-0003")
	pipelinePayments   = core.PaymentTable{Cash: "Cash-in-showroom", Card: "Card-in-showroom"}
)

func raw(id, moment string, minor int64, currencyRef, paymentType string) core.RawTransaction {
	return core.RawTransaction{
		AmountMinor: minor,
		CurrencyRef: currencyRef,
		Attributes:  []core.Attribute{{Name: core.AttrPaymentType, Value: paymentType}},
		Moment:      moment,
		OrderID:     id,
		Applicable:  true,
	}
}

func TestGenerate(t *testing.T) {
	src := &fakeSource{
		cashIn: []core.RawTransaction{
			raw("IN-1", "2023-01-01 09:00:00", 10000, "currency/pln-0001", "Cash-in-showroom"),
			raw("IN-2", "2023-01-03 09:00:00", 20000, "currency/usd-0002", "Card-in-showroom"),
		},
		cashOut: []core.RawTransaction{
			raw("OUT-1", "2023-01-02 09:00:00", 5000, "currency/pln-0001", "Cash-in-showroom"),
		},
	}
	g := NewGenerator(src, core.Normalizer{Currencies: pipelineCurrencies, Payments: pipelinePayments})

	r, err := g.Generate(context.Background(), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := r.Summary[0].Cash.StringFixed(2); got != "50.00" {
		t.Fatalf("PLN cash = %s, want 50.00", got)
	}
	if got := r.Summary[1].Card.StringFixed(2); got != "200.00" {
		t.Fatalf("USD card = %s, want 200.00", got)
	}

	var ids []string
	for _, d := range r.Details {
		ids = append(ids, d.OrderID)
	}
	want := []string{"IN-1", "OUT-1", "IN-2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("detail order = %v, want %v", ids, want)
		}
	}
}

func TestGenerateDropsMalformedTimestamps(t *testing.T) {
	src := &fakeSource{
		cashIn: []core.RawTransaction{
			raw("IN-1", "2023-01-01 09:00:00", 10000, "currency/pln-0001", "Cash-in-showroom"),
			raw("IN-2", "not-a-timestamp", 20000, "currency/pln-0001", "Cash-in-showroom"),
		},
	}
	g := NewGenerator(src, core.Normalizer{Currencies: pipelineCurrencies, Payments: pipelinePayments})

	r, err := g.Generate(context.Background(), time.Time{}, time.Now())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(r.Details) != 1 || r.Details[0].OrderID != "IN-1" {
		t.Fatalf("details = %+v, want only IN-1", r.Details)
	}
}

func TestGenerateAbortsOnStructuralError(t *testing.T) {
	missingName := raw("", "2023-01-01 09:00:00", 10000, "currency/pln-0001", "Cash-in-showroom")
	src := &fakeSource{cashIn: []core.RawTransaction{missingName}}
	g := NewGenerator(src, core.Normalizer{Currencies: pipelineCurrencies, Payments: pipelinePayments})

	r, err := g.Generate(context.Background(), time.Time{}, time.Now())
	if !errors.Is(err, core.ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
	if r != nil {
		t.Fatal("no partial report on structural failure")
	}
}

func TestGenerateFetchError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	g := NewGenerator(src, core.Normalizer{Currencies: pipelineCurrencies, Payments: pipelinePayments})

	if _, err := g.Generate(context.Background(), time.Time{}, time.Now()); err == nil {
		t.Fatal("expected fetch error")
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	g := NewGenerator(&fakeSource{}, core.Normalizer{Currencies: pipelineCurrencies, Payments: pipelinePayments})
	r, err := g.Generate(context.Background(), time.Time{}, time.Now())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(r.Summary) != 3 || len(r.Details) != 0 {
		t.Fatalf("unexpected report: %+v", r)
	}
	for _, s := range r.Summary {
		if !s.Cash.IsZero() || !s.Card.IsZero() || s.Count != 0 {
			t.Fatalf("non-zero summary for empty input: %+v", s)
		}
	}
}
