package core

import (
	"errors"
	"testing"
	"time"
)

var testCurrencies = NewCurrencyTable("currency/pln-0001", "currency/usd-0002", "currency/eur-0003")

func testNormalizer() Normalizer {
	return Normalizer{Currencies: testCurrencies, Payments: testPayments}
}

func rawOrder(minor int64, currencyRef string) RawTransaction {
	return RawTransaction{
		AmountMinor: minor,
		CurrencyRef: currencyRef,
		Attributes:  []Attribute{{Name: AttrPaymentType, Value: "Cash-in-showroom"}},
		Moment:      "2023-04-15 10:30:00.000000",
		OrderID:     "ORD-1",
		Applicable:  true,
	}
}

func TestNormalizeAmountSignAndRounding(t *testing.T) {
	n := testNormalizer()

	tx, err := n.Normalize(rawOrder(12345, "currency/pln-0001"), Income)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := tx.Amount.StringFixed(2); got != "123.45" {
		t.Fatalf("income amount = %s, want 123.45", got)
	}

	tx, err = n.Normalize(rawOrder(12345, "currency/pln-0001"), Expense)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := tx.Amount.StringFixed(2); got != "-123.45" {
		t.Fatalf("expense amount = %s, want -123.45", got)
	}
}

func TestNormalizeFields(t *testing.T) {
	n := testNormalizer()
	raw := rawOrder(5000, "currency/usd-0002")
	raw.Comment = "deposit"

	tx, err := n.Normalize(raw, Income)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !tx.Date.Equal(time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", tx.Date)
	}
	if tx.OrderID != "ORD-1" || tx.Currency != USD || tx.Method != Cash {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.Direction != Income || tx.IsTest || tx.Comment != "deposit" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestNormalizeDateOnlyMoment(t *testing.T) {
	n := testNormalizer()
	raw := rawOrder(100, "currency/pln-0001")
	raw.Moment = "2023-04-15"

	tx, err := n.Normalize(raw, Income)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !tx.Date.Equal(time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", tx.Date)
	}
}

func TestNormalizeSkipConditions(t *testing.T) {
	n := testNormalizer()

	notApplicable := rawOrder(100, "currency/pln-0001")
	notApplicable.Applicable = false
	if _, err := n.Normalize(notApplicable, Income); !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("err = %v, want ErrNotApplicable", err)
	}

	badMoment := rawOrder(100, "currency/pln-0001")
	badMoment.Moment = "15/04/2023 10:30"
	if _, err := n.Normalize(badMoment, Income); !errors.Is(err, ErrBadTimestamp) {
		t.Fatalf("err = %v, want ErrBadTimestamp", err)
	}
}

func TestNormalizeStructuralErrors(t *testing.T) {
	n := testNormalizer()

	noName := rawOrder(100, "currency/pln-0001")
	noName.OrderID = ""
	if _, err := n.Normalize(noName, Income); !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}

	noMoment := rawOrder(100, "currency/pln-0001")
	noMoment.Moment = ""
	if _, err := n.Normalize(noMoment, Income); !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
}

func TestNormalizeKeepsUnclassifiedByDefault(t *testing.T) {
	n := testNormalizer()

	unknownCurrency := rawOrder(100, "currency/gbp-0009")
	tx, err := n.Normalize(unknownCurrency, Income)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if tx.Currency != CurrencyUnknown {
		t.Fatalf("currency = %s, want %s", tx.Currency, CurrencyUnknown)
	}

	unknownPayment := rawOrder(100, "currency/pln-0001")
	unknownPayment.Attributes = nil
	tx, err = n.Normalize(unknownPayment, Income)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if tx.Method != PaymentUnknown {
		t.Fatalf("method = %s, want %s", tx.Method, PaymentUnknown)
	}
}

func TestNormalizeDropUnclassified(t *testing.T) {
	n := testNormalizer()
	n.DropUnclassified = true

	unknownCurrency := rawOrder(100, "currency/gbp-0009")
	if _, err := n.Normalize(unknownCurrency, Income); !errors.Is(err, ErrUnclassified) {
		t.Fatalf("err = %v, want ErrUnclassified", err)
	}

	unknownPayment := rawOrder(100, "currency/pln-0001")
	unknownPayment.Attributes = nil
	if _, err := n.Normalize(unknownPayment, Income); !errors.Is(err, ErrUnclassified) {
		t.Fatalf("err = %v, want ErrUnclassified", err)
	}
}
