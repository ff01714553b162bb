package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// momentDateLayout is the date portion of an order timestamp
// ("2006-01-02 15:04:05.000000" or just the date).
const momentDateLayout = "2006-01-02"

// Normalizer converts raw order records into normalized transactions.
//
// By default orders with an unknown currency or payment method are kept, so
// they still show up in the detail sheet; the aggregation engine excludes
// them from totals. Setting DropUnclassified restores the stricter historical
// behavior of skipping them entirely.
type Normalizer struct {
	Currencies       CurrencyTable
	Payments         PaymentTable
	DropUnclassified bool
}

// Normalize converts one raw order into a Transaction. The amount is signed
// by direction and rounded to exactly two decimals here, once; downstream
// code never re-rounds individual amounts.
//
// Skippable conditions are reported as wrapped sentinel errors: ErrNotApplicable,
// ErrBadTimestamp and (only with DropUnclassified) ErrUnclassified drop the
// single order. ErrMissingField is structural and must abort the whole run.
func (n Normalizer) Normalize(raw RawTransaction, direction FlowDirection) (Transaction, error) {
	if raw.OrderID == "" {
		return Transaction{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if raw.Moment == "" {
		return Transaction{}, fmt.Errorf("%w: moment", ErrMissingField)
	}
	if !raw.Applicable {
		return Transaction{}, fmt.Errorf("%w: %s", ErrNotApplicable, raw.OrderID)
	}

	datePart, _, _ := strings.Cut(raw.Moment, " ")
	date, err := time.Parse(momentDateLayout, datePart)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: %q", ErrBadTimestamp, raw.Moment)
	}

	currency := n.Currencies.Resolve(raw.CurrencyRef)
	method, isTest := n.Payments.Classify(raw.Attributes)
	if n.DropUnclassified && (currency == CurrencyUnknown || method == PaymentUnknown) {
		return Transaction{}, fmt.Errorf("%w: %s", ErrUnclassified, raw.OrderID)
	}

	// Minor units with exponent -2: the division by 100 is exact, so the
	// two-decimal invariant holds without an explicit rounding step.
	amount := decimal.New(raw.AmountMinor, -2)
	if direction == Expense {
		amount = amount.Neg()
	}

	return Transaction{
		Date:      date,
		OrderID:   raw.OrderID,
		Amount:    amount,
		Currency:  currency,
		Method:    method,
		Direction: direction,
		IsTest:    isTest,
		Comment:   raw.Comment,
	}, nil
}
