package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PLN             CurrencyCode = "PLN"
	USD             CurrencyCode = "USD"
	EUR             CurrencyCode = "EUR"
	CurrencyUnknown CurrencyCode = "UNKNOWN"
)

const (
	Income  FlowDirection = "income"
	Expense FlowDirection = "expense"
)

const (
	Cash           PaymentMethod = "cash"
	Card           PaymentMethod = "card"
	PaymentUnknown PaymentMethod = "unknown"
)

// Attribute names carried by order records upstream.
const (
	AttrPaymentType = "PaymentType"
	AttrTestOrder   = "test_order"
)

type (
	// CurrencyCode identifies one of the currencies the report knows about.
	CurrencyCode string

	// FlowDirection tells whether an order is a cash-in or a cash-out event.
	// It determines the sign of the normalized amount.
	FlowDirection string

	PaymentMethod string

	// Attribute is one entry of an order's attribute list. PaymentType
	// attributes carry the display name in Value; test_order carries Flag.
	Attribute struct {
		Name  string
		Value string
		Flag  bool
	}

	// RawTransaction is an order record as received from the accounting API,
	// reduced to the fields the report needs. Amounts are in minor units.
	RawTransaction struct {
		AmountMinor int64
		CurrencyRef string
		Attributes  []Attribute
		Moment      string
		OrderID     string
		Comment     string
		Applicable  bool
	}

	// Transaction is a normalized order: amount in major units, rounded to
	// two decimals, signed by flow direction.
	Transaction struct {
		Date      time.Time
		OrderID   string
		Amount    decimal.Decimal
		Currency  CurrencyCode
		Method    PaymentMethod
		Direction FlowDirection
		IsTest    bool
		Comment   string
	}

	// CurrencyTotals accumulates money and document counts for one currency
	// over a single report run. Test orders only ever touch TestCount.
	CurrencyTotals struct {
		CashSum   decimal.Decimal
		CardSum   decimal.Decimal
		Count     int
		TestCount int
	}

	// DetailRow is one line of the chronological detail sheet. RunningBalance
	// is the cumulative cash balance of the row's own currency after this row.
	DetailRow struct {
		Transaction
		RunningBalance decimal.Decimal
	}

	// Totals maps each known currency to its accumulator. Unknown currencies
	// never get a bucket.
	Totals map[CurrencyCode]*CurrencyTotals
)

// KnownCurrencies lists the currencies that get a totals bucket, in the
// resolver's priority order.
var KnownCurrencies = []CurrencyCode{PLN, USD, EUR}

var (
	// ErrNotApplicable marks an order whose applicable flag is unset. Such
	// orders are filtered upstream and never count toward any balance.
	ErrNotApplicable = errors.New("order not applicable")

	// ErrBadTimestamp marks an order whose moment cannot be parsed. The order
	// is dropped; the batch continues.
	ErrBadTimestamp = errors.New("malformed order timestamp")

	// ErrUnclassified marks an order with an unknown currency or payment
	// method, reported only when the normalizer is configured to drop them.
	ErrUnclassified = errors.New("unclassified order")

	// ErrMissingField marks an order lacking a required field. This is a
	// structural failure: the whole run aborts with no partial report.
	ErrMissingField = errors.New("order record missing required field")
)

// IsKnown reports whether the code is one of the enumerated currencies.
func (c CurrencyCode) IsKnown() bool {
	return c == PLN || c == USD || c == EUR
}

// Sign returns the factor applied to raw amounts for this direction.
func (d FlowDirection) Sign() int64 {
	if d == Expense {
		return -1
	}
	return 1
}
