// Package report assembles aggregated transactions into the two-sheet
// report shape: currency balances and a chronological order detail list.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"kassa/internal/core"
)

type (
	// SummaryRow is one line of the balance sheet. Cash and Card are net
	// sums: expense amounts already carry their negative sign, so income and
	// expense fold into a single plain sum.
	SummaryRow struct {
		Currency  core.CurrencyCode
		Cash      decimal.Decimal
		Card      decimal.Decimal
		Count     int
		TestCount int
	}

	// DetailLine is one line of the detail sheet. The cash amount lands in
	// the column of its own currency; the other cash cells stay empty.
	// PLNTotal is the cumulative PLN cash balance carried across the whole
	// sheet, repeated on every line the way the register keeps it.
	DetailLine struct {
		Date     time.Time
		OrderID  string
		CashPLN  decimal.NullDecimal
		CashUSD  decimal.NullDecimal
		CashEUR  decimal.NullDecimal
		Card     decimal.NullDecimal
		PLNTotal decimal.Decimal
		Currency core.CurrencyCode
		Method   core.PaymentMethod
		Comment  string
		IsTest   bool
	}

	Report struct {
		From    time.Time
		To      time.Time
		Summary []SummaryRow
		Details []DetailLine
	}
)

// Build shapes aggregation output into a Report. Summary rows come out in
// the fixed currency order; detail lines keep the aggregation engine's
// chronological order.
func Build(totals core.Totals, rows []core.DetailRow, from, to time.Time) *Report {
	r := &Report{From: from, To: to}

	for _, c := range core.KnownCurrencies {
		bucket := totals[c]
		if bucket == nil {
			bucket = &core.CurrencyTotals{}
		}
		r.Summary = append(r.Summary, SummaryRow{
			Currency:  c,
			Cash:      bucket.CashSum,
			Card:      bucket.CardSum,
			Count:     bucket.Count,
			TestCount: bucket.TestCount,
		})
	}

	var plnTotal decimal.Decimal
	for _, row := range rows {
		line := DetailLine{
			Date:     row.Date,
			OrderID:  row.OrderID,
			Currency: row.Currency,
			Method:   row.Method,
			Comment:  row.Comment,
			IsTest:   row.IsTest,
		}
		switch row.Method {
		case core.Cash:
			cell := decimal.NullDecimal{Decimal: row.Amount, Valid: true}
			switch row.Currency {
			case core.PLN:
				line.CashPLN = cell
			case core.USD:
				line.CashUSD = cell
			case core.EUR:
				line.CashEUR = cell
			}
		case core.Card:
			line.Card = decimal.NullDecimal{Decimal: row.Amount, Valid: true}
		}
		if row.Currency == core.PLN && row.Method == core.Cash && !row.IsTest {
			plnTotal = row.RunningBalance
		}
		line.PLNTotal = plnTotal
		r.Details = append(r.Details, line)
	}
	return r
}
