package sheets

import (
	"github.com/shopspring/decimal"

	"kassa/internal/report"
)

// summaryValues builds the values matrix for the balance sheet.
func summaryValues(r *report.Report) [][]interface{} {
	values := [][]interface{}{
		{"Currency", "Cash", "Card", "Documents", "Test Orders"},
	}
	for _, s := range r.Summary {
		values = append(values, []interface{}{
			string(s.Currency),
			s.Cash.InexactFloat64(),
			s.Card.InexactFloat64(),
			s.Count,
			s.TestCount,
		})
	}
	return values
}

// detailValues builds the values matrix for the order detail sheet.
func detailValues(r *report.Report) [][]interface{} {
	values := [][]interface{}{
		{"Date", "Order", "Cash, PLN", "PLN total", "Cash, USD", "Cash, EUR", "Card", "Currency", "Comment", "Test Order"},
	}
	for _, d := range r.Details {
		testOrder := "no"
		if d.IsTest {
			testOrder = "yes"
		}
		values = append(values, []interface{}{
			d.Date.Format("2006-01-02"),
			d.OrderID,
			cellValue(d.CashPLN),
			d.PLNTotal.InexactFloat64(),
			cellValue(d.CashUSD),
			cellValue(d.CashEUR),
			cellValue(d.Card),
			string(d.Currency),
			d.Comment,
			testOrder,
		})
	}
	return values
}

// Empty cells go over the wire as empty strings so stale values from a
// previous run cannot survive under them.
func cellValue(nd decimal.NullDecimal) interface{} {
	if !nd.Valid {
		return ""
	}
	return nd.Decimal.InexactFloat64()
}
