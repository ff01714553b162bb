package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// NewTotals returns a zeroed accumulator for each known currency.
func NewTotals() Totals {
	totals := make(Totals, len(KnownCurrencies))
	for _, c := range KnownCurrencies {
		totals[c] = &CurrencyTotals{}
	}
	return totals
}

// Aggregate folds normalized transactions into per-currency totals and a
// chronological detail list with running cash balances.
//
// Totals: test orders bump TestCount only and never touch the money sums or
// Count. Cash amounts go to CashSum, card amounts to CardSum; both bump
// Count. Unknown-currency and unknown-payment transactions stay out of the
// totals entirely but are retained in the detail list.
//
// Details: transactions are ordered by date ascending, ties keeping their
// input order. One running balance is kept per currency; it accumulates only
// cash-classified, non-test amounts and is rounded to two decimals after
// every update. Each row records its own currency's balance after applying
// its own amount.
//
// The input slice is not modified; calling Aggregate twice on the same input
// yields identical results.
func Aggregate(transactions []Transaction) (Totals, []DetailRow) {
	totals := NewTotals()
	for _, tx := range transactions {
		bucket, ok := totals[tx.Currency]
		if !ok {
			continue
		}
		if tx.IsTest {
			bucket.TestCount++
			continue
		}
		switch tx.Method {
		case Cash:
			bucket.CashSum = bucket.CashSum.Add(tx.Amount)
			bucket.Count++
		case Card:
			bucket.CardSum = bucket.CardSum.Add(tx.Amount)
			bucket.Count++
		}
	}

	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	balances := make(map[CurrencyCode]decimal.Decimal)
	rows := make([]DetailRow, 0, len(sorted))
	for _, tx := range sorted {
		if tx.Method == Cash && !tx.IsTest {
			balances[tx.Currency] = balances[tx.Currency].Add(tx.Amount).Round(2)
		}
		rows = append(rows, DetailRow{Transaction: tx, RunningBalance: balances[tx.Currency]})
	}
	return totals, rows
}
