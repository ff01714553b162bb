package core

import "strings"

// CurrencyTable maps upstream currency references to currency codes. A
// reference matches when it contains the configured identifier substring.
// Candidates are tried in a fixed priority order (PLN, USD, EUR); the first
// match wins. Anything else resolves to CurrencyUnknown, never an error.
type CurrencyTable struct {
	entries []currencyEntry
}

type currencyEntry struct {
	code CurrencyCode
	id   string
}

// NewCurrencyTable builds a table from the three known currency identifiers,
// typically URL paths carrying the currency's unique id.
func NewCurrencyTable(pln, usd, eur string) CurrencyTable {
	return CurrencyTable{entries: []currencyEntry{
		{PLN, pln},
		{USD, usd},
		{EUR, eur},
	}}
}

// Resolve maps a currency reference to a currency code.
func (t CurrencyTable) Resolve(ref string) CurrencyCode {
	for _, e := range t.entries {
		// An empty identifier is a substring of everything; treat it as unset.
		if e.id == "" {
			continue
		}
		if strings.Contains(ref, e.id) {
			return e.code
		}
	}
	return CurrencyUnknown
}
