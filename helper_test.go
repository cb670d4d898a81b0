package networth

import (
	"time"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money with no currency set
func NO(v float64) Money { return M(v, "") }

var testColumns = []Column{
	{ID: "stocks", Name: "Vanguard Brokerage", Category: Equity},
	{ID: "bonds", Name: "Treasury Bills", Category: FixedIncome},
	{ID: "checking", Name: "Checking", Category: Cash},
	{ID: "card", Name: "Amex", Category: Liability},
	{ID: "car", Name: "Car", Category: Other},
}

// rec creates a record from id/value pairs.
func rec(on date.Date, values map[string]float64) Record {
	r := NewRecord(on)
	for id, v := range values {
		r.Values[id] = decimal.NewFromFloat(v)
	}
	return r
}

// nwSeries creates one record per date with a single equity account whose
// balance is the net worth.
func nwSeries(points ...nwPoint) ([]Column, []Record) {
	columns := []Column{{ID: "nw", Name: "Fund", Category: Equity}}
	var records []Record
	for _, p := range points {
		records = append(records, rec(p.on, map[string]float64{"nw": p.nw}))
	}
	return columns, records
}

type nwPoint struct {
	on date.Date
	nw float64
}

func day(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }
