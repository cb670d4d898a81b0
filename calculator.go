package networth

import (
	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// Totals are the category sums of one record.
//
// Liability is always a magnitude (>= 0), it reduces the net worth.
type Totals struct {
	Equity      Money
	FixedIncome Money
	Cash        Money
	Liability   Money
	Other       Money
}

// ComputeTotals reduces a record into category totals.
//
// Missing values count as zero. Liability columns add the absolute value of
// their balance, every other column adds its signed balance.
func ComputeTotals(r Record, columns []Column) Totals {
	var sums [len(categoryInfos)]decimal.Decimal
	for _, col := range columns {
		v, ok := r.Values[col.ID]
		if !ok {
			continue
		}
		if col.Category == Liability {
			v = v.Abs()
		}
		sums[col.Category] = sums[col.Category].Add(v)
	}
	return Totals{
		Equity:      M(sums[Equity], ""),
		FixedIncome: M(sums[FixedIncome], ""),
		Cash:        M(sums[Cash], ""),
		Liability:   M(sums[Liability], ""),
		Other:       M(sums[Other], ""),
	}
}

// Of returns the total of category c.
func (t Totals) Of(c Category) Money {
	switch c {
	case Equity:
		return t.Equity
	case FixedIncome:
		return t.FixedIncome
	case Cash:
		return t.Cash
	case Liability:
		return t.Liability
	default:
		return t.Other
	}
}

// TotalAssets is the sum of every category but liabilities.
func (t Totals) TotalAssets() Money {
	return t.Equity.Add(t.FixedIncome).Add(t.Cash).Add(t.Other)
}

// NetWorth is total assets minus liabilities.
func (t Totals) NetWorth() Money { return t.TotalAssets().Sub(t.Liability) }

// Liquidity is cash plus fixed income.
func (t Totals) Liquidity() Money { return t.Cash.Add(t.FixedIncome) }

// In labels every total with currency cur.
func (t Totals) In(cur string) Totals {
	return Totals{
		Equity:      t.Equity.In(cur),
		FixedIncome: t.FixedIncome.In(cur),
		Cash:        t.Cash.In(cur),
		Liability:   t.Liability.In(cur),
		Other:       t.Other.In(cur),
	}
}

func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, c := range Categories {
		w.Append(c.String(), t.Of(c))
	}
	return w.MarshalJSON()
}

// NetWorth computes the net worth of a single record.
func NetWorth(r Record, columns []Column) Money {
	return ComputeTotals(r, columns).NetWorth()
}

// Aggregate is the closing snapshot of a display period.
type Aggregate struct {
	Date   date.Date
	Label  string
	Totals Totals
}

func (a Aggregate) TotalAssets() Money { return a.Totals.TotalAssets() }
func (a Aggregate) NetWorth() Money    { return a.Totals.NetWorth() }
func (a Aggregate) Liquidity() Money   { return a.Totals.Liquidity() }

func (a Aggregate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", a.Date)
	w.Append("label", a.Label)
	w.Append("totals", a.Totals)
	w.Append("totalAssets", a.TotalAssets())
	w.Append("netWorth", a.NetWorth())
	w.Append("liquidity", a.Liquidity())
	return w.MarshalJSON()
}
