package networth

import (
	"github.com/etnz/networth/date"
)

// Report gathers every analytics of a dataset for a given configuration.
type Report struct {
	Config     Config
	Today      date.Date
	Series     []DrawdownPoint // the displayed view
	Current    Aggregate       // last point of the view
	Trends     Trends
	Leverage   Leverage
	Allocation []Slice
	// MaxDrawdown and CAGR follow Config.Scope.
	MaxDrawdown Percent
	CAGR        Percent
	CAGRDefined bool
	YTD         Money
	Compound    CompoundMetrics
}

// NewReport computes the report of ascending records. It returns nil when
// there is nothing to report (no record or no record in the selected year).
//
// The contribution estimate and the compound projection always use the whole
// history, independently of the view.
func NewReport(columns []Column, records []Record, cfg Config, today date.Date) *Report {
	view := FilterYear(records, cfg.Year)
	if len(view) == 0 {
		return nil
	}
	series := Aggregates(view, columns, cfg.Period)
	for i := range series {
		series[i].Totals = series[i].Totals.In(cfg.Currency)
	}
	curr := series[len(series)-1]

	r := &Report{
		Config:     cfg,
		Today:      today,
		Current:    curr,
		Trends:     NewTrends(series),
		Leverage:   Ratios(curr),
		Allocation: Allocation(curr),
		YTD:        YearToDate(series),
	}

	switch cfg.Scope {
	case ViewScope:
		r.Series = Drawdowns(series)
		r.MaxDrawdown = MaxDrawdown(r.Series)
		r.CAGR, r.CAGRDefined = CAGR(series[0], curr)
	default:
		r.Series = HistoricalDrawdowns(series, records, columns)
		full := Aggregates(records, columns, date.Monthly)
		// over all time, including snapshots after the view
		r.MaxDrawdown = MaxDrawdown(Drawdowns(full))
		r.CAGR, r.CAGRDefined = CAGR(full[0], curr)
	}

	latest := records[len(records)-1]
	nw := NetWorth(latest, columns).In(cfg.Currency)
	contribution := EstimateContribution(records, columns, cfg.Growth, cfg.ContributionWindow).In(cfg.Currency)
	r.Compound = Project(ProjectionInput{
		Start:        latest.Date,
		Today:        today,
		NetWorth:     nw,
		Contribution: contribution,
		Growth:       cfg.Growth,
		Horizon:      cfg.Horizon,
	})
	return r
}

func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("config", r.Config)
	w.Append("today", r.Today)
	w.Append("current", r.Current)
	w.Append("trends", r.Trends)
	w.Append("leverage", r.Leverage)
	w.Append("allocation", r.Allocation)
	w.Append("maxDrawdown", float64(r.MaxDrawdown))
	if r.CAGRDefined {
		w.Append("cagr", float64(r.CAGR))
	}
	w.Append("ytd", r.YTD)
	w.Append("series", r.Series)
	w.Append("compound", r.Compound)
	return w.MarshalJSON()
}
