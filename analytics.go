package networth

import (
	"math"

	"github.com/etnz/networth/date"
)

// Trend compares the last two values of a series.
type Trend struct {
	Value   Money
	Change  Money
	Percent Percent // change relative to abs(previous), 0 when previous is 0
}

// NewTrend computes the trend from prev to curr.
func NewTrend(prev, curr Money) Trend {
	change := curr.Sub(prev)
	return Trend{
		Value:   curr,
		Change:  change,
		Percent: PercentOf(change.Ratio(prev.Abs())),
	}
}

func (t Trend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("value", t.Value)
	w.Append("change", t.Change)
	w.Append("percent", float64(t.Percent))
	return w.MarshalJSON()
}

// Trends are the headline trends of an aggregated series.
type Trends struct {
	NetWorth  Trend
	Assets    Trend
	Debt      Trend
	Liquidity Trend
}

// NewTrends computes the trends between the last two points of series. A
// single point is compared to a zero baseline, an empty series yields zero
// trends.
func NewTrends(series []Aggregate) Trends {
	var prev, curr Aggregate
	switch n := len(series); n {
	case 0:
		return Trends{}
	case 1:
		curr = series[0]
	default:
		prev, curr = series[n-2], series[n-1]
	}
	return Trends{
		NetWorth:  NewTrend(prev.NetWorth(), curr.NetWorth()),
		Assets:    NewTrend(prev.TotalAssets(), curr.TotalAssets()),
		Debt:      NewTrend(prev.Totals.Liability, curr.Totals.Liability),
		Liquidity: NewTrend(prev.Liquidity(), curr.Liquidity()),
	}
}

func (t Trends) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("netWorth", t.NetWorth)
	w.Append("assets", t.Assets)
	w.Append("debt", t.Debt)
	w.Append("liquidity", t.Liquidity)
	return w.MarshalJSON()
}

// DrawdownPoint is an aggregate with its decline from the running maximum.
type DrawdownPoint struct {
	Aggregate
	Drawdown Percent // <= 0
}

func (d DrawdownPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(d.Aggregate)
	w.Append("drawdown", float64(d.Drawdown))
	return w.MarshalJSON()
}

// drawdownTracker tracks the running maximum of a net worth series.
type drawdownTracker struct {
	max float64
}

func newDrawdownTracker() *drawdownTracker { return &drawdownTracker{max: math.Inf(-1)} }

// observe updates the running maximum with nw.
func (t *drawdownTracker) observe(nw float64) { t.max = math.Max(t.max, nw) }

// drawdown returns the decline of nw from the running maximum, 0 when the
// maximum is not positive.
func (t *drawdownTracker) drawdown(nw float64) Percent {
	if t.max <= 0 {
		return 0
	}
	return PercentOf((nw - t.max) / t.max)
}

// Drawdowns annotates series with the drawdown from the running maximum of
// the series itself.
func Drawdowns(series []Aggregate) []DrawdownPoint {
	res := make([]DrawdownPoint, 0, len(series))
	t := newDrawdownTracker()
	for _, a := range series {
		nw := a.NetWorth().AsFloat()
		t.observe(nw)
		res = append(res, DrawdownPoint{Aggregate: a, Drawdown: t.drawdown(nw)})
	}
	return res
}

// HistoricalDrawdowns annotates series with the drawdown from the running
// maximum of the full raw history up to each point date. history must be
// ascending.
func HistoricalDrawdowns(series []Aggregate, history []Record, columns []Column) []DrawdownPoint {
	res := make([]DrawdownPoint, 0, len(series))
	t := newDrawdownTracker()
	i := 0
	for _, a := range series {
		for ; i < len(history) && !history[i].Date.After(a.Date); i++ {
			t.observe(NetWorth(history[i], columns).AsFloat())
		}
		nw := a.NetWorth().AsFloat()
		t.observe(nw)
		res = append(res, DrawdownPoint{Aggregate: a, Drawdown: t.drawdown(nw)})
	}
	return res
}

// MaxDrawdown returns the most negative drawdown, 0 for an empty series.
func MaxDrawdown(points []DrawdownPoint) Percent {
	var res Percent
	for _, p := range points {
		if p.Drawdown < res {
			res = p.Drawdown
		}
	}
	return res
}

// CAGR returns the compound annual growth rate from first to last.
//
// The duration is floored to one year. The rate is undefined (false) when
// either net worth is not positive.
func CAGR(first, last Aggregate) (Percent, bool) {
	return cagr(first.Date, first.NetWorth(), last.Date, last.NetWorth())
}

func cagr(from date.Date, start Money, to date.Date, end Money) (Percent, bool) {
	if !start.IsPositive() || !end.IsPositive() {
		return 0, false
	}
	years := math.Max(1, float64(to.Sub(from))/365.25)
	return PercentOf(math.Pow(end.AsFloat()/start.AsFloat(), 1/years) - 1), true
}

// YearToDate returns the net worth change since the first point of the
// current (last) point's year. It falls back to the first point of series.
func YearToDate(series []Aggregate) Money {
	if len(series) == 0 {
		return Money{}
	}
	curr := series[len(series)-1]
	base := series[0]
	for _, a := range series {
		if a.Date.Year() == curr.Date.Year() {
			base = a
			break
		}
	}
	return curr.NetWorth().Sub(base.NetWorth())
}

// Leverage are the debt ratios of a snapshot.
type Leverage struct {
	DebtToAssets Percent // 0 when total assets <= 0
	DebtToEquity Percent // 0 when net worth <= 0
}

// Ratios computes the leverage ratios of a.
func Ratios(a Aggregate) Leverage {
	var l Leverage
	debt := a.Totals.Liability
	if assets := a.TotalAssets(); assets.IsPositive() {
		l.DebtToAssets = PercentOf(debt.Ratio(assets))
	}
	if nw := a.NetWorth(); nw.IsPositive() {
		l.DebtToEquity = PercentOf(debt.Ratio(nw))
	}
	return l
}

func (l Leverage) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("debtToAssets", float64(l.DebtToAssets))
	w.Append("debtToEquity", float64(l.DebtToEquity))
	return w.MarshalJSON()
}

// Slice is the share of one asset category.
type Slice struct {
	Category Category
	Value    Money
	Share    Percent
}

func (s Slice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("category", s.Category)
	w.Append("label", s.Category.Label())
	w.Append("color", s.Category.Color())
	w.Append("value", s.Value)
	w.Append("share", float64(s.Share))
	return w.MarshalJSON()
}

// Allocation returns the positive asset categories of a with their share of
// total assets, in category order.
func Allocation(a Aggregate) []Slice {
	total := a.TotalAssets()
	var res []Slice
	for _, c := range Categories {
		if !c.IsAsset() {
			continue
		}
		v := a.Totals.Of(c)
		if !v.IsPositive() {
			continue
		}
		res = append(res, Slice{Category: c, Value: v, Share: PercentOf(v.Ratio(total))})
	}
	return res
}
