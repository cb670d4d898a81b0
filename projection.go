package networth

import (
	"math"

	"github.com/etnz/networth/date"
)

// DefaultHorizon is the default projection horizon in months (50 years).
const DefaultHorizon = 600

// ProjectionInput are the assumptions of a compound projection.
type ProjectionInput struct {
	Start        date.Date // first simulated month, usually the latest record date
	Today        date.Date // reference for the years to crossover
	NetWorth     Money
	Contribution Money   // steady monthly contribution
	Growth       Percent // annual growth rate
	Horizon      int     // in months, DefaultHorizon when <= 0
}

// ProjectionPoint is a yearly sample of the projection.
type ProjectionPoint struct {
	Year         int // calendar year
	Offset       int // years since the start, 0 for the starting month
	Contribution Money
	Returns      Money // monthly market return at that time
}

func (p ProjectionPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year", p.Year)
	w.Append("offset", p.Offset)
	w.Append("contribution", p.Contribution)
	w.Append("returns", p.Returns)
	return w.MarshalJSON()
}

// Crossover is the first simulated month where the market return meets or
// exceeds the contribution.
type Crossover struct {
	Reached bool // false when the horizon ends before the crossover
	Date    date.Date
	Months  int     // months since the start of the simulation
	Years   float64 // years from today, rounded to one decimal
}

func (c Crossover) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("reached", c.Reached)
	if c.Reached {
		w.Append("date", c.Date)
		w.Append("months", c.Months)
		w.Append("years", c.Years)
	}
	return w.MarshalJSON()
}

// CompoundMetrics is the result of a compound projection.
type CompoundMetrics struct {
	CurrentNetWorth     Money
	MonthlyContribution Money
	MonthlyReturn       Money   // current monthly market return
	Growth              Percent // annual growth rate assumed
	Crossover           Crossover
	PhaseProgress       Percent // current return as a share of the contribution
	Horizon             int
	Series              []ProjectionPoint
}

func (m CompoundMetrics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currentNetWorth", m.CurrentNetWorth)
	w.Append("monthlyContribution", m.MonthlyContribution)
	w.Append("monthlyReturn", m.MonthlyReturn)
	w.Append("growth", float64(m.Growth))
	w.Append("crossover", m.Crossover)
	w.Append("phaseProgress", float64(m.PhaseProgress))
	w.Append("horizon", m.Horizon)
	w.Append("series", m.Series)
	return w.MarshalJSON()
}

// Project simulates, month after month, a net worth growing by a steady
// contribution and by the market return at the assumed growth rate.
//
// The simulation stops after the horizon. The first month whose return
// meets or exceeds the contribution is the crossover. A yearly sample is
// recorded every twelve months, the first one being the starting month.
func Project(in ProjectionInput) CompoundMetrics {
	horizon := in.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	cur := in.NetWorth.Currency()
	rate := in.Growth.Fraction() / 12
	contribution := in.Contribution.AsFloat()
	current := in.NetWorth.AsFloat()
	currentReturn := current * rate

	m := CompoundMetrics{
		CurrentNetWorth:     in.NetWorth,
		MonthlyContribution: in.Contribution,
		MonthlyReturn:       M(currentReturn, cur),
		Growth:              in.Growth,
		Horizon:             horizon,
		PhaseProgress:       100,
	}
	if contribution > 0 {
		m.PhaseProgress = PercentOf(currentReturn / contribution)
	}

	nw := current
	for i := 0; i < horizon; i++ {
		ret := nw * rate
		on := in.Start.AddMonth(i)
		if !m.Crossover.Reached && ret >= contribution {
			m.Crossover = Crossover{
				Reached: true,
				Date:    on,
				Months:  i,
				Years:   math.Round(float64(on.Sub(in.Today))/365.25*10) / 10,
			}
		}
		nw += contribution + ret
		if i%12 == 0 {
			m.Series = append(m.Series, ProjectionPoint{
				Year:         on.Year(),
				Offset:       i / 12,
				Contribution: in.Contribution,
				Returns:      M(ret, cur),
			})
		}
	}
	return m
}
