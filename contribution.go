package networth

// DefaultContributionWindow is the number of trailing records used to
// estimate the monthly contribution.
const DefaultContributionWindow = 12

const (
	daysPerMonth = 30.44
	// minMonths is the shortest gap between two records that is used to
	// estimate a contribution.
	minMonths = 0.5
)

// EstimateContribution estimates a steady monthly contribution from the
// trailing window of raw ascending records.
//
// Each pair of consecutive records splits the observed net worth change into
// a market growth, proportional to the previous net worth at the assumed
// annual growth rate, and a residual attributed to contributions. The result
// is the mean of the monthly residuals, 0 when no pair is usable. It can be
// negative (net withdrawals).
func EstimateContribution(records []Record, columns []Column, growth Percent, window int) Money {
	if window <= 0 {
		window = DefaultContributionWindow
	}
	if len(records) > window {
		records = records[len(records)-window:]
	}
	monthlyRate := growth.Fraction() / 12

	var sum float64
	var count int
	for i := 1; i < len(records); i++ {
		prev, curr := records[i-1], records[i]
		months := float64(curr.Date.Sub(prev.Date)) / daysPerMonth
		if months <= minMonths {
			continue
		}
		sum += impliedContribution(NetWorth(prev, columns).AsFloat(), NetWorth(curr, columns).AsFloat(), months, monthlyRate)
		count++
	}
	if count == 0 {
		return Money{}
	}
	return M(sum/float64(count), "")
}

// impliedContribution returns the monthly amount of the change from prev to
// curr over months that is not explained by market growth.
func impliedContribution(prev, curr, months, monthlyRate float64) float64 {
	expected := prev * monthlyRate * months
	return (curr - prev - expected) / months
}
