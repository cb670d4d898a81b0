package networth

import (
	"github.com/etnz/networth/date"
)

// Aggregates groups ascending records into display buckets.
//
// Monthly is the identity: each record becomes an aggregate. For the other
// periods the last record of each bucket is kept as the closing snapshot of
// the bucket, balances are never summed across a period. The result is
// ordered by date.
func Aggregates(records []Record, columns []Column, p date.Period) []Aggregate {
	res := make([]Aggregate, 0, len(records))
	index := make(map[string]int)
	for _, r := range records {
		agg := Aggregate{
			Date:   r.Date,
			Label:  p.Label(r.Date),
			Totals: ComputeTotals(r, columns),
		}
		if p == date.Monthly {
			res = append(res, agg)
			continue
		}
		key := date.NewRange(r.Date, p).Identifier()
		if i, exists := index[key]; exists {
			res[i] = agg
			continue
		}
		index[key] = len(res)
		res = append(res, agg)
	}
	return res
}
