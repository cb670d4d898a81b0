package networth

import (
	"math"
	"testing"
)

func TestImpliedContribution(t *testing.T) {
	tests := []struct {
		name               string
		prev, curr, months float64
		monthlyRate        float64
		want               float64
	}{
		{"growth fully explained by the market", 100_000, 101_000, 1, 0.01, 0},
		{"no growth assumed", 100_000, 101_000, 1, 0, 1000},
		{"spread over two months", 100_000, 104_000, 2, 0.01, 1000},
		{"withdrawal", 100_000, 99_000, 1, 0.01, -2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := impliedContribution(tt.prev, tt.curr, tt.months, tt.monthlyRate)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("impliedContribution() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateContribution(t *testing.T) {
	tests := []struct {
		name   string
		points []nwPoint
		growth Percent
		window int
		want   float64
	}{
		{
			name: "no record",
			want: 0,
		},
		{
			name:   "single record",
			points: []nwPoint{{day(2024, 1, 1), 100_000}},
			growth: 12,
			want:   0,
		},
		{
			name:   "pairs closer than half a month are skipped",
			points: []nwPoint{{day(2024, 1, 1), 100_000}, {day(2024, 1, 10), 150_000}},
			growth: 12,
			want:   0,
		},
		{
			name:   "one 30 days month",
			points: []nwPoint{{day(2024, 1, 1), 100_000}, {day(2024, 1, 31), 101_000}},
			growth: 12,
			want:   (1000 - 100_000*0.01*30/30.44) / (30 / 30.44),
		},
		{
			name: "skipped pair does not count in the mean",
			points: []nwPoint{
				{day(2024, 1, 1), 100_000},
				{day(2024, 1, 31), 101_000},
				{day(2024, 2, 5), 200_000},
			},
			growth: 12,
			// the second pair (5 days) is skipped.
			want: (1000 - 100_000*0.01*30/30.44) / (30 / 30.44),
		},
		{
			name: "mean of the pairs without growth",
			points: []nwPoint{
				{day(2023, 1, 1), 1000},
				{day(2023, 1, 31), 2000},
				{day(2023, 3, 2), 2000},
			},
			growth: 0,
			want:   (1000/(30/30.44) + 0) / 2,
		},
		{
			name: "negative contribution",
			points: []nwPoint{
				{day(2023, 1, 1), 2000},
				{day(2023, 1, 31), 1000},
			},
			growth: 0,
			want:   -1000 / (30 / 30.44),
		},
		{
			name: "only the trailing window is used",
			points: []nwPoint{
				{day(2023, 1, 1), 0},
				{day(2023, 1, 31), 1_000_000},
				{day(2023, 3, 2), 1_000_000},
				{day(2023, 4, 1), 1_000_000},
			},
			growth: 0,
			window: 2,
			want:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, records := nwSeries(tt.points...)
			got := EstimateContribution(records, columns, tt.growth, tt.window).AsFloat()
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("EstimateContribution() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateContribution_Liabilities(t *testing.T) {
	records := []Record{
		rec(day(2024, 1, 1), map[string]float64{"checking": 1000, "card": 500}),
		rec(day(2024, 1, 31), map[string]float64{"checking": 1000, "card": -200}),
	}
	// net worth goes from 500 to 800, the card sign is ignored.
	got := EstimateContribution(records, testColumns, 0, 0).AsFloat()
	if want := 300 / (30 / 30.44); math.Abs(got-want) > 1e-6 {
		t.Errorf("EstimateContribution() = %v, want %v", got, want)
	}
}
