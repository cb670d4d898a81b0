package networth

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/PaesslerAG/jsonpath"
)

func TestProject(t *testing.T) {
	start := day(2024, 1, 31)
	tests := []struct {
		name          string
		in            ProjectionInput
		wantReached   bool
		wantMonths    int
		wantYears     float64
		wantProgress  Percent
		wantSeriesLen int
	}{
		{
			name:          "returns already exceed the contribution",
			in:            ProjectionInput{Start: start, Today: start, NetWorth: USD(200_000), Contribution: USD(500), Growth: 6},
			wantReached:   true,
			wantMonths:    0,
			wantYears:     0,
			wantProgress:  200,
			wantSeriesLen: 50,
		},
		{
			name:          "no contribution",
			in:            ProjectionInput{Start: start, Today: start, NetWorth: USD(1000), Contribution: USD(0), Growth: 7, Horizon: 240},
			wantReached:   true,
			wantMonths:    0,
			wantProgress:  100,
			wantSeriesLen: 20,
		},
		{
			name: "crossover after a few months",
			// 1%/month: returns reach 100 once the net worth is 10000,
			// that is after 6 months.
			in:            ProjectionInput{Start: start, Today: start, NetWorth: USD(9000), Contribution: USD(100), Growth: 12, Horizon: 24},
			wantReached:   true,
			wantMonths:    6,
			wantYears:     0.5,
			wantProgress:  90,
			wantSeriesLen: 2,
		},
		{
			name:          "horizon reached first",
			in:            ProjectionInput{Start: start, Today: start, NetWorth: USD(0), Contribution: USD(1000), Growth: 0, Horizon: 36},
			wantReached:   false,
			wantProgress:  0,
			wantSeriesLen: 3,
		},
		{
			name:          "negative growth never crosses",
			in:            ProjectionInput{Start: start, Today: start, NetWorth: USD(50_000), Contribution: USD(1000), Growth: -5, Horizon: 120},
			wantReached:   false,
			wantProgress:  PercentOf(50_000 * -0.05 / 12 / 1000),
			wantSeriesLen: 10,
		},
		{
			name:          "today after the crossover",
			in:            ProjectionInput{Start: start, Today: day(2025, 1, 31), NetWorth: USD(200_000), Contribution: USD(500), Growth: 6},
			wantReached:   true,
			wantMonths:    0,
			wantYears:     -1,
			wantProgress:  200,
			wantSeriesLen: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.in)
			if got.Crossover.Reached != tt.wantReached {
				t.Fatalf("Project().Crossover.Reached = %v, want %v", got.Crossover.Reached, tt.wantReached)
			}
			if tt.wantReached {
				if got.Crossover.Months != tt.wantMonths {
					t.Errorf("Project().Crossover.Months = %d, want %d", got.Crossover.Months, tt.wantMonths)
				}
				if want := tt.in.Start.AddMonth(tt.wantMonths); got.Crossover.Date != want {
					t.Errorf("Project().Crossover.Date = %v, want %v", got.Crossover.Date, want)
				}
				if got.Crossover.Years != tt.wantYears {
					t.Errorf("Project().Crossover.Years = %v, want %v", got.Crossover.Years, tt.wantYears)
				}
			} else if !got.Crossover.Date.IsZero() {
				t.Errorf("Project().Crossover.Date = %v, want zero when not reached", got.Crossover.Date)
			}
			if !got.PhaseProgress.Equal(tt.wantProgress) {
				t.Errorf("Project().PhaseProgress = %v, want %v", got.PhaseProgress, tt.wantProgress)
			}
			if len(got.Series) != tt.wantSeriesLen {
				t.Errorf("len(Project().Series) = %d, want %d", len(got.Series), tt.wantSeriesLen)
			}
			for i, p := range got.Series {
				if p.Offset != i {
					t.Errorf("Series[%d].Offset = %d, want %d", i, p.Offset, i)
				}
				if want := tt.in.Start.Year() + i; p.Year != want {
					t.Errorf("Series[%d].Year = %d, want %d", i, p.Year, want)
				}
				if !p.Contribution.Equal(tt.in.Contribution) {
					t.Errorf("Series[%d].Contribution = %v, want %v", i, p.Contribution, tt.in.Contribution)
				}
			}
		})
	}
}

func TestProject_FirstMonthCrossover(t *testing.T) {
	got := Project(ProjectionInput{
		Start:        day(2024, 1, 31),
		Today:        day(2024, 1, 31),
		NetWorth:     USD(200_000),
		Contribution: USD(500),
		Growth:       6,
	})
	if math.Abs(got.MonthlyReturn.AsFloat()-1000) > 1e-6 {
		t.Errorf("MonthlyReturn = %v, want %v", got.MonthlyReturn, USD(1000))
	}
	if got.Horizon != DefaultHorizon {
		t.Errorf("Horizon = %d, want %d", got.Horizon, DefaultHorizon)
	}
	if !got.Crossover.Reached || got.Crossover.Months != 0 || got.Crossover.Date != day(2024, 1, 31) {
		t.Errorf("Crossover = %+v, want reached at the first simulated month", got.Crossover)
	}
}

func TestProject_YearlySamples(t *testing.T) {
	// 1%/month with no contribution: the net worth compounds from 1000.
	got := Project(ProjectionInput{
		Start:        day(2024, 1, 31),
		Today:        day(2024, 1, 31),
		NetWorth:     USD(1000),
		Contribution: USD(0),
		Growth:       12,
		Horizon:      24,
	})
	if len(got.Series) != 2 {
		t.Fatalf("len(Series) = %d, want 2", len(got.Series))
	}
	first, second := got.Series[0], got.Series[1]
	if first.Offset != 0 || first.Year != 2024 {
		t.Errorf("Series[0] = %d/%d, want the starting month 2024/0", first.Year, first.Offset)
	}
	if !first.Returns.Equal(got.MonthlyReturn) {
		t.Errorf("Series[0].Returns = %v, want the current monthly return %v", first.Returns, got.MonthlyReturn)
	}
	if want := 1000 * math.Pow(1.01, 12) * 0.01; second.Offset != 1 || second.Year != 2025 || math.Abs(second.Returns.AsFloat()-want) > 1e-6 {
		t.Errorf("Series[1] = %d/%d %v, want 2025/1 %.4f", second.Year, second.Offset, second.Returns, want)
	}
}

func TestCompoundMetrics_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   ProjectionInput
		path string
		want any
	}{
		{
			name: "reached",
			in:   ProjectionInput{Start: day(2024, 1, 31), Today: day(2024, 1, 31), NetWorth: USD(200_000), Contribution: USD(500), Growth: 6},
			path: "$.crossover.date",
			want: "2024-01-31",
		},
		{
			name: "not reached has no date",
			in:   ProjectionInput{Start: day(2024, 1, 31), Today: day(2024, 1, 31), NetWorth: USD(0), Contribution: USD(500), Growth: 0, Horizon: 12},
			path: "$.crossover",
			want: map[string]any{"reached": false},
		},
		{
			name: "series",
			in:   ProjectionInput{Start: day(2024, 1, 31), Today: day(2024, 1, 31), NetWorth: USD(1000), Contribution: USD(10), Growth: 0, Horizon: 24},
			path: "$.series[1].year",
			want: 2025.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(Project(tt.in))
			if err != nil {
				t.Fatalf("json.Marshal() unexpected error: %v", err)
			}
			var doc any
			if err := json.Unmarshal(b, &doc); err != nil {
				t.Fatalf("json.Unmarshal() unexpected error: %v", err)
			}
			got, err := jsonpath.Get(tt.path, doc)
			if err != nil {
				t.Fatalf("jsonpath.Get(%q) unexpected error: %v in %s", tt.path, err, b)
			}
			if !jsonEqual(got, tt.want) {
				t.Errorf("jsonpath.Get(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// jsonEqual compares two decoded JSON values.
func jsonEqual(a, b any) bool {
	x, err := json.Marshal(a)
	if err != nil {
		return false
	}
	y, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(x) == string(y)
}
