package networth

import (
	"fmt"
	"math"
)

// Percent is a rate expressed in percentage points: -12.5 means -12.5%.
type Percent float64

// Fraction returns p as a fraction (7% is 0.07).
func (p Percent) Fraction() float64 { return float64(p) / 100 }

// PercentOf converts a fraction into a Percent.
func PercentOf(fraction float64) Percent { return Percent(100 * fraction) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
