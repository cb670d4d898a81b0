package date

import (
	"fmt"
	"strings"
)

// Period is the bucketing granularity of a snapshot series.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Name returns the singular noun for the period (e.g., "month").
func (p Period) Name() string {
	switch p {
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Label returns the short display label of the bucket containing d:
// "Mar '24", "Q1 '24" or "2024".
func (p Period) Label(d Date) string {
	switch p {
	case Monthly:
		return d.Format("Jan '06")
	case Quarterly:
		return fmt.Sprintf("Q%d '%s", Quarter(d), d.Format("06"))
	case Yearly:
		return d.Format("2006")
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %s", p)
	}
}
