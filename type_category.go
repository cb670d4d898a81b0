package networth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Category is the class of a financial account.
type Category int

const (
	Equity Category = iota
	FixedIncome
	Cash
	Liability
	Other
)

// Categories lists every category in display order.
var Categories = []Category{Equity, FixedIncome, Cash, Liability, Other}

// ErrUnknownCategory is returned when parsing an unknown category name.
var ErrUnknownCategory = errors.New("unknown category")

type categoryInfo struct {
	name, label, color string
	keywords           []string
}

var categoryInfos = [...]categoryInfo{
	Equity: {"equity", "Equity", "#8b5cf6", []string{
		"fidelity", "robinhood", "stock", "broker", "uhc", "fund", "etf", "invest",
		"401", "403", "contribution", "ira", "roth", "schwab", "vanguard",
	}},
	FixedIncome: {"fixed_income", "Fixed Income", "#3b82f6", []string{
		"certificate", "bond", "treasury", "cd", "deposit", "stanford", "plazo", "fixed",
	}},
	Cash: {"cash", "Cash / Liquid", "#10b981", []string{
		"checking", "paypal", "marcus", "cash", "bank", "sbu", "ahorro", "savings",
		"cuenta", "hysa", "sfcu",
	}},
	Liability: {"liability", "Liability", "#ef4444", []string{
		"card", "debt", "loan", "mortgage", "hipoteca", "credit", "amex", "visa",
		"mastercard", "liab",
	}},
	Other: {"other", "Other Assets", "#f59e0b", nil},
}

func (c Category) info() categoryInfo {
	if c < Equity || c > Other {
		panic(fmt.Sprintf("unknown category %d", c))
	}
	return categoryInfos[c]
}

// String returns the identifier of the category (e.g. "fixed_income").
func (c Category) String() string { return c.info().name }

// Label returns the display name of the category.
func (c Category) Label() string { return c.info().label }

// Color returns the chart color of the category.
func (c Category) Color() string { return c.info().color }

// IsAsset reports whether the category counts toward total assets.
func (c Category) IsAsset() bool { return c != Liability }

// ParseCategory parses a category identifier. A few aliases are accepted.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equity", "stocks":
		return Equity, nil
	case "fixed_income", "fixed", "fixed-income", "bonds":
		return FixedIncome, nil
	case "cash", "liquid":
		return Cash, nil
	case "liability", "debt":
		return Liability, nil
	case "other":
		return Other, nil
	default:
		return Other, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// classificationOrder is the keyword matching priority.
var classificationOrder = []Category{Equity, FixedIncome, Liability, Cash}

// Classify guesses the category of an account from its name by keyword
// matching. Categories are tried in the order equity, fixed income,
// liability, cash; names matching none are Other.
func Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, c := range classificationOrder {
		for _, k := range c.info().keywords {
			if strings.Contains(lower, k) {
				return c
			}
		}
	}
	return Other
}

func (c Category) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
