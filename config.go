package networth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/networth/date"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the working
// directory.
const DefaultConfigFile = ".networth.yaml"

// DrawdownScope selects the reference of the running maximum used for
// drawdowns, max drawdown and CAGR.
type DrawdownScope int

const (
	// HistoryScope measures drawdowns against the whole recorded history, even
	// when the view is restricted to a year.
	HistoryScope DrawdownScope = iota
	// ViewScope measures drawdowns against the displayed series only.
	ViewScope
)

func (s DrawdownScope) String() string {
	switch s {
	case HistoryScope:
		return "history"
	case ViewScope:
		return "view"
	default:
		return fmt.Sprintf("DrawdownScope(%d)", int(s))
	}
}

// ParseDrawdownScope parses "history" or "view".
func ParseDrawdownScope(s string) (DrawdownScope, error) {
	switch strings.ToLower(s) {
	case "history", "":
		return HistoryScope, nil
	case "view", "local":
		return ViewScope, nil
	default:
		return HistoryScope, fmt.Errorf("invalid drawdown scope %q, want history or view", s)
	}
}

func (s DrawdownScope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *DrawdownScope) UnmarshalText(text []byte) error {
	v, err := ParseDrawdownScope(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Config are the assumptions and view settings of a report.
type Config struct {
	Growth             Percent       `json:"growth"`   // assumed annual growth rate
	Horizon            int           `json:"horizon"`  // projection horizon in months
	Scope              DrawdownScope `json:"scope"`    // drawdown reference
	Period             date.Period   `json:"period"`   // display bucket
	Year               int           `json:"year"`     // restricts the view to a year, 0 for all
	ContributionWindow int           `json:"window"`   // trailing records used by the estimator
	Currency           string        `json:"currency"` // ISO code used to display amounts
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Growth:             7,
		Horizon:            DefaultHorizon,
		Scope:              HistoryScope,
		Period:             date.Monthly,
		ContributionWindow: DefaultContributionWindow,
		Currency:           "USD",
	}
}

// Validate checks that the configuration can be used to compute a report.
func (c Config) Validate() error {
	var errs []error
	if c.Growth < -100 || c.Growth > 100 {
		errs = append(errs, fmt.Errorf("growth %v out of range [-100%%, 100%%]", c.Growth))
	}
	if c.Horizon <= 0 || c.Horizon > 1200 {
		errs = append(errs, fmt.Errorf("horizon %d out of range [1, 1200] months", c.Horizon))
	}
	if c.ContributionWindow < 2 {
		errs = append(errs, fmt.Errorf("contribution window %d must be at least 2", c.ContributionWindow))
	}
	if c.Year < 0 {
		errs = append(errs, fmt.Errorf("invalid year %d", c.Year))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("invalid currency %q", c.Currency))
	}
	return errors.Join(errs...)
}

// configFile is the on-disk configuration shape (YAML).
type configFile struct {
	Growth   *float64 `yaml:"growth"`
	Horizon  int      `yaml:"horizon_months"`
	Scope    string   `yaml:"drawdown_scope"`
	Period   string   `yaml:"period"`
	Year     int      `yaml:"year"`
	Window   int      `yaml:"contribution_window"`
	Currency string   `yaml:"currency"`
}

// LoadConfig reads a YAML configuration file over the defaults and validates
// it.
func LoadConfig(path string) (Config, error) {
	c, err := LoadConfigUnchecked(path)
	if err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return c, nil
}

// LoadConfigUnchecked reads a YAML configuration file over the defaults
// without validating the result.
func LoadConfigUnchecked(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return c, fmt.Errorf("cannot parse configuration %q: %w", path, err)
	}
	return f.apply(c)
}

// apply overlays the fields set in f onto c.
func (f configFile) apply(c Config) (Config, error) {
	if f.Growth != nil {
		c.Growth = Percent(*f.Growth)
	}
	if f.Horizon != 0 {
		c.Horizon = f.Horizon
	}
	if f.Scope != "" {
		s, err := ParseDrawdownScope(f.Scope)
		if err != nil {
			return c, err
		}
		c.Scope = s
	}
	if f.Period != "" {
		p, err := date.ParsePeriod(f.Period)
		if err != nil {
			return c, err
		}
		c.Period = p
	}
	if f.Year != 0 {
		c.Year = f.Year
	}
	if f.Window != 0 {
		c.ContributionWindow = f.Window
	}
	if f.Currency != "" {
		c.Currency = strings.ToUpper(f.Currency)
	}
	return c, nil
}

// Set overrides a single setting from its textual value. Names are the ones
// used by command line flags and HTTP query parameters: growth, horizon,
// scope, period, year, window and currency.
func (c Config) Set(name, value string) (Config, error) {
	var err error
	switch name {
	case "growth":
		var g float64
		g, err = strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		c.Growth = Percent(g)
	case "horizon":
		c.Horizon, err = strconv.Atoi(value)
	case "scope":
		c.Scope, err = ParseDrawdownScope(value)
	case "period":
		c.Period, err = date.ParsePeriod(value)
	case "year":
		c.Year, err = strconv.Atoi(value)
	case "window":
		c.ContributionWindow, err = strconv.Atoi(value)
	case "currency":
		c.Currency = strings.ToUpper(value)
	default:
		return c, fmt.Errorf("unknown setting %q", name)
	}
	if err != nil {
		return c, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return c, nil
}
