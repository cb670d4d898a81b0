package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

// reportFlags are the flags shared by report commands. Empty values keep the
// configuration file settings.
type reportFlags struct {
	settings map[string]*string
	json     bool
	query    string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	r.settings = map[string]*string{
		"period":  f.String("period", "", "Display period: monthly, quarterly or yearly."),
		"year":    f.String("year", "", "Restrict the view to a year."),
		"growth":  f.String("growth", "", "Assumed annual growth rate, in percent."),
		"horizon": f.String("horizon", "", "Projection horizon in months."),
		"scope":   f.String("scope", "", "Drawdown reference: history or view."),
		"window":  f.String("window", "", "Number of trailing snapshots used to estimate the monthly contribution."),
	}
	f.BoolVar(&r.json, "json", false, "Print JSON instead of markdown.")
	f.StringVar(&r.query, "query", "", "JSONPath query applied to the JSON output. Implies -json.")
}

var errNoData = errors.New("no snapshot to report on, see 'nw import' or 'nw add'")

// report loads the dataset and computes its report.
func (r *reportFlags) report() (*networth.Report, error) {
	settings := make(map[string]string)
	for name, v := range r.settings {
		if *v != "" {
			settings[name] = *v
		}
	}
	return reporter(settings)
}

// reporter computes the report of the dataset file with settings overriding
// the configuration.
func reporter(settings map[string]string) (*networth.Report, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	for name, v := range settings {
		if cfg, err = cfg.Set(name, v); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	on, err := today()
	if err != nil {
		return nil, err
	}
	d, err := DecodeDataset()
	if err != nil {
		return nil, err
	}
	r := d.Report(cfg, on)
	if r == nil {
		return nil, errNoData
	}
	return r, nil
}

// run computes the report and prints either the JSON of v(report) or its
// markdown.
func (r *reportFlags) run(v func(*networth.Report) any, markdown func(*networth.Report) string) subcommands.ExitStatus {
	rep, err := r.report()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if r.json || r.query != "" {
		if err := printJSON(os.Stdout, v(rep), r.query); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(markdown(rep))
	return subcommands.ExitSuccess
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{ reportFlags }

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display net worth key figures" }
func (*summaryCmd) Usage() string {
	return `nw summary [-year <year>] [-period <period>] [-scope <scope>] [-json] [-query <jsonpath>]

  Displays the net worth, its trend since the previous period, the leverage
  ratios, the allocation, the maximum drawdown, the CAGR and the compound
  growth phase.
`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(func(r *networth.Report) any { return r }, renderer.SummaryMarkdown)
}

type historyCmd struct{ reportFlags }

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the net worth history by period" }
func (*historyCmd) Usage() string {
	return `nw history [-period <period>] [-year <year>] [-scope <scope>] [-json] [-query <jsonpath>]

  Displays the category totals, the net worth and the drawdown of the last
  snapshot of each period.
`
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(func(r *networth.Report) any { return r.Series }, renderer.HistoryMarkdown)
}

type projectionCmd struct{ reportFlags }

func (*projectionCmd) Name() string     { return "projection" }
func (*projectionCmd) Synopsis() string { return "project the net worth with compound growth" }
func (*projectionCmd) Usage() string {
	return `nw projection [-growth <percent>] [-horizon <months>] [-window <n>] [-json] [-query <jsonpath>]

  Estimates the monthly contribution from recent snapshots and simulates the
  net worth growth until the horizon. Reports when the monthly market return
  overtakes the contribution.
`
}

func (c *projectionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(
		func(r *networth.Report) any { return r.Compound },
		func(r *networth.Report) string { return renderer.ProjectionMarkdown(r.Compound) },
	)
}
