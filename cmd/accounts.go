package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/etnz/networth/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct {
	date  string
	json  bool
	query string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their latest balance" }
func (*accountsCmd) Usage() string {
	return `nw accounts [-d <date>] [-json] [-query <jsonpath>]

  Lists every account, its category and its balance in the latest snapshot,
  or in the snapshot in force on the date given with -d.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Show the balances in force on this date.")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of markdown.")
	f.StringVar(&c.query, "query", "", "JSONPath query applied to the JSON output. Implies -json.")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := DecodeDataset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	latest, _ := d.Latest()
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		latest, _ = d.RecordAsOf(on)
	}

	if c.json || c.query != "" {
		if err := printJSON(os.Stdout, d.Columns(), c.query); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.AccountsMarkdown(d.Columns(), latest, cfg.Currency))
	return subcommands.ExitSuccess
}

type accountCmd struct {
	category string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "create an account or change its category" }
func (*accountCmd) Usage() string {
	return `nw account [-c <category>] add <name>
nw account set-category <account> <category>

  'add' creates a custom account. Without -c the category is guessed from
  the name.

  'set-category' changes the category of an account, given by id or name.

  Categories: equity, fixed_income, cash, liability, other.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category of the new account.")
}

func (c *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "account requires an action: add or set-category")
		return subcommands.ExitUsageError
	}

	d, err := DecodeDataset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch action, args := f.Arg(0), f.Args()[1:]; action {
	case "add":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "account add requires exactly one name")
			return subcommands.ExitUsageError
		}
		category := networth.Classify(args[0])
		if c.category != "" {
			if category, err = networth.ParseCategory(c.category); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitUsageError
			}
		}
		col, err := d.AddColumn(args[0], category)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := EncodeDataset(d); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Created account %q (%s) with id %s\n", col.Name, col.Category, col.ID)

	case "set-category":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "account set-category requires an account and a category")
			return subcommands.ExitUsageError
		}
		col, ok := d.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown account %q\n", args[0])
			return subcommands.ExitFailure
		}
		category, err := networth.ParseCategory(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if err := d.SetCategory(col.ID, category); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := EncodeDataset(d); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Account %q is now %s\n", col.Name, category.Label())

	default:
		fmt.Fprintf(os.Stderr, "unknown action %q, want add or set-category\n", action)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
