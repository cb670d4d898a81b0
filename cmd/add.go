package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	date   string
	policy string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record account balances on a date" }
func (*addCmd) Usage() string {
	return `nw add [-d <date>] [-policy <policy>] <account>=<balance>...

  Records a snapshot. Accounts are given by id or name, balances are decimal
  numbers. Liabilities are entered as positive amounts owed.

  Example:

    nw add -d 2024-01-31 Checking=1200.50 "Visa Card=340"
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the snapshot. See 'nw topic dataset' for supported date formats.")
	f.StringVar(&c.policy, "policy", "reject", "What to do when a snapshot exists on that date: reject, overwrite or merge.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	policy, err := networth.ParseMergePolicy(c.policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "add requires at least one <account>=<balance>")
		return subcommands.ExitUsageError
	}

	d, err := DecodeDataset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rec, err := parseBalances(d, on, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := d.Put(rec, policy); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodeDataset(d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	saved, _ := d.Record(on)
	fmt.Printf("Snapshot of %s: net worth %s\n", on, networth.NetWorth(saved, d.Columns()).In(mustConfig().Currency))
	return subcommands.ExitSuccess
}

// parseBalances parses account=balance arguments into a record.
func parseBalances(d *networth.Dataset, on date.Date, args []string) (networth.Record, error) {
	rec := networth.NewRecord(on)
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return rec, fmt.Errorf("invalid balance %q, want <account>=<balance>", arg)
		}
		col, ok := d.Lookup(strings.TrimSpace(name))
		if !ok {
			return rec, fmt.Errorf("unknown account %q, see 'nw accounts'", name)
		}
		v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
		if err != nil {
			return rec, fmt.Errorf("invalid balance for %q: %w", name, err)
		}
		rec = rec.Set(col.ID, v)
	}
	return rec, nil
}

// mustConfig returns the configuration, or the default one when it cannot be
// read. Use it only for cosmetic settings.
func mustConfig() networth.Config {
	cfg, err := LoadConfig()
	if err != nil {
		Logger.WithError(err).Debug("using default configuration")
		return networth.DefaultConfig()
	}
	return cfg
}

type removeCmd struct {
	date string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove the snapshot of a date" }
func (*removeCmd) Usage() string {
	return `nw remove -d <date>

  Deletes the snapshot recorded on the given date.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the snapshot to delete.")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.date == "" {
		fmt.Fprintln(os.Stderr, "remove requires -d <date>")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	d, err := DecodeDataset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !d.Delete(on) {
		fmt.Fprintf(os.Stderr, "no snapshot on %s\n", on)
		return subcommands.ExitFailure
	}
	if err := EncodeDataset(d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed the snapshot of %s\n", on)
	return subcommands.ExitSuccess
}
