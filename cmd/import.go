package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type importCmd struct {
	policy string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import snapshots from a CSV sheet" }
func (*importCmd) Usage() string {
	return `nw import [-policy <policy>] <file.csv>

  Imports a snapshot sheet: a Year and a Month column, then one column per
  account. Columns whose header contains "total" are ignored. Accounts are
  matched by name, new ones are created and classified by keywords.

  Rows that cannot be read are skipped and reported.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.policy, "policy", "merge", "What to do with a snapshot on an existing date: reject, overwrite or merge.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import requires exactly one CSV file")
		return subcommands.ExitUsageError
	}
	policy, err := networth.ParseMergePolicy(c.policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	file := f.Arg(0)
	r, err := os.Open(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	sheet, err := networth.ParseSheet(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	for _, s := range sheet.Skipped {
		Logger.WithFields(logrus.Fields{"file": file, "line": s.Line}).Warn("skipped row: " + s.Reason)
	}

	d, err := DecodeDataset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	before := len(d.Columns())
	if err := d.ImportSheet(sheet, policy); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", file, err)
		return subcommands.ExitFailure
	}
	if err := EncodeDataset(d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d snapshots and %d new accounts from %s (%d rows skipped)\n",
		len(sheet.Records), len(d.Columns())-before, file, len(sheet.Skipped))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export snapshots as a CSV sheet" }
func (*exportCmd) Usage() string {
	return `nw export [-o <file.csv>]

  Writes every snapshot as a CSV sheet that 'nw import' can read back.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := DecodeDataset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		if w, err = os.Create(c.output); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer w.Close()
	}
	if err := networth.ExportSheet(w, d); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
