package networth

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType identifies the kind of a dataset line.
type CommandType string

const (
	CmdAccount  CommandType = "account"
	CmdSnapshot CommandType = "snapshot"
)

type accountCmd struct {
	Command  CommandType `json:"command"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category *Category   `json:"category"`
	Custom   bool        `json:"custom,omitempty"`
}

type snapshotCmd struct {
	Command CommandType                `json:"command"`
	Date    date.Date                  `json:"date"`
	Values  map[string]decimal.Decimal `json:"values"`
}

// DecodeDataset reads a dataset from a stream of JSONL lines.
//
// Accounts must be declared before the snapshots that use them. Two
// snapshots on the same date are merged, the later line winning.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	d := NewDataset()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(b, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command: %w", line, err)
		}
		switch identifier.Command {
		case CmdAccount:
			var cmd accountCmd
			if err := json.Unmarshal(b, &cmd); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := d.Declare(Column{ID: cmd.ID, Name: cmd.Name, Category: categoryOr(cmd.Category, cmd.Name), Custom: cmd.Custom}); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		case CmdSnapshot:
			var cmd snapshotCmd
			if err := json.Unmarshal(b, &cmd); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := d.Put(Record{Date: cmd.Date, Values: cmd.Values}, Merge); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", line, identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	return d, nil
}

// EncodeDataset writes the dataset as JSONL: the accounts first, then the
// snapshots in chronological order.
func EncodeDataset(w io.Writer, d *Dataset) error {
	enc := json.NewEncoder(w)
	for _, c := range d.columns {
		cmd := accountCmd{Command: CmdAccount, ID: c.ID, Name: c.Name, Category: &c.Category, Custom: c.Custom}
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("could not encode account %q: %w", c.ID, err)
		}
	}
	for on, r := range d.records.Values() {
		cmd := snapshotCmd{Command: CmdSnapshot, Date: on, Values: r.Values}
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("could not encode snapshot %s: %w", on, err)
		}
	}
	return nil
}
