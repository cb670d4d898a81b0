package networth

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/networth/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrDuplicateDate is returned when a snapshot is inserted on a date that
	// already has one and the policy rejects conflicts.
	ErrDuplicateDate = errors.New("a snapshot already exists on that date")
	// ErrUnknownColumn is returned when a value refers to an undeclared account.
	ErrUnknownColumn = errors.New("unknown account")
	// ErrUnknownPolicy is returned when parsing an unknown merge policy.
	ErrUnknownPolicy = errors.New("unknown merge policy")
)

// MergePolicy decides what happens when a snapshot is inserted on a date that
// already has one.
type MergePolicy int

const (
	// Reject fails with ErrDuplicateDate.
	Reject MergePolicy = iota
	// Overwrite replaces the existing snapshot.
	Overwrite
	// Merge keeps the existing values, new values win.
	Merge
)

func (p MergePolicy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Overwrite:
		return "overwrite"
	case Merge:
		return "merge"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(p))
	}
}

// ParseMergePolicy parses "reject", "overwrite" or "merge".
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject":
		return Reject, nil
	case "overwrite":
		return Overwrite, nil
	case "merge":
		return Merge, nil
	default:
		return Reject, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Dataset is the set of accounts and their dated snapshots.
//
// It holds at most one record per date. Records are copied in and out, the
// caller never shares a map with the dataset.
type Dataset struct {
	columns []Column
	records date.History[Record]
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset { return &Dataset{} }

// Columns returns the accounts in declaration order.
func (d *Dataset) Columns() []Column { return slices.Clone(d.columns) }

// Records returns the snapshots in chronological order.
func (d *Dataset) Records() []Record {
	res := make([]Record, 0, d.records.Len())
	for _, r := range d.records.Values() {
		res = append(res, r.clone())
	}
	return res
}

// Len returns the number of snapshots.
func (d *Dataset) Len() int { return d.records.Len() }

// Record returns the snapshot on day.
func (d *Dataset) Record(day date.Date) (Record, bool) {
	r, ok := d.records.Get(day)
	return r.clone(), ok
}

// Latest returns the most recent snapshot.
func (d *Dataset) Latest() (Record, bool) {
	if d.records.Len() == 0 {
		return Record{}, false
	}
	_, r := d.records.Latest()
	return r.clone(), true
}

// RecordAsOf returns the snapshot on day, or the most recent one before it.
func (d *Dataset) RecordAsOf(day date.Date) (Record, bool) {
	r, ok := d.records.ValueAsOf(day)
	return r.clone(), ok
}

// Column returns the account with the given id.
func (d *Dataset) Column(id string) (Column, bool) {
	i := slices.IndexFunc(d.columns, func(c Column) bool { return c.ID == id })
	if i < 0 {
		return Column{}, false
	}
	return d.columns[i], true
}

// ColumnByName returns the account with the given name, ignoring case.
func (d *Dataset) ColumnByName(name string) (Column, bool) {
	i := slices.IndexFunc(d.columns, func(c Column) bool { return strings.EqualFold(c.Name, name) })
	if i < 0 {
		return Column{}, false
	}
	return d.columns[i], true
}

// Lookup returns the account whose id or name is s.
func (d *Dataset) Lookup(s string) (Column, bool) {
	if c, ok := d.Column(s); ok {
		return c, true
	}
	return d.ColumnByName(s)
}

// AddColumn creates a custom account.
func (d *Dataset) AddColumn(name string, category Category) (Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Column{}, errors.New("account name is required")
	}
	if _, exists := d.ColumnByName(name); exists {
		return Column{}, fmt.Errorf("account %q already exists", name)
	}
	c := Column{
		ID:       "col_custom_" + uuid.NewString(),
		Name:     name,
		Category: category,
		Custom:   true,
	}
	d.columns = append(d.columns, c)
	return c, nil
}

// Declare adds an account with a caller chosen id.
func (d *Dataset) Declare(c Column) error {
	if c.ID == "" {
		return errors.New("account id is required")
	}
	if _, exists := d.Column(c.ID); exists {
		return fmt.Errorf("account %q already declared", c.ID)
	}
	d.columns = append(d.columns, c)
	return nil
}

// SetCategory changes the category of an account.
func (d *Dataset) SetCategory(id string, category Category) error {
	i := slices.IndexFunc(d.columns, func(c Column) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	d.columns[i].Category = category
	return nil
}

// Put inserts a snapshot, resolving a conflict on its date with policy.
func (d *Dataset) Put(r Record, policy MergePolicy) error {
	if r.Date.IsZero() {
		return errors.New("snapshot date is required")
	}
	for id := range r.Values {
		if _, ok := d.Column(id); !ok {
			return fmt.Errorf("%w: %q on %s", ErrUnknownColumn, id, r.Date)
		}
	}
	r = r.clone()
	existing, exists := d.records.Get(r.Date)
	if exists {
		switch policy {
		case Reject:
			return fmt.Errorf("%w: %s", ErrDuplicateDate, r.Date)
		case Overwrite:
		case Merge:
			merged := existing.clone()
			for id, v := range r.Values {
				merged = merged.Set(id, v)
			}
			r = merged
		default:
			return fmt.Errorf("%w: %v", ErrUnknownPolicy, policy)
		}
	}
	if r.Values == nil {
		r.Values = map[string]decimal.Decimal{}
	}
	d.records.Append(r.Date, r)
	return nil
}

// Delete removes the snapshot on day and reports whether there was one.
func (d *Dataset) Delete(day date.Date) bool { return d.records.Delete(day) }

// Report computes the report of the whole dataset.
func (d *Dataset) Report(cfg Config, today date.Date) *Report {
	return NewReport(d.columns, d.Records(), cfg, today)
}
