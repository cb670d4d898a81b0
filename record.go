package networth

import (
	"encoding/json"
	"maps"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// Column is a financial account: one column of the snapshot sheet.
type Column struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Custom   bool     `json:"custom,omitempty"` // created by the user rather than imported
}

// UnmarshalJSON decodes a column. A column without a category is classified
// from its name.
func (c *Column) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		Category *Category `json:"category"`
		Custom   bool      `json:"custom"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Column{ID: raw.ID, Name: raw.Name, Category: categoryOr(raw.Category, raw.Name), Custom: raw.Custom}
	return nil
}

// categoryOr returns *c, or the category classified from name when c is nil.
func categoryOr(c *Category, name string) Category {
	if c == nil {
		return Classify(name)
	}
	return *c
}

// Record is a snapshot of every account balance on a given date.
//
// Liability balances are magnitudes, the sign is applied when totals are
// computed.
type Record struct {
	Date   date.Date                  `json:"date"`
	Values map[string]decimal.Decimal `json:"values"`
}

// NewRecord creates an empty record on the given date.
func NewRecord(on date.Date) Record {
	return Record{Date: on, Values: make(map[string]decimal.Decimal)}
}

// Value returns the balance of account id, 0 when missing.
func (r Record) Value(id string) decimal.Decimal { return r.Values[id] }

// Set sets the balance of account id and returns the record.
func (r Record) Set(id string, v decimal.Decimal) Record {
	if r.Values == nil {
		r.Values = make(map[string]decimal.Decimal)
	}
	r.Values[id] = v
	return r
}

// clone returns a record that shares nothing with r.
func (r Record) clone() Record {
	return Record{Date: r.Date, Values: maps.Clone(r.Values)}
}

// FilterYear returns the records dated in year y. y == 0 returns all records.
func FilterYear(records []Record, y int) []Record {
	if y == 0 {
		return records
	}
	r := date.Year(y)
	var res []Record
	for _, rec := range records {
		if r.Contains(rec.Date) {
			res = append(res, rec)
		}
	}
	return res
}

// Years returns the distinct years present in records, most recent first.
func Years(records []Record) []int {
	var years []int
	for i := len(records) - 1; i >= 0; i-- {
		y := records[i].Date.Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}
