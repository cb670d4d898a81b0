package networth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// This file handles the spreadsheet (CSV) format of the snapshot sheet: one
// row per date with a Year and a Month column, one column per account.

// SkippedRow is a CSV row that could not be imported.
type SkippedRow struct {
	Line   int
	Reason string
}

// Sheet is the content of a parsed CSV snapshot sheet.
type Sheet struct {
	Columns []Column
	Records []Record // ascending
	Skipped []SkippedRow
}

// placeholders are cell contents spreadsheets use for an empty amount.
var placeholders = []string{"$ -", "-", "", "$-", "null"}

// ParseAmount converts a spreadsheet amount cell into a decimal.
//
// Currency signs, thousand separators and spaces are dropped. "(1,234)" and
// "-1,234" are negative. Placeholders like "$ -" and unparsable content are 0.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if slices.Contains(placeholders, s) {
		return decimal.Zero
	}
	negative := strings.HasPrefix(s, "-") || (strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))

	var b strings.Builder
	dot := false
scan:
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			dot = true
			b.WriteRune(r)
		case r == '.':
			// a second dot ends the number
			break scan
		}
	}
	v, err := decimal.NewFromString(strings.TrimSuffix(b.String(), "."))
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return v.Neg()
	}
	return v
}

// leadingInt parses the leading digits of s, ok is false when there are none.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	return v, err == nil
}

// serialEpoch is the spreadsheet serial number of 1970-01-01.
const serialEpoch = 25569

// ResolveDate computes the date of a row from its Year and Month cells.
//
// The month cell can be "m/d" (day defaults to 1), a spreadsheet serial date
// (any number above 20000, only its month is kept) or a month number. Days
// are always 1 unless given.
func ResolveDate(yearCell, monthCell string) (date.Date, bool) {
	y, ok := leadingInt(yearCell)
	monthCell = strings.TrimSpace(monthCell)
	if !ok || y == 0 || monthCell == "" {
		return date.Date{}, false
	}
	if m, d, found := strings.Cut(monthCell, "/"); found {
		month, ok := leadingInt(m)
		if !ok {
			return date.Date{}, false
		}
		day, ok := leadingInt(d)
		if !ok || day == 0 {
			day = 1
		}
		return date.New(y, time.Month(month), day), true
	}
	num, err := strconv.ParseFloat(monthCell, 64)
	if err != nil {
		return date.Date{}, false
	}
	if num > 20000 {
		serial := time.Unix(int64((num-serialEpoch)*86400), 0).UTC()
		return date.New(y, serial.Month(), 1), true
	}
	return date.New(y, time.Month(int(num)), 1), true
}

// ParseSheet reads a CSV snapshot sheet.
//
// The header row must contain a Year and a Month column (case insensitive).
// Headers containing "total" are ignored. Every other header is an account
// whose category is guessed from its name and whose id is "col_<index>".
// Rows that are too short or have no valid date are skipped and reported.
func ParseSheet(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV: a header row is required")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}

	yearIdx, monthIdx := -1, -1
	type account struct {
		Column
		index int
	}
	var accounts []account
	for i, h := range header {
		h = strings.TrimSpace(h)
		lower := strings.ToLower(h)
		switch {
		case lower == "year" && yearIdx < 0:
			yearIdx = i
		case lower == "month" && monthIdx < 0:
			monthIdx = i
		case strings.Contains(lower, "total"):
		case h == "":
		default:
			name := strings.Join(strings.Fields(h), " ")
			accounts = append(accounts, account{
				Column: Column{ID: fmt.Sprintf("col_%d", i), Name: name, Category: Classify(name)},
				index:  i,
			})
		}
	}
	if yearIdx < 0 || monthIdx < 0 {
		return nil, errors.New("CSV header requires a Year and a Month column")
	}

	sheet := &Sheet{}
	for _, a := range accounts {
		sheet.Columns = append(sheet.Columns, a.Column)
	}
	var rows date.History[Record]
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) < 2 {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{line, "too few cells"})
			continue
		}
		if yearIdx >= len(row) || monthIdx >= len(row) {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{line, "missing Year or Month cell"})
			continue
		}
		on, ok := ResolveDate(row[yearIdx], row[monthIdx])
		if !ok {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{line, fmt.Sprintf("invalid date %q %q", row[yearIdx], row[monthIdx])})
			continue
		}
		rec := NewRecord(on)
		for _, a := range accounts {
			v := decimal.Zero
			if a.index < len(row) {
				v = ParseAmount(row[a.index])
			}
			rec.Values[a.ID] = v
		}
		rows.Append(on, rec)
	}
	for _, rec := range rows.Values() {
		sheet.Records = append(sheet.Records, rec)
	}
	return sheet, nil
}

// ImportSheet merges a parsed sheet into the dataset.
//
// Accounts are matched by name, unknown ones are declared. Records are
// inserted with the given policy, the first rejected record stops the import.
func (d *Dataset) ImportSheet(s *Sheet, policy MergePolicy) error {
	ids := make(map[string]string, len(s.Columns))
	for _, c := range s.Columns {
		if existing, ok := d.ColumnByName(c.Name); ok {
			ids[c.ID] = existing.ID
			continue
		}
		id := c.ID
		for n := 2; ; n++ {
			if _, taken := d.Column(id); !taken {
				break
			}
			id = fmt.Sprintf("%s_%d", c.ID, n)
		}
		ids[c.ID] = id
		c.ID = id
		if err := d.Declare(c); err != nil {
			return err
		}
	}
	for _, rec := range s.Records {
		mapped := NewRecord(rec.Date)
		for id, v := range rec.Values {
			mapped.Values[ids[id]] = v
		}
		if err := d.Put(mapped, policy); err != nil {
			return err
		}
	}
	return nil
}

// ExportSheet writes the dataset as a CSV snapshot sheet: Year, Month as
// "m/d", one column per account and the net worth as Total.
func ExportSheet(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	columns := d.Columns()
	header := []string{"Year", "Month"}
	for _, c := range columns {
		header = append(header, c.Name)
	}
	header = append(header, "Total")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range d.Records() {
		row := []string{
			strconv.Itoa(rec.Date.Year()),
			fmt.Sprintf("%d/%d", rec.Date.Month(), rec.Date.Day()),
		}
		for _, c := range columns {
			row = append(row, rec.Value(c.ID).String())
		}
		row = append(row, NetWorth(rec, columns).Decimal().String())
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
