package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// AccountsMarkdown renders the accounts with their balance in the latest
// snapshot.
func AccountsMarkdown(columns []networth.Column, latest networth.Record, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if latest.Date.IsZero() {
		doc.H1("Accounts")
	} else {
		doc.H1(fmt.Sprintf("Accounts on %s", latest.Date))
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Name", "ID", "Category", "Balance"},
		Rows:      [][]string{},
	}
	for _, c := range columns {
		name := c.Name
		if c.Custom {
			name += " *"
		}
		table.Rows = append(table.Rows, []string{
			name,
			c.ID,
			c.Category.Label(),
			networth.M(latest.Value(c.ID), currency).String(),
		})
	}
	doc.Table(table)
	doc.PlainText("Accounts marked with * were added manually.")
	return doc.String()
}
