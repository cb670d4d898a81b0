package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the aggregated series of a report, one row per
// period with the category totals and the drawdown.
func HistoryMarkdown(r *networth.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History by %s%s", r.Config.Period.Name(), yearSuffix(r.Config.Year)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Period", "Date", "Equity", "Fixed Income", "Cash", "Liability", "Other", "Net Worth", "Drawdown"},
		Rows:   [][]string{},
	}
	for _, p := range r.Series {
		t := p.Totals
		table.Rows = append(table.Rows, []string{
			p.Label,
			p.Date.String(),
			t.Equity.String(),
			t.FixedIncome.String(),
			t.Cash.String(),
			t.Liability.String(),
			t.Other.String(),
			p.NetWorth().String(),
			p.Drawdown.String(),
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Max drawdown: %s", r.MaxDrawdown))

	return doc.String()
}
