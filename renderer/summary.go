package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the headline figures of a report.
func SummaryMarkdown(r *networth.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net Worth Summary on %s", r.Current.Date))
	doc.PlainText(fmt.Sprintf("Net Worth: %s (%s view%s)", md.Bold(r.Current.NetWorth().String()), r.Config.Period, yearSuffix(r.Config.Year)))

	kpi := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Metric", "Value", "Change", "Change %"},
		Rows: [][]string{
			trendRow("Net Worth", r.Trends.NetWorth),
			trendRow("Total Assets", r.Trends.Assets),
			trendRow("Total Debt", r.Trends.Debt),
			trendRow("Liquidity", r.Trends.Liquidity),
		},
	}
	doc.Table(kpi)

	doc.H2("Risk & Performance")
	scope := "whole history"
	if r.Config.Scope == networth.ViewScope {
		scope = "displayed view"
	}
	risk := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Max Drawdown (" + scope + ")", r.MaxDrawdown.String()},
			{"CAGR (" + scope + ")", cagrText(r)},
			{"Year to Date", r.YTD.SignedString()},
			{"Debt to Assets", r.Leverage.DebtToAssets.String()},
			{"Debt to Equity", r.Leverage.DebtToEquity.String()},
		},
	}
	doc.Table(risk)

	doc.H2("Allocation")
	if len(r.Allocation) == 0 {
		doc.PlainText("No positive asset.")
	} else {
		alloc := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Category", "Value", "Share"},
		}
		for _, s := range r.Allocation {
			alloc.Rows = append(alloc.Rows, []string{s.Category.Label(), s.Value.String(), s.Share.String()})
		}
		doc.Table(alloc)
	}

	doc.H2("Compound Phase")
	doc.BulletList(compoundFacts(r.Compound)...)

	return doc.String()
}

func trendRow(name string, t networth.Trend) []string {
	return []string{name, t.Value.String(), t.Change.SignedString(), t.Percent.SignedString()}
}

func cagrText(r *networth.Report) string {
	if !r.CAGRDefined {
		return "n/a"
	}
	return r.CAGR.String()
}

func yearSuffix(y int) string {
	if y == 0 {
		return ""
	}
	return fmt.Sprintf(", %d only", y)
}
