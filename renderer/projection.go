package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// ProjectionMarkdown renders a compound projection and its yearly samples.
func ProjectionMarkdown(m networth.CompoundMetrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Compound Projection at %s per year", m.Growth))
	doc.BulletList(compoundFacts(m)...)

	doc.H2("Yearly Projection")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Year", "Contribution", "Returns", "Phase"},
		Rows:      [][]string{},
	}
	for _, p := range m.Series {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", p.Year),
			p.Contribution.String(),
			p.Returns.String(),
			phase(p),
		})
	}
	doc.Table(table)

	return doc.String()
}

// compoundFacts lists the key figures of a projection.
func compoundFacts(m networth.CompoundMetrics) []string {
	return []string{
		fmt.Sprintf("Current net worth: %s", m.CurrentNetWorth),
		fmt.Sprintf("Estimated monthly contribution: %s", m.MonthlyContribution),
		fmt.Sprintf("Current monthly return: %s", m.MonthlyReturn),
		fmt.Sprintf("Phase progress: %s", m.PhaseProgress),
		crossoverText(m),
	}
}

func crossoverText(m networth.CompoundMetrics) string {
	c := m.Crossover
	if !c.Reached {
		return fmt.Sprintf("Crossover: not reached within %d months", m.Horizon)
	}
	return fmt.Sprintf("Crossover: %s (%.1f years)", c.Date.Format("January 2006"), c.Years)
}

func phase(p networth.ProjectionPoint) string {
	if p.Returns.GreaterThanOrEqual(p.Contribution) {
		return "exponential"
	}
	return "linear"
}
