// Package renderer turns rentcheck reports into markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/rentcheck"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the top ranked properties of r, the assumptions they
// were scored with, the signal counts and the rows that could not be scored.
// top <= 0 renders every property.
func ReportMarkdown(r *rentcheck.Report, top int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	summary := r.Summary()
	doc.H1("Stress-Tested Cash-on-Cash")
	doc.PlainText(fmt.Sprintf("Report %s on %s: %d properties, %d scored.",
		r.ID, r.Created.Format("2006-01-02 15:04"), summary.Rows, summary.Scored))

	doc.H2("Assumptions")
	doc.Table(AssumptionsTable(r.Assumptions))

	results := r.Top(top)
	if top > 0 && top < len(r.Results) {
		doc.H2(fmt.Sprintf("Top %d by sCoC", len(results)))
	} else {
		doc.H2("Properties by sCoC")
	}
	table := md.TableSet{
		Header: []string{"Property", "Price", "Gross Yield", "Net Yield", "NOI", "Debt Service", "sCoC", "DSCR", "Signal"},
	}
	for _, res := range results {
		s := res.Scored
		if s == nil {
			continue
		}
		price, _ := s.Price.Get()
		table.Rows = append(table.Rows, []string{
			s.Address,
			price.String(),
			s.GrossYield.String(),
			s.NetYield.String(),
			s.NOI.String(),
			s.DebtService.String(),
			md.Bold(s.SCoC.String()),
			formatDSCR(s.DSCR),
			string(s.Signal),
		})
	}
	if len(table.Rows) > 0 {
		doc.Table(table)
	} else {
		doc.PlainText("No property could be scored.")
	}

	doc.H2("Signals")
	var counts []string
	for _, sig := range rentcheck.Signals {
		counts = append(counts, fmt.Sprintf("%s: %d", sig, summary.Signals[sig]))
	}
	doc.BulletList(counts...)

	if failures := r.Failures(); len(failures) > 0 {
		doc.H2("Warnings")
		var lines []string
		for _, f := range failures {
			lines = append(lines, fmt.Sprintf("row %d %q: %v", f.Row+1, f.Property.Address, f.Err))
		}
		doc.BulletList(lines...)
	}

	return doc.String()
}

// AssumptionsTable renders the assumptions as a two column table.
func AssumptionsTable(a rentcheck.Assumptions) md.TableSet {
	return md.TableSet{
		Header: []string{"Assumption", "Value"},
		Rows: [][]string{
			{"Vacancy", fmt.Sprintf("%g weeks per year", a.VacancyWeeks)},
			{"Maintenance", fmt.Sprintf("%s of rent", rentcheck.Percent(100*a.MaintenanceRate))},
			{"Capex Reserve", fmt.Sprintf("%s of price", rentcheck.Percent(100*a.CapexRate))},
			{"Purchase Costs", fmt.Sprintf("%s of price", rentcheck.Percent(100*a.PurchaseCostRate))},
			{"LVR", rentcheck.Percent(100 * a.LVR).String()},
			{"Loan Term", fmt.Sprintf("%d years", a.LoanTermYears)},
			{"Rate Stress", fmt.Sprintf("%s (%g bps)", rentcheck.Percent(a.StressBps/100).SignedString(), a.StressBps)},
		},
	}
}

func formatDSCR(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsNaN(v) || math.IsInf(v, -1):
		return "n/a"
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
