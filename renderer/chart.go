package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/etnz/rentcheck"
	md "github.com/nao1215/markdown"
)

const (
	labelWidth = 32
	axis       = "│"
)

// ChartMarkdown renders a horizontal bar chart of the cash-on-cash return of
// every scored property, in report order. Bars grow from a zero axis, left
// for negative returns and right for positive ones, and are scaled so that the
// largest absolute return spans width cells.
func ChartMarkdown(r *rentcheck.Report, width int) string {
	if width <= 0 {
		width = 40
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Stress-Tested Cash-on-Cash by Property")

	var maxAbs float64
	for _, res := range r.Results {
		if res.Scored != nil && res.Scored.SCoC.IsFinite() {
			maxAbs = math.Max(maxAbs, math.Abs(float64(res.Scored.SCoC)))
		}
	}

	var lines []string
	for _, res := range r.Results {
		s := res.Scored
		if s == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", pad(s.Address, labelWidth), bar(float64(s.SCoC), maxAbs, width), s.SCoC.SignedString()))
	}
	if len(lines) == 0 {
		doc.PlainText("Nothing to chart.")
		return doc.String()
	}

	stress := rentcheck.Percent(r.Assumptions.StressBps / 100).SignedString()
	doc.PlainText(fmt.Sprintf("sCoC (%%) at %s rate, %g weeks vacancy.", stress, r.Assumptions.VacancyWeeks))
	doc.PlainText("```\n" + strings.Join(lines, "\n") + "\n```")
	return doc.String()
}

// bar returns the bar of v relative to maxAbs, width cells on each side of
// the zero axis.
func bar(v, maxAbs float64, width int) string {
	blank := strings.Repeat(" ", width)
	if math.IsNaN(v) || maxAbs == 0 {
		return blank + axis + blank
	}
	n := width
	if !math.IsInf(v, 0) {
		n = min(width, int(math.Round(math.Abs(v)/maxAbs*float64(width))))
	}
	if v < 0 {
		return strings.Repeat(" ", width-n) + strings.Repeat("▒", n) + axis + blank
	}
	return blank + axis + strings.Repeat("█", n) + strings.Repeat(" ", width-n)
}

// pad truncates or pads s to exactly n runes.
func pad(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		runes := []rune(s)
		return string(runes[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-utf8.RuneCountInString(s))
}
