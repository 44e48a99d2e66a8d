package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/rentcheck"
	"github.com/etnz/rentcheck/renderer"
	"github.com/google/subcommands"
)

// Output file names, in the output folder.
const (
	resultsCSV     = "scoc_results.csv"
	resultsJSONL   = "scoc_results.jsonl"
	templateCSV    = "input_template.csv"
	assumptionsYML = "assumptions.yaml"
)

type scoreCmd struct {
	input       string
	selector    string
	currency    string
	output      string
	top         int
	chart       bool
	assumptions assumptionFlags
}

func (*scoreCmd) Name() string { return "score" }
func (*scoreCmd) Synopsis() string {
	return "rank properties by their stress-tested cash-on-cash return"
}
func (*scoreCmd) Usage() string {
	return `rck score [-i <input>] [-o <folder>] [-top <n>] [-chart] [-config <file>] [assumption flags]

  Scores every listing of the input table, ranks them by stress-tested
  cash-on-cash return and writes scoc_results.csv, scoc_results.jsonl,
  input_template.csv and assumptions.yaml into the output folder.

  Without an input.csv file, the demo listings are scored.
  See 'rck topic metric' for the computation.

`
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", defaultInput, "Input listings (.csv or .json)")
	f.StringVar(&c.selector, "select", "$", "JSONPath selecting the listings of a .json input")
	f.StringVar(&c.currency, "currency", "AUD", "Currency of the amounts")
	f.StringVar(&c.output, "o", "real_estate_metric_outputs", "Output folder")
	f.IntVar(&c.top, "top", 5, "Number of properties in the report, 0 for all")
	f.BoolVar(&c.chart, "chart", false, "Print a chart of the returns")
	c.assumptions.SetFlags(f)
}

func (c *scoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.assumptions.Assumptions(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid assumptions: %v\n", err)
		return subcommands.ExitUsageError
	}

	props, err := decodeProperties(c.input, c.selector, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading listings: %v\n", err)
		return subcommands.ExitFailure
	}
	debugf("read %d listings from %q", len(props), c.input)

	report, err := rentcheck.NewReport(props, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring listings: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, r := range report.Failures() {
		debugf("row %d %q: %v", r.Row+1, r.Property.Address, r.Err)
	}

	if err := c.write(report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	debugf("wrote %s, %s, %s and %s into %q", resultsCSV, resultsJSONL, templateCSV, assumptionsYML, c.output)

	printMarkdown(renderer.ReportMarkdown(report, c.top))
	if c.chart {
		printMarkdown(renderer.ChartMarkdown(report, 24))
	}
	return subcommands.ExitSuccess
}

// write writes the output files of report.
func (c *scoreCmd) write(report *rentcheck.Report) error {
	outputs := []struct {
		name   string
		encode func(io.Writer) error
	}{
		{resultsCSV, func(w io.Writer) error { return rentcheck.EncodeCSV(w, report.Results) }},
		{resultsJSONL, func(w io.Writer) error { return rentcheck.EncodeJSONL(w, report.Results) }},
		{templateCSV, rentcheck.EncodeTemplate},
		{assumptionsYML, func(w io.Writer) error { return rentcheck.EncodeAssumptions(w, report.Assumptions) }},
	}
	for _, o := range outputs {
		file, err := createFile(c.output, o.name)
		if err != nil {
			return err
		}
		err = o.encode(file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("error writing %q: %w", filepath.Join(c.output, o.name), err)
		}
	}
	return nil
}
