package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/rentcheck"
	"github.com/google/subcommands"
)

// execute runs c with args on a fresh flag set.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("cannot parse %q: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write %q: %v", path, err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read %q: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestScoreCmd(t *testing.T) {
	tmp := t.TempDir()
	input := writeFile(t, tmp, "listings.csv", `address,price,weekly_rent,lvr,current_interest_rate
cheap,300000,700,0.5,0.05
thin,300000,400,0.5,0.05
broken,300000,,0.5,0.05
`)
	out := filepath.Join(tmp, "out")

	if status := execute(t, &scoreCmd{}, "-i", input, "-o", out, "-top", "0"); status != subcommands.ExitSuccess {
		t.Fatalf("score = %v, want success", status)
	}

	lines := readLines(t, filepath.Join(out, resultsCSV))
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want a header and 3 rows:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if got, want := lines[0], strings.Join(rentcheck.OutputColumns, ","); got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	for i, prefix := range []string{"cheap,", "thin,", "broken,"} {
		if !strings.HasPrefix(lines[i+1], prefix) {
			t.Errorf("row %d = %q, want prefix %q", i+1, lines[i+1], prefix)
		}
	}
	if !strings.HasSuffix(lines[1], ","+string(rentcheck.Buy)) || !strings.HasSuffix(lines[2], ","+string(rentcheck.Watch)) {
		t.Errorf("signals of %q and %q, want BUY and WATCH", lines[1], lines[2])
	}
	if !strings.Contains(lines[3], "ERROR: ") {
		t.Errorf("broken row = %q, want an error", lines[3])
	}

	if got := readLines(t, filepath.Join(out, resultsJSONL)); len(got) != 3 {
		t.Errorf("got %d JSONL lines, want 3", len(got))
	}
	if got := readLines(t, filepath.Join(out, templateCSV)); len(got) != 1 || got[0] != strings.Join(rentcheck.InputColumns, ",") {
		t.Errorf("template = %q", got)
	}
	a, err := rentcheck.LoadAssumptions(filepath.Join(out, assumptionsYML))
	if err != nil {
		t.Fatalf("cannot load the written assumptions: %v", err)
	}
	if a != rentcheck.DefaultAssumptions() {
		t.Errorf("written assumptions = %+v, want the defaults", a)
	}
}

func TestScoreCmd_Demo(t *testing.T) {
	t.Chdir(t.TempDir())

	if status := execute(t, &scoreCmd{}, "-chart"); status != subcommands.ExitSuccess {
		t.Fatalf("score = %v, want success", status)
	}
	lines := readLines(t, filepath.Join("real_estate_metric_outputs", resultsCSV))
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want a header and the 5 demo listings", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"3/55 James St, Fortitude Valley QLD"`) {
		t.Errorf("best demo listing = %q, want Fortitude Valley", lines[1])
	}
}

func TestScoreCmd_Errors(t *testing.T) {
	tmp := t.TempDir()
	noRent := writeFile(t, tmp, "no_rent.csv", "address,price\na,100000\n")
	badConfig := writeFile(t, tmp, "bad.yaml", "loan_term_years: 0\n")

	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"missing file", []string{"-i", filepath.Join(tmp, "nope.csv")}, subcommands.ExitFailure},
		{"missing column", []string{"-i", noRent}, subcommands.ExitFailure},
		{"unsupported format", []string{"-i", writeFile(t, tmp, "x.xlsx", "")}, subcommands.ExitFailure},
		{"invalid flag", []string{"-loan-term", "0"}, subcommands.ExitUsageError},
		{"invalid config", []string{"-config", badConfig}, subcommands.ExitUsageError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append(tc.args, "-o", filepath.Join(tmp, "out"))
			if got := execute(t, &scoreCmd{}, args...); got != tc.want {
				t.Errorf("score %q = %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}

func TestAssumptionFlags(t *testing.T) {
	config := writeFile(t, t.TempDir(), "a.yaml", "stress_bps: 300\nvacancy_weeks: 2\n")

	var a assumptionFlags
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	a.SetFlags(f)
	if err := f.Parse([]string{"-config", config, "-vacancy-weeks", "6"}); err != nil {
		t.Fatal(err)
	}
	got, err := a.Assumptions(f)
	if err != nil {
		t.Fatalf("Assumptions() error = %v", err)
	}
	want := rentcheck.DefaultAssumptions()
	want.StressBps = 300
	want.VacancyWeeks = 6
	if got != want {
		t.Errorf("Assumptions() = %+v, want %+v", got, want)
	}
}
