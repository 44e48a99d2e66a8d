package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rentcheck"
	"github.com/etnz/rentcheck/renderer"
	"google.golang.org/genai"
)

// briefingTop is the number of properties the facilitator knows upfront.
const briefingTop = 5

// Agent is the AI assistant that handles the chat session about a report.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	report      *rentcheck.Report
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the markdown answers for w.
	Render func(md string) string
}

// New creates a new Agent over report.
//
// The agent writes to w (e.g., os.Stdout) and reads the user input from r
// (e.g., os.Stdin). The facilitator is briefed with the top of the report and
// reaches the experts through its tools.
func New(w io.Writer, r io.Reader, report *rentcheck.Report, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		report:      report,
		Experts:     experts,
		Facilitator: newFacilitator(briefing(report), experts...),
		Render:      terminalRenderer(),
	}
}

// briefing summarizes the report for the facilitator.
func briefing(report *rentcheck.Report) string {
	s := report.Summary()
	var b strings.Builder
	fmt.Fprintf(&b, "The user scored %d properties: %d scored, %d could not be scored, %d have an undefined ratio.\n",
		s.Rows, s.Scored, s.Failed, s.Singular)
	for _, sig := range rentcheck.Signals {
		fmt.Fprintf(&b, "%s: %d\n", sig, s.Signals[sig])
	}
	b.WriteString("\n")
	b.WriteString(renderer.ReportMarkdown(report, briefingTop))
	return b.String()
}

// terminalRenderer renders markdown with glamour, or returns it unchanged
// when glamour is not available.
func terminalRenderer() func(string) string {
	tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	return func(md string) string {
		if err != nil {
			return md
		}
		out, rerr := tr.Render(md)
		if rerr != nil {
			return md
		}
		return out
	}
}

// Start creates the chats of the experts and the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("cannot start expert %s: %w", e.Name, err)
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session.
//
// Besides questions, the user can type "report" to print the full report
// and "bye" to exit. prompts are played before reading the user input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	s := a.report.Summary()
	fmt.Fprintf(a.w, "Welcome to rck property assist: %d properties scored", s.Scored)
	if s.Best != nil {
		fmt.Fprintf(a.w, ", best is %q", s.Best.Property.Address)
	}
	fmt.Fprintln(a.w, ". Type 'report' to print the report, 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			fmt.Fprintln(a.w, input)
		} else {
			line, err := a.r.ReadString('\n')
			if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
				return nil // Ctrl+D
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			input = strings.TrimSpace(line)
		}

		switch input {
		case "":
			continue
		case "bye":
			return nil
		case "report":
			fmt.Fprint(a.w, a.Render(renderer.ReportMarkdown(a.report, 0)))
			continue
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprint(a.w, a.Render(answer))
	}
}
