package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/rentcheck"
	"github.com/etnz/rentcheck/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct {
	input       string
	selector    string
	currency    string
	assumptions assumptionFlags
}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string {
	return "Start an interactive session with the AI assistant about the scored properties."
}

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `rck assist [-i <input>] [assumption flags] [<prompt>]

  Start an interactive session with the AI assistant. The assistant knows the
  scored properties and can score variations of them.
  It requires a Gemini API key in GEMINI_API_KEY or GOOGLE_API_KEY.

`
}

// SetFlags sets the flags for the command.
func (c *AssistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", defaultInput, "Input listings (.csv or .json)")
	f.StringVar(&c.selector, "select", "$", "JSONPath selecting the listings of a .json input")
	f.StringVar(&c.currency, "currency", "AUD", "Currency of the amounts")
	c.assumptions.SetFlags(f)
}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	report, err := rentcheck.NewReport(props, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring listings: %v\n", err)
		return subcommands.ExitFailure
	}

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(report)
	researcher := agent.NewResearcher()
	assistant := agent.New(os.Stdout, os.Stdin, report, analyst, researcher)
	if *plain {
		assistant.Render = func(md string) string { return md + "\n" }
	}

	if err := assistant.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
