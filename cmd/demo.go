package cmd

import (
	"context"
	"flag"
	"io"

	"github.com/etnz/rentcheck"
	"github.com/google/subcommands"
)

type demoCmd struct {
	output   string
	currency string
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "write the demo listings as an input table" }
func (*demoCmd) Usage() string {
	return `rck demo [-o <file>]

  Writes five sample listings in the input format, a starting point for
  'rck score'.

`
}

func (c *demoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout if empty")
	f.StringVar(&c.currency, "currency", "AUD", "Currency of the amounts")
}

func (c *demoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return writeTo(c.output, func(w io.Writer) error {
		return rentcheck.EncodeProperties(w, rentcheck.DemoProperties(c.currency))
	})
}
