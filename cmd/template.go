package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/rentcheck"
	"github.com/google/subcommands"
)

type templateCmd struct {
	output string
}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "write a blank input table" }
func (*templateCmd) Usage() string {
	return `rck template [-o <file>]

  Writes the header of the input table, to stdout or into a file.

`
}

func (c *templateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, stdout if empty")
}

func (c *templateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return writeTo(c.output, rentcheck.EncodeTemplate)
}

// writeTo encodes into the file name, or stdout when name is empty.
func writeTo(name string, encode func(io.Writer) error) subcommands.ExitStatus {
	var w io.Writer = os.Stdout
	if name != "" {
		f, err := os.Create(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		w = f
	}
	if err := encode(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing: %v\n", err)
		return subcommands.ExitFailure
	}
	if name != "" {
		debugf("wrote %q", name)
	}
	return subcommands.ExitSuccess
}
