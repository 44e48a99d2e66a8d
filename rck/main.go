// Command rck ranks residential investment properties by their stress-tested
// cash-on-cash return.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rentcheck/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// Exits when called by the shell to complete the command line.
	cmd.Completion(flag.CommandLine, cmd.Commands...).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
