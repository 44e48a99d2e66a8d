// Package cmd implements the rck command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rentcheck"
	"github.com/google/subcommands"
)

// Commands lists the rck subcommands.
var Commands = []subcommands.Command{
	&scoreCmd{},
	&paymentCmd{},
	&templateCmd{},
	&demoCmd{},
	&topicCmd{},
	&AssistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Print debug logs")

var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

const defaultInput = "input.csv"

func debugf(format string, args ...any) {
	if *Verbose {
		log.Printf(format, args...)
	}
}

// printMarkdown renders md for the terminal, or prints it unchanged with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Println(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Printf("warning, cannot render markdown: %v", err)
	fmt.Println(md)
}

// decodeProperties reads the listings from a csv or json file, according to
// its extension.
//
// The demo listings are returned when the default input does not exist.
func decodeProperties(path, selector, currency string) ([]rentcheck.Property, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultInput {
		log.Printf("warning, %q does not exist, scoring the demo listings instead", path)
		return rentcheck.DemoProperties(currency), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return rentcheck.DecodeJSON(f, selector, currency)
	case ".csv", "":
		return rentcheck.DecodeCSV(f, currency)
	default:
		return nil, fmt.Errorf("unsupported input format %q, expected .csv or .json", ext)
	}
}

// createFile creates name in dir, creating dir if needed.
func createFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output folder %q: %w", dir, err)
	}
	return os.Create(filepath.Join(dir, name))
}
