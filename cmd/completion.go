package cmd

import (
	"flag"

	"github.com/etnz/rentcheck/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the commands and their flags.
//
// Flags named like a file take file names, the others any value.
func Completion(global *flag.FlagSet, cmds ...subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, c := range cmds {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		if c.Name() == "topic" {
			sub.Args = topicPredictor{}
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

var filePredictors = map[string]complete.Predictor{
	"i":      predict.Files("*"),
	"o":      predict.Files("*"),
	"config": predict.Files("*.yaml"),
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := filePredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Nothing
	})
	return flags
}

// topicPredictor predicts the documentation topics.
type topicPredictor struct{}

func (topicPredictor) Predict(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, docs.Readme)
}
