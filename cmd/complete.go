package cmd

import (
	"flag"

	"github.com/etnz/networth/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagValues predicts the values of flags, by flag name.
var flagValues = map[string]complete.Predictor{
	"dataset": predict.Files("*.jsonl"),
	"config":  predict.Files("*.yaml"),
	"o":       predict.Files("*.csv"),
	"policy":  predict.Set{"reject", "overwrite", "merge"},
	"period":  predict.Set{"monthly", "quarterly", "yearly"},
	"scope":   predict.Set{"history", "view"},
	"c":       predict.Set{"equity", "fixed_income", "cash", "liability", "other"},
}

// Completion returns the shell completion of the nw command line.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	args := map[string]complete.Predictor{
		"import":  predict.Files("*.csv"),
		"account": predict.Set{"add", "set-category"},
		"topic":   predict.Set(topics),
	}

	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, group := range Commands {
		for _, c := range group {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs), Args: args[c.Name()]}
		}
	}
	for _, builtin := range []string{"help", "flags", "commands"} {
		root.Sub[builtin] = &complete.Command{}
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		p, ok := flagValues[f.Name]
		if !ok {
			p = predict.Nothing
		}
		res[f.Name] = p
	})
	return res
}
