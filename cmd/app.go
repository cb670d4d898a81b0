// Package cmd implements the CLI application to analyze a net worth dataset.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands lists every builtin subcommand, by group.
var Commands = map[string][]subcommands.Command{
	"dataset": {
		&importCmd{},
		&exportCmd{},
		&accountsCmd{},
		&accountCmd{},
		&addCmd{},
		&removeCmd{},
	},
	"reports": {
		&summaryCmd{},
		&historyCmd{},
		&projectionCmd{},
	},
	"services": {
		&serveCmd{},
		&AssistCmd{},
		&topicCmd{},
	},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range []string{"dataset", "reports", "services"} {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var datasetFile = flag.String("dataset", "", "Path to the dataset file (JSONL format). Defaults to $"+EnvDataset+" or "+defaultDatasetFile)
var configFile = flag.String("config", "", "Path to the YAML configuration file. Defaults to $"+EnvConfig+" or "+networth.DefaultConfigFile)
var currency = flag.String("currency", "", "Currency used to display amounts, overrides the configuration")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Enable verbose logging")

const defaultDatasetFile = "networth.jsonl"

// Logger is the application logger.
var Logger = logrus.New()

// ConfigureLogging sets the logger level from the -v flag or the LOG_LEVEL
// environment variable. It must be called after flags are parsed.
func ConfigureLogging() {
	Logger.SetOutput(os.Stderr)
	Logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	if *Verbose {
		level = logrus.DebugLevel
	}
	Logger.SetLevel(level)
}

// envOr returns the first non empty value among the flag, the environment variable and the fallback.
func envOr(flagValue, env, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

func datasetPath() string { return envOr(*datasetFile, EnvDataset, defaultDatasetFile) }

// DecodeDataset decodes the dataset from the application's dataset file.
// If the file does not exist, it returns a new empty dataset.
func DecodeDataset() (*networth.Dataset, error) {
	path := datasetPath()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			Logger.WithField("file", path).Debug("dataset does not exist, starting from an empty one")
			return networth.NewDataset(), nil
		}
		return nil, fmt.Errorf("could not open dataset file %q: %w", path, err)
	}
	defer f.Close()

	d, err := networth.DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode dataset file %q: %w", path, err)
	}
	Logger.WithFields(logrus.Fields{"file": path, "accounts": len(d.Columns()), "snapshots": d.Len()}).Debug("dataset loaded")
	return d, nil
}

// EncodeDataset writes the dataset into the application's dataset file.
//
// The file is written next to its destination then renamed, so that a failure
// never leaves a truncated dataset.
func EncodeDataset(d *networth.Dataset) error {
	path := datasetPath()
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create dataset file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := networth.EncodeDataset(tmp, d); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not write dataset file %q: %w", path, err)
	}
	Logger.WithFields(logrus.Fields{"file": path, "snapshots": d.Len()}).Debug("dataset saved")
	return nil
}

// LoadConfig reads the configuration file. A missing default file means
// the default configuration, a missing explicit file is an error.
//
// The result is not validated, commands validate it after applying their own
// flags.
func LoadConfig() (networth.Config, error) {
	path := envOr(*configFile, EnvConfig, "")
	explicit := path != ""
	if !explicit {
		path = networth.DefaultConfigFile
	}
	cfg, err := networth.LoadConfigUnchecked(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg, err = networth.DefaultConfig(), nil
		} else {
			return cfg, err
		}
	} else {
		Logger.WithField("file", path).Debug("configuration loaded")
	}
	if *currency != "" {
		cfg.Currency = strings.ToUpper(*currency)
	}
	return cfg, nil
}

// today returns the reference date, $NW_TODAY when set.
func today() (date.Date, error) {
	if s := os.Getenv(EnvToday); s != "" {
		return date.Parse(s)
	}
	return date.Today(), nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		Logger.WithError(err).Debug("cannot render markdown")
		out = md
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON. When query is set, only the result of
// the jsonpath query is printed.
func printJSON(w io.Writer, v any, query string) error {
	if query != "" {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		if v, err = jsonpath.Get(query, doc); err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
