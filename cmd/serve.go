package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/networth/server"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve reports over HTTP" }
func (*serveCmd) Usage() string {
	return `nw serve [-addr <host:port>]

  Starts an HTTP service:

    GET  /health
    GET  /api/v1/report    ?period=&year=&growth=&horizon=&scope=&window=&currency=
    GET  /api/v1/accounts
    POST /api/v1/analyze   {"columns": [...], "records": [...], "config": {...}}

  Reports are computed from the dataset file on every request.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to :$PORT or :8080.")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	addr := c.addr
	if addr == "" {
		addr = ":" + envOr("", "PORT", "8080")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(Logger.GetLevel())

	s := server.New(DecodeDataset, cfg, log)
	if err := s.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
