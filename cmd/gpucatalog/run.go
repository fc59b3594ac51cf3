package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/Aleph-Alpha/gpucatalog/v1/config"
)

const usage = `Usage: gpucatalog [--config FILE] [command]

Commands:
  serve   run the REST API (default)
  seed    insert the sample cards into both stores
  check   report whether the configured databases accept connections

Flags:
`

type options struct {
	configPath string
	backend    string
	command    string
}

func parseArgs(args []string, errOut io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("gpucatalog", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprint(errOut, usage)
		fs.PrintDefaults()
	}
	fs.StringVarP(&opts.configPath, "config", "c", os.Getenv("GPUCATALOG_CONFIG"), "YAML configuration file")
	fs.StringVar(&opts.backend, "backend", "", "seed only this backend (mysql, postgres or mongodb)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
		opts.command = "serve"
	case 1:
		opts.command = rest[0]
	default:
		return options{}, fmt.Errorf("unexpected arguments: %v", rest[1:])
	}
	return opts, nil
}

func run(args []string, out, errOut io.Writer, sigCh <-chan os.Signal) int {
	opts, err := parseArgs(args, errOut)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	switch opts.command {
	case "serve":
		return serve(cfg, errOut, sigCh)
	case "seed":
		return seedStores(cfg, opts.backend, out, errOut)
	case "check":
		return check(cfg, out)
	default:
		fmt.Fprintf(errOut, "error: unknown command %q\n", opts.command)
		return 2
	}
}
