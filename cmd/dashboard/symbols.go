package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"StockDashboard/internal/config"

	"github.com/google/subcommands"
)

type symbolsCmd struct {
	configPath string
}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the symbols offered for selection" }
func (*symbolsCmd) Usage() string {
	return `dashboard symbols [-config <file>]

  Prints the configured universe and the default selection.
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "Config file (defaults to $CONFIG_PATH or "+defaultConfigPath+")")
}

func (c *symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := selectionFlags{configPath: c.configPath}
	cfg, err := s.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printSymbols(os.Stdout, cfg)
	return subcommands.ExitSuccess
}

func printSymbols(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, strings.Join(cfg.Universe, "\n"))
	fmt.Fprintf(w, "\ndefault: %s\n", strings.Join(cfg.Selection.Symbols, ","))
}
