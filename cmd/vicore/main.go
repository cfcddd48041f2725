// Package main is the entry point for the vicore tools.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/logging"
	"github.com/dshills/vicore/internal/register"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// command is one subcommand.
type command struct {
	name  string
	usage string
	run   func(g *globals, args []string) error
}

var commands = []command{
	{"keys", "keys [-config file] [-script file]\n    Show how typed keys resolve through maps. Type q to quit.", runKeys},
	{"delete", "delete -from L[.C] -to L[.C] [-lines] [-register r] file\n    Delete a range of a file and show the registers.", runDelete},
	{"maps", "maps [-config file] [-script file] [-format ex|toml]\n    Print the configured maps and abbreviations.", runMaps},
}

// globals are the flags shared by every subcommand.
type globals struct {
	logger    *logging.Logger
	clipboard bool
	stdout    io.Writer
	stderr    io.Writer
}

// sessionOptions returns the session options every subcommand uses.
func (g *globals) sessionOptions() []app.Option {
	opts := []app.Option{app.WithLogger(g.logger)}
	if g.clipboard && register.SystemAvailable() {
		opts = append(opts, app.WithClipboard(register.SystemClipboard{}))
	}
	return opts
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vicore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Write log lines to this file instead of stderr")
	clip := fs.Bool("clipboard", true, "Connect the + and * registers to the system clipboard")
	showVersion := fs.Bool("version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "vicore - vi key resolution and editing core\n\n")
		fmt.Fprintf(stderr, "Usage: vicore [options] command [arguments]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %s\n", c.usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "vicore %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	out := stderr
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	g := &globals{
		logger:    logging.New(logging.Config{Level: level, Output: out, Prefix: "vicore"}),
		clipboard: *clip,
		stdout:    stdout,
		stderr:    stderr,
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(g, fs.Args()[1:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(stderr, "Error: unknown command %q\n", name)
	fs.Usage()
	return 2
}

// loadDefinitions applies a configuration file and then an init script to s.
func loadDefinitions(s *app.Session, configPath, scriptPath string) error {
	if configPath != "" {
		if err := s.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if scriptPath != "" {
		if err := s.RunScript(context.Background(), scriptPath); err != nil {
			return err
		}
	}
	return nil
}
