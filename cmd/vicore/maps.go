package main

import (
	"flag"
	"fmt"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/input/seq"
)

func runMaps(g *globals, args []string) error {
	fs := flag.NewFlagSet("maps", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	scriptPath := fs.String("script", "", "Lua init script")
	format := fs.String("format", "ex", "Output format: ex, toml or table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := app.NewSession(nil, g.sessionOptions()...)
	defer s.Close()
	if err := loadDefinitions(s, *configPath, *scriptPath); err != nil {
		return err
	}

	switch *format {
	case "ex":
		return s.SaveMaps(g.stdout)
	case "toml":
		return s.Export().Encode(g.stdout)
	case "table":
		// Editor-defined maps are listed too.
		for _, kind := range []seq.Kind{seq.Command, seq.Input, seq.Abbrev} {
			fmt.Fprintf(g.stdout, "%s:\n", kind)
			if _, err := s.DumpMaps(g.stdout, kind); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
