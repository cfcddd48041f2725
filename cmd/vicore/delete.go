package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/engine"
)

// parsePos parses a position written L or L.C, with $ for the end of line.
// A bare line number means column 0 for a start and the end of the line
// for an end.
func parsePos(s string, end bool) (engine.Position, error) {
	line, col, hasCol := strings.Cut(s, ".")
	lno, err := strconv.Atoi(line)
	if err != nil || lno < 1 {
		return engine.Position{}, fmt.Errorf("bad line number in %q", s)
	}
	switch {
	case !hasCol && end, col == "$":
		return engine.Pos(lno, engine.EOL), nil
	case !hasCol:
		return engine.Pos(lno, 0), nil
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 0 {
		return engine.Position{}, fmt.Errorf("bad column in %q", s)
	}
	return engine.Pos(lno, c), nil
}

// parseRegister parses a register name: empty for the unnamed register,
// otherwise one character.
func parseRegister(s string) (rune, error) {
	r := []rune(s)
	switch len(r) {
	case 0:
		return 0, nil
	case 1:
		return r[0], nil
	}
	return 0, fmt.Errorf("bad register name %q", s)
}

func runDelete(g *globals, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	fromFlag := fs.String("from", "", "Start of the range, L or L.C")
	toFlag := fs.String("to", "", "End of the range, L, L.C or L.$ (defaults to -from)")
	lines := fs.Bool("lines", false, "Delete whole lines")
	regFlag := fs.String("register", "", "Register to cut into")
	dryRun := fs.Bool("n", false, "Do not write the file back")
	report := fs.Int("report", -1, "Report threshold (default from the options)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *fromFlag == "" {
		fs.Usage()
		return fmt.Errorf("delete needs -from and one file")
	}
	if *toFlag == "" {
		*toFlag = *fromFlag
	}
	from, err := parsePos(*fromFlag, false)
	if err != nil {
		return err
	}
	to, err := parsePos(*toFlag, true)
	if err != nil {
		return err
	}
	name, err := parseRegister(*regFlag)
	if err != nil {
		return err
	}

	s := app.NewSession(nil, g.sessionOptions()...)
	defer s.Close()
	if *report >= 0 {
		if err := s.Set("report", strconv.Itoa(*report)); err != nil {
			return err
		}
	}
	doc, err := s.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	msg, err := s.Delete(name, from, to, *lines)
	if err != nil {
		return err
	}
	if !*dryRun {
		if err := doc.Save(); err != nil {
			return err
		}
	}
	if msg != "" {
		fmt.Fprintln(g.stdout, msg)
	}
	return s.DisplayRegisters(g.stdout)
}
