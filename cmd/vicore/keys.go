package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/term"
)

// monitor shows resolved events on the screen, newest last.
type monitor struct {
	screen tcell.Screen
	keys   *key.Table
	lines  []string
}

func (m *monitor) add(format string, args ...any) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
	m.draw()
}

func (m *monitor) draw() {
	m.screen.Clear()
	_, h := m.screen.Size()
	if len(m.lines) > h {
		m.lines = m.lines[len(m.lines)-h:]
	}
	for y, line := range m.lines {
		x := 0
		for _, r := range line {
			// Unprintable characters are drawn by name, as ^A or \x80.
			for i, c := range []rune(m.keys.Name(r)) {
				m.screen.SetContent(x+i, y, c, nil, tcell.StyleDefault)
			}
			x += m.keys.Width(r)
		}
	}
	m.screen.Show()
}

func runKeys(g *globals, args []string) error {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	configPath := fs.String("config", "", "TOML configuration file, reloaded when it changes")
	scriptPath := fs.String("script", "", "Lua init script")
	inputMode := fs.Bool("input", false, "Resolve with input-mode maps")
	if err := fs.Parse(args); err != nil {
		return err
	}

	specials, err := term.SpecialChars(os.Stdin)
	if err != nil {
		g.logger.Warn("terminal characters: %v", err)
		specials = term.DefaultSpecialChars()
	}
	src, err := term.Open(term.WithLogger(g.logger))
	if err != nil {
		return err
	}
	defer src.Close()

	host := app.NewHost(g.logger)
	opts := append(g.sessionOptions(), app.WithHost(host), app.WithSpecialChars(specials))
	s := app.NewSession(src, opts...)
	defer s.Close()
	if err := loadDefinitions(s, *configPath, *scriptPath); err != nil {
		return err
	}
	if *configPath != "" {
		if err := s.WatchConfig(*configPath); err != nil {
			g.logger.Warn("watching %s: %v", *configPath, err)
		}
	}

	flags := input.MapCommand
	if *inputMode {
		flags = input.MapInput
	}
	m := &monitor{screen: src.Screen(), keys: s.Keys()}
	m.add("vicore %s: type keys to see how they resolve, q to quit", version)
	src.Start()

	ctx := context.Background()
	for {
		ev, err := s.Next(ctx, flags, 0)
		if err != nil {
			if fault.IsFatal(err) || errors.Is(err, app.ErrClosed) {
				return err
			}
			m.add("error: %v", err)
			continue
		}
		switch ev.Kind {
		case event.Character:
			if ev.IsChar('q') {
				return nil
			}
			m.add("%-6s %s", s.Keys().Name(ev.Ch.Raw), ev)
		case event.Interrupt:
			m.add("interrupt")
		case event.Resize:
			m.screen.Sync()
			m.draw()
		case event.EOF, event.Quit:
			return nil
		default:
			m.add("%s", ev.Unexpected())
		}
	}
}
