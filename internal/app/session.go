package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/config"
	"github.com/dshills/vicore/internal/engine"
	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/macro"
	"github.com/dshills/vicore/internal/input/seq"
	"github.com/dshills/vicore/internal/logging"
	"github.com/dshills/vicore/internal/register"
	"github.com/dshills/vicore/internal/script"
	"github.com/dshills/vicore/internal/term"
)

// Option configures a Session during creation.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHost makes the session one of h's sessions.
func WithHost(h *Host) Option {
	return func(s *Session) { s.host = h }
}

// WithSpecialChars sets the terminal's editing characters.
func WithSpecialChars(sc key.SpecialChars) Option {
	return func(s *Session) { s.specials = sc }
}

// WithClipboard connects the + and * registers to c.
func WithClipboard(c register.Clipboard) Option {
	return func(s *Session) { s.clip = c }
}

// WithBindings replaces the editor-defined command maps. By default the
// cursor keys are mapped to their motion commands.
func WithBindings(bindings ...term.Binding) Option {
	return func(s *Session) { s.bindings = bindings }
}

// WithMaxLine sets the maximum line length of edited documents.
func WithMaxLine(n int) Option {
	return func(s *Session) { s.maxLine = n }
}

// Session is the state of one editing session.
type Session struct {
	ID uuid.UUID

	logger   *logging.Logger
	host     *Host
	specials key.SpecialChars
	clip     register.Clipboard
	bindings []term.Binding
	maxLine  int

	opts     config.Options
	keys     *key.Table
	queue    *event.Queue
	seqs     *seq.Table
	regs     *register.Manager
	resolver *input.Resolver
	exec     *macro.Executor
	rec      *macro.Recorder
	src      input.Source

	doc         *Document
	interrupted atomic.Bool
	pending     atomic.Pointer[config.Config]
	watcher     *config.Watcher
	closed      bool
}

// NewSession returns a session reading input from src.
func NewSession(src input.Source, opts ...Option) *Session {
	s := &Session{
		ID:       uuid.New(),
		logger:   logging.Nop(),
		src:      src,
		opts:     config.DefaultOptions(),
		maxLine:  engine.DefaultMaxLine,
		bindings: term.DefaultBindings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("session", s.ID.String())

	s.keys = key.NewTable(s.specials, nil)
	s.queue = event.NewQueue(s.keys)
	if c, ok := src.(interface{ SetClassifier(event.Classifier) }); ok {
		c.SetClassifier(s.keys)
	}
	s.seqs = seq.NewTable()
	s.regs = register.NewManager()
	if s.clip != nil {
		s.regs.SetClipboard(s.clip)
	}
	s.exec = macro.NewExecutor(s.regs)
	s.rec = macro.NewRecorder(s.regs)

	flusher := input.Flusher(s)
	if s.host != nil {
		s.host.add(s)
		flusher = s.host
	}
	s.resolver = input.NewResolver(s.queue, s.seqs, src,
		input.WithFlusher(flusher),
		input.WithCharClass(s.keys.Class()),
		input.WithLogger(s.logger),
		input.WithInterruptHandler(func() { s.interrupted.Store(true) }),
	)
	for _, b := range s.bindings {
		if err := s.seqs.Set(seq.Command, []rune(b.Input), []rune(b.Output), false); err != nil {
			s.logger.Warn("binding %s: %v", b.Name, err)
		}
	}
	s.ApplyOptions(s.opts)
	return s
}

// Options returns the current options.
func (s *Session) Options() config.Options { return s.opts }

// Keys returns the key table.
func (s *Session) Keys() *key.Table { return s.keys }

// Registers returns the register manager.
func (s *Session) Registers() *register.Manager { return s.regs }

// Sequences returns the map and abbreviation tables.
func (s *Session) Sequences() *seq.Table { return s.seqs }

// Resolver returns the input resolver.
func (s *Session) Resolver() *input.Resolver { return s.resolver }

// Queue returns the pending input.
func (s *Session) Queue() *event.Queue { return s.queue }

// ApplyOptions installs o and rebuilds what depends on it.
func (s *Session) ApplyOptions(o config.Options) {
	s.opts = o
	s.keys.SetDisplay(key.DisplayOptions{
		AltNotation: o.AltNotation,
		Octal:       o.Octal,
		Print:       o.Print,
		NoPrint:     o.NoPrint,
	})
	s.resolver.SetSettings(input.Settings{
		Remap:      o.Remap,
		Timeout:    o.Timeout,
		EscapeTime: o.EscapeTime,
		KeyTime:    o.KeyTime,
	})
}

// ApplyConfig installs a configuration's options and definitions. Earlier
// user definitions are replaced; editor-defined maps are kept.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	var errs []error
	for _, kind := range []seq.Kind{seq.Abbrev, seq.Command, seq.Input} {
		for _, b := range s.seqs.All(kind) {
			if !b.UserDefined {
				continue
			}
			if err := s.seqs.Delete(kind, b.Input); err != nil {
				errs = append(errs, fmt.Errorf("unmap %s %s: %w", kind, s.keys.String(b.Input), err))
			}
		}
	}
	s.ApplyOptions(cfg.Options)

	for _, m := range cfg.Maps {
		if err := s.Map(m.LHS, m.RHS, m.Input()); err != nil {
			errs = append(errs, err)
		}
	}
	for _, a := range cfg.Abbrevs {
		if err := s.Abbreviate(a.LHS, a.RHS); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadConfig reads and applies the configuration file at path.
func (s *Session) LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return s.ApplyConfig(cfg)
}

// WatchConfig reloads path whenever it changes. Reloads take effect at the
// next read of input.
func (s *Session) WatchConfig(path string) error {
	if s.watcher != nil {
		s.watcher.Close()
	}
	w, err := config.Watch(path, func(cfg *config.Config, err error) {
		if err == nil {
			s.pending.Store(cfg)
		}
	}, s.logger)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

func (s *Session) applyPending() {
	cfg := s.pending.Swap(nil)
	if cfg == nil {
		return
	}
	if err := s.ApplyConfig(cfg); err != nil {
		s.logger.Warn("config %s: %v", cfg.Path, err)
		return
	}
	s.logger.Info("applied %s", cfg.Path)
}

// RunScript runs the Lua init file at path against the session.
func (s *Session) RunScript(ctx context.Context, path string) error {
	st := script.NewState(s, script.WithLogger(s.logger))
	defer st.Close()
	s.logger.Debug("running %s", path)
	return st.RunFile(ctx, path)
}

// Export returns the current options and user definitions as a
// configuration.
func (s *Session) Export() *config.Config {
	cfg := &config.Config{Options: s.opts}
	for _, b := range s.seqs.All(seq.Abbrev) {
		if b.UserDefined {
			cfg.Abbrevs = append(cfg.Abbrevs, config.AbbrevEntry{LHS: string(b.Input), RHS: string(b.Output)})
		}
	}
	for _, kind := range []seq.Kind{seq.Command, seq.Input} {
		mode := config.ModeCommand
		if kind == seq.Input {
			mode = config.ModeInput
		}
		for _, b := range s.seqs.All(kind) {
			if b.UserDefined {
				cfg.Maps = append(cfg.Maps, config.MapEntry{LHS: string(b.Input), RHS: string(b.Output), Mode: mode})
			}
		}
	}
	return cfg
}

// Map installs a command map, or an input map when input is set.
func (s *Session) Map(lhs, rhs string, input bool) error {
	kind := seq.Command
	if input {
		kind = seq.Input
	}
	if err := s.seqs.Set(kind, []rune(lhs), []rune(rhs), true); err != nil {
		return fault.UserWrap(err, "Usage: map[!] [lhs rhs]")
	}
	return nil
}

// Unmap removes a command map, or an input map when input is set.
func (s *Session) Unmap(lhs string, input bool) error {
	kind := seq.Command
	if input {
		kind = seq.Input
	}
	return s.seqs.Unmap(kind, []rune(lhs))
}

// Abbreviate installs an abbreviation.
func (s *Session) Abbreviate(lhs, rhs string) error {
	return s.seqs.Abbreviate([]rune(lhs), []rune(rhs), s.keys.Class())
}

// Unabbreviate removes an abbreviation.
func (s *Session) Unabbreviate(lhs string) error {
	return s.seqs.Unabbreviate([]rune(lhs))
}

// Set assigns an option by name.
func (s *Session) Set(name, value string) error {
	o := s.opts
	if err := o.Set(name, value); err != nil {
		return err
	}
	s.ApplyOptions(o)
	return nil
}

// Next returns the next resolved input event. Characters are added to an
// active recording.
func (s *Session) Next(ctx context.Context, flags input.Flags, timeout time.Duration) (event.Event, error) {
	if s.closed {
		return event.Event{}, ErrClosed
	}
	s.applyPending()
	ev, err := s.resolver.Get(ctx, flags, timeout)
	if err == nil {
		s.rec.Record(ev)
	}
	return ev, err
}

// Open makes the file at path the current document.
func (s *Session) Open(path string) (*Document, error) {
	d, err := openDocument(path, s.engineOptions()...)
	if err != nil {
		return nil, err
	}
	s.doc = d
	s.logger.Debug("opened %s", path)
	return d, nil
}

// Scratch makes a new unsaved document holding lines the current one.
func (s *Session) Scratch(lines ...string) *Document {
	s.doc = scratchDocument(lines, s.engineOptions()...)
	return s.doc
}

// Document returns the current document, or nil.
func (s *Session) Document() *Document { return s.doc }

func (s *Session) engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithInterrupter(s),
		engine.WithMaxLine(s.maxLine),
		engine.WithLogger(s.logger),
	}
}

// Interrupted reports whether the user interrupted the current command.
func (s *Session) Interrupted() bool {
	if s.interrupted.Load() {
		return true
	}
	if s.src != nil && s.src.PollInterrupt() {
		s.interrupted.Store(true)
		return true
	}
	return false
}

// mutator starts a command on the current document.
func (s *Session) mutator() (*engine.Mutator, error) {
	if s.doc == nil {
		return nil, fault.UserWrap(ErrNoDocument, "No file open")
	}
	s.interrupted.Store(false)
	return s.doc.mutator, nil
}

// report returns the line-count message for the command just run and
// starts counting afresh.
func (s *Session) report(m *engine.Mutator) string {
	msg := m.Report().Message(s.opts.Report)
	m.Report().Reset()
	return msg
}

// Delete deletes a range into registers the way a vi delete command does.
// It returns the report message, if the change was large enough for one.
func (s *Session) Delete(name rune, from, to engine.Position, lineMode bool) (string, error) {
	m, err := s.mutator()
	if err != nil {
		return "", err
	}
	if err := m.DeleteInto(s.regs, name, from, to, lineMode); err != nil {
		return "", s.fail(err)
	}
	return s.report(m), nil
}

// Yank copies a range into a register.
func (s *Session) Yank(name rune, from, to engine.Position, lineMode bool) (string, error) {
	m, err := s.mutator()
	if err != nil {
		return "", err
	}
	if err := m.Yank(s.regs, name, from, to, lineMode); err != nil {
		return "", s.fail(err)
	}
	return s.report(m), nil
}

// Put inserts a register's text after at, or before it. It returns the new
// cursor position and the report message.
func (s *Session) Put(name rune, at engine.Position, after bool) (engine.Position, string, error) {
	m, err := s.mutator()
	if err != nil {
		return at, "", err
	}
	r, err := s.regs.Get(name)
	if err != nil {
		return at, "", err
	}
	pos, err := m.Put(r, at, after)
	if err != nil {
		return at, "", s.fail(err)
	}
	return pos, s.report(m), nil
}

// Execute runs the register called name as input, count times for the
// first command when count is positive.
func (s *Session) Execute(name rune, count int) error {
	return s.exec.Execute(name, count, s.queue)
}

// Record starts recording input into the register called name.
func (s *Session) Record(name rune) error {
	return s.rec.Start(name)
}

// StopRecording ends the recording.
func (s *Session) StopRecording() (*register.Register, error) {
	return s.rec.Stop()
}

// DisplayRegisters writes the register dump.
func (s *Session) DisplayRegisters(w io.Writer) error {
	return s.regs.Display(w, s.keys)
}

// SaveMaps writes the user's maps and abbreviations as ex commands.
func (s *Session) SaveMaps(w io.Writer) error {
	return s.seqs.Save(w, s.keys)
}

// DumpMaps writes the bindings of kind for display.
func (s *Session) DumpMaps(w io.Writer, kind seq.Kind) (int, error) {
	return s.seqs.Dump(w, kind, s.keys)
}

// fail flushes documents on a fatal error before returning it.
func (s *Session) fail(err error) error {
	if !fault.IsFatal(err) {
		return err
	}
	var ferr error
	if s.host != nil {
		ferr = s.host.FlushAll(event.Err)
	} else {
		ferr = s.flush(event.Err)
	}
	if ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

// FlushAll saves this session's documents. Sessions with a Host flush
// through it instead.
func (s *Session) FlushAll(reason event.Kind) error {
	return s.flush(reason)
}

func (s *Session) flush(reason event.Kind) error {
	if s.doc == nil || !s.doc.Modified() {
		return nil
	}
	s.logger.WithField("reason", reason.String()).Error("flushing %s", s.doc.Name)
	if err := s.doc.Save(); err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	return nil
}

// Close stops watching configuration and leaves the host.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.host != nil {
		s.host.remove(s)
	}
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
