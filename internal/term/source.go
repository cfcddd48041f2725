package term

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/input"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/logging"
)

// eventBuffer is the capacity of the channel between the polling goroutine
// and NextEvent.
const eventBuffer = 64

// Option configures a Source during creation.
type Option func(*Source)

// WithClassifier sets the classifier stamped on delivered characters.
func WithClassifier(c event.Classifier) Option {
	return func(s *Source) {
		s.class = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l.WithComponent("term")
		}
	}
}

// Source delivers terminal input as events. It implements input.Source.
type Source struct {
	screen tcell.Screen
	class  event.Classifier
	logger *logging.Logger

	events chan tcell.Event
	quit   chan struct{}
	intr   atomic.Bool

	startOnce sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewSource returns a source reading an initialized screen. Polling starts
// with the first call to NextEvent or Start.
func NewSource(screen tcell.Screen, opts ...Option) *Source {
	s := &Source{
		screen: screen,
		logger: logging.Nop(),
		events: make(chan tcell.Event, eventBuffer),
		quit:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open initializes the terminal screen and returns a source reading it.
func Open(opts ...Option) (*Source, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnablePaste()
	return NewSource(screen, opts...), nil
}

// SetClassifier replaces the classifier. It must not be called while a
// NextEvent call is in progress.
func (s *Source) SetClassifier(c event.Classifier) { s.class = c }

// Screen returns the underlying screen.
func (s *Source) Screen() tcell.Screen { return s.screen }

// Start begins polling the screen. It is safe to call more than once.
func (s *Source) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.poll()
	})
}

func (s *Source) poll() {
	defer s.wg.Done()
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if k, ok := ev.(*tcell.EventKey); ok && isInterrupt(k) {
			s.intr.Store(true)
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

// Close stops polling and restores the terminal.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		close(s.quit)
		s.screen.Fini()
		s.wg.Wait()
	})
	return nil
}

// Post delivers kind as the next event, e.g. event.Hangup when the
// controlling terminal goes away.
func (s *Source) Post(kind event.Kind) error {
	return s.screen.PostEvent(tcell.NewEventInterrupt(kind))
}

// PollInterrupt implements input.Source.
func (s *Source) PollInterrupt() bool {
	return s.intr.Load()
}

// NextEvent implements input.Source.
func (s *Source) NextEvent(ctx context.Context, flags input.Flags, timeout time.Duration) (event.Event, error) {
	s.Start()

	if flags.Has(input.Interrupt) {
		if s.intr.Swap(false) {
			s.drainInterrupt()
			return event.Of(event.Interrupt), nil
		}
		for {
			select {
			case tev, ok := <-s.events:
				if !ok {
					return event.Of(event.EOF), nil
				}
				if ev, ok := s.convert(tev, flags); ok {
					return ev, nil
				}
			default:
				return event.Of(event.Timeout), nil
			}
		}
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		select {
		case tev, ok := <-s.events:
			if !ok {
				return event.Of(event.EOF), nil
			}
			if ev, ok := s.convert(tev, flags); ok {
				return ev, nil
			}
		case <-expired:
			return event.Of(event.Timeout), nil
		case <-ctx.Done():
			return event.Event{}, ctx.Err()
		}
	}
}

// drainInterrupt discards queued input up to and including the interrupt
// character that raised the flag.
func (s *Source) drainInterrupt() {
	for {
		select {
		case tev, ok := <-s.events:
			if !ok {
				return
			}
			if k, ok := tev.(*tcell.EventKey); ok && isInterrupt(k) {
				return
			}
		default:
			return
		}
	}
}

// convert turns a tcell event into an input event. It reports false for
// events the editing core does not use.
func (s *Source) convert(tev tcell.Event, flags input.Flags) (event.Event, bool) {
	switch e := tev.(type) {
	case *tcell.EventKey:
		if isInterrupt(e) && !flags.Any(input.Quoted|input.Raw) {
			s.intr.Store(false)
			return event.Of(event.Interrupt), true
		}
		if isInterrupt(e) {
			s.intr.Store(false)
		}
		runes := keyRunes(e)
		switch len(runes) {
		case 0:
			return event.Event{}, false
		case 1:
			var f event.Flags
			if flags.Has(input.Quoted) {
				f = event.Quoted
			}
			return event.NewChar(runes[0], s.classify(runes[0]), f), true
		}
		return event.NewString(string(runes)), true
	case *tcell.EventResize:
		w, h := e.Size()
		return event.NewResize(w, h), true
	case *tcell.EventError:
		return event.NewErr(e), true
	case *tcell.EventInterrupt:
		if kind, ok := e.Data().(event.Kind); ok {
			return event.Of(kind), true
		}
	}
	s.logger.Debug("ignored %T", tev)
	return event.Event{}, false
}

func (s *Source) classify(ch rune) key.Value {
	if s.class == nil {
		return key.NotUsed
	}
	return s.class.Classify(ch)
}

func isInterrupt(e *tcell.EventKey) bool {
	r := keyRunes(e)
	return len(r) == 1 && r[0] == InterruptChar
}
