package input

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/seq"
	"github.com/dshills/vicore/internal/logging"
)

// remapPollInterval is how often, in expansions, a remap loop polls for an
// interrupt. The first expansion of each call is always polled.
const remapPollInterval = 10

// Resolver turns raw input into resolved events. One Resolver serves one
// editing session and is not safe for concurrent use.
type Resolver struct {
	queue    *event.Queue
	seqs     *seq.Table
	src      Source
	flusher  Flusher
	settings Settings
	class    key.CharClass
	logger   *logging.Logger
	metrics  *Metrics

	// onInterrupt records that the user interrupted, for long-running
	// operations that poll a session-wide flag.
	onInterrupt func()
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSettings sets the mapping options.
func WithSettings(s Settings) Option {
	return func(r *Resolver) { r.settings = s }
}

// WithFlusher sets the collaborator that saves documents on fatal input.
func WithFlusher(f Flusher) Option {
	return func(r *Resolver) { r.flusher = f }
}

// WithCharClass sets the classification used to recognise digits.
func WithCharClass(c key.CharClass) Option {
	return func(r *Resolver) {
		if c != nil {
			r.class = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l.WithComponent("input")
		}
	}
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithInterruptHandler sets the function called whenever an interrupt is
// seen.
func WithInterruptHandler(fn func()) Option {
	return func(r *Resolver) { r.onInterrupt = fn }
}

// NewResolver creates a resolver over the session's queue and sequence table,
// reading from src.
func NewResolver(q *event.Queue, seqs *seq.Table, src Source, opts ...Option) *Resolver {
	r := &Resolver{
		queue:    q,
		seqs:     seqs,
		src:      src,
		settings: DefaultSettings(),
		class:    key.UnicodeClass{},
		logger:   logging.Nop(),
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetSettings replaces the mapping options.
func (r *Resolver) SetSettings(s Settings) {
	r.settings = s
}

// Settings returns the mapping options.
func (r *Resolver) Settings() Settings {
	return r.settings
}

// Metrics returns the resolver's metrics tracker.
func (r *Resolver) Metrics() *Metrics {
	return r.metrics
}

// Queue returns the pending event queue.
func (r *Resolver) Queue() *event.Queue {
	return r.queue
}

// Get returns the next resolved event.
//
// timeout bounds the wait when the queue is empty; zero waits indefinitely.
// With Interrupt or Timeout in flags, Get only checks: it returns an
// event.Interrupt or event.Timeout event if that is what it found, and an
// event.None event otherwise. Anything read meanwhile stays queued.
//
// A fatal input condition (error, hangup, terminate) flushes every document
// through the Flusher and returns an error matching fault.ErrFatal.
func (r *Resolver) Get(ctx context.Context, flags Flags, timeout time.Duration) (event.Event, error) {
	for {
		ev, retry, err := r.resolve(ctx, flags, timeout)
		if !retry {
			return ev, err
		}
	}
}

// call is the state of one resolution attempt.
type call struct {
	flags    Flags
	timedOut bool
	remaps   int
}

// resolve runs one attempt. retry reports that the matched keys mapped to
// nothing and the caller should start over.
func (r *Resolver) resolve(ctx context.Context, flags Flags, timeout time.Duration) (ev event.Event, retry bool, err error) {
	c := &call{flags: flags}
	checkOnly := flags.Any(Interrupt | Timeout)

	if !r.queue.Empty() && flags.Has(Timeout) {
		return event.Event{}, false, nil
	}

	if r.queue.Empty() || checkOnly {
		fetched, stop, err := r.fetch(ctx, c, timeout)
		if stop {
			return fetched, false, err
		}
		if checkOnly {
			if fetched.Kind == event.Timeout {
				return fetched, false, nil
			}
			return event.Event{}, false, nil
		}
		if r.queue.Empty() {
			// Nothing arrived before the caller's timeout.
			return fetched, false, nil
		}
	}

	for {
		head, ok := r.queue.Peek()
		if !ok {
			return event.Event{}, true, nil
		}
		if head.Kind != event.Character {
			r.queue.Remove(1)
			r.metrics.recordEvent()
			return head, false, nil
		}

		b, wait, done := r.match(c, head)
		if done {
			return r.unmapped(c, head), false, nil
		}
		if wait {
			d := r.partialTimeout(head)
			fetched, stop, err := r.fetch(ctx, c, d)
			if stop {
				return fetched, false, err
			}
			continue
		}

		if flags.Has(MapNoDigit) && b.Output != nil && !r.class.IsDigit(b.Output[0]) {
			return r.notDigit(), false, nil
		}

		selfPrefix := b.Output != nil && len(b.Output) >= len(b.Input) &&
			slices.Equal(b.Output[:len(b.Input)], b.Input)

		r.queue.Remove(len(b.Input))
		if b.Output == nil {
			return event.Event{}, true, nil
		}
		r.metrics.recordExpansion()

		if !r.settings.Remap {
			r.queue.PushChars(b.Output, event.Mapped|event.NoMap)
			return r.first(c), false, nil
		}

		c.remaps++
		if (c.remaps == 1 || c.remaps%remapPollInterval == 0) && r.src.PollInterrupt() {
			r.interrupt()
			r.metrics.recordRemapAbort()
			r.queue.FlushWhile(event.Mapped)
			r.logger.WithField("expansions", c.remaps).Warn("map expansion interrupted")
			return event.Of(event.Interrupt), false, nil
		}

		if selfPrefix {
			r.queue.PushChars(b.Output[len(b.Input):], event.Mapped)
			r.queue.PushChars(b.Output[:len(b.Input)], event.NoMap|event.Mapped)
			return r.first(c), false, nil
		}
		r.queue.PushChars(b.Output, event.Mapped)
		r.metrics.recordQueueLen(r.queue.Len())
	}
}

// match decides what to do with a character at the head of the queue.
// done means return it unmapped; wait means more input is needed; otherwise
// b is the binding to expand.
func (r *Resolver) match(c *call, head event.Event) (b *seq.Binding, wait, done bool) {
	if c.timedOut {
		// Out of time: the key is returned as typed.
		return nil, false, true
	}
	if head.Ch.Flags.Has(event.NoMap) ||
		!c.flags.Any(MapCommand|MapInput) ||
		!r.seqs.MayStart(head.Ch.Raw) {
		return nil, false, true
	}

	kind := seq.Input
	if c.flags.Has(MapCommand) {
		kind = seq.Command
	}
	b, partial := r.seqs.Find(kind, r.queue)
	if partial {
		return nil, true, false
	}
	return b, false, b == nil
}

// partialTimeout is the wait for the rest of a partial match starting with
// head. Zero waits indefinitely.
func (r *Resolver) partialTimeout(head event.Event) time.Duration {
	if !r.settings.Timeout {
		return 0
	}
	if head.Ch.Value == key.Escape {
		return r.settings.EscapeTime
	}
	return r.settings.KeyTime
}

// first returns the character now at the head of the queue without mapping
// it further.
func (r *Resolver) first(c *call) event.Event {
	head, _ := r.queue.Peek()
	return r.unmapped(c, head)
}

// unmapped returns head as is, or the end-of-count sentinel if the caller is
// reading a count and head is not a digit.
func (r *Resolver) unmapped(c *call, head event.Event) event.Event {
	if c.flags.Has(MapNoDigit) && !r.class.IsDigit(head.Ch.Raw) {
		return r.notDigit()
	}
	r.queue.Remove(1)
	r.metrics.recordEvent()
	return head
}

func (r *Resolver) notDigit() event.Event {
	r.metrics.recordNotDigit()
	return event.NewChar(key.NotDigit, key.NotUsed, 0)
}

// fetch reads one event from the source and queues it. stop reports that the
// returned event (or error) ends the call.
func (r *Resolver) fetch(ctx context.Context, c *call, timeout time.Duration) (ev event.Event, stop bool, err error) {
	ev, err = r.src.NextEvent(ctx, c.flags&sourceFlags, timeout)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return ev, true, err
		}
		return event.NewErr(err), true, r.fatal(event.Err, err)
	}

	switch ev.Kind {
	case event.Err:
		cause := ev.Err
		if cause == nil {
			cause = ErrInput
		}
		return ev, true, r.fatal(ev.Kind, cause)
	case event.Hangup, event.Terminate:
		return ev, true, r.fatal(ev.Kind, ErrTerminated)
	case event.Timeout:
		c.timedOut = true
		r.metrics.recordTimeout()
	case event.Interrupt:
		r.interrupt()
		if c.flags.Has(Interrupt) {
			return ev, true, nil
		}
		r.queue.Append(ev)
	case event.None:
	default:
		r.queue.Append(ev)
	}
	r.metrics.recordQueueLen(r.queue.Len())
	return ev, false, nil
}

// fatal flushes every document and builds the error returned to the caller.
func (r *Resolver) fatal(kind event.Kind, cause error) error {
	r.metrics.recordFatalEvent()
	r.logger.WithField("event", kind.String()).Error("fatal input: %v", cause)

	err := fault.Fatal("input", fmt.Errorf("%s: %w", kind, cause))
	if r.flusher != nil {
		if ferr := r.flusher.FlushAll(kind); ferr != nil {
			r.logger.Error("flush after %s failed: %v", kind, ferr)
			err = errors.Join(err, ferr)
		}
	}
	return err
}

func (r *Resolver) interrupt() {
	r.metrics.recordInterrupt()
	if r.onInterrupt != nil {
		r.onInterrupt()
	}
}
