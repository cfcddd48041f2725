package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/seq"
)

var errExhausted = errors.New("fake source exhausted")

// fakeSource replays scripted events. When the script is exhausted a timed
// or interrupt-only read reports a timeout and a blocking read fails.
type fakeSource struct {
	events   []event.Event
	timeouts []time.Duration
	flags    []Flags

	polls       int
	interruptAt int
}

func (f *fakeSource) NextEvent(ctx context.Context, flags Flags, timeout time.Duration) (event.Event, error) {
	f.timeouts = append(f.timeouts, timeout)
	f.flags = append(f.flags, flags)
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if len(f.events) == 0 {
		if timeout > 0 || flags.Has(Interrupt) {
			return event.Of(event.Timeout), nil
		}
		return event.Event{}, errExhausted
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeSource) PollInterrupt() bool {
	f.polls++
	return f.interruptAt > 0 && f.polls >= f.interruptAt
}

type fakeFlusher struct {
	reasons []event.Kind
	err     error
}

func (f *fakeFlusher) FlushAll(reason event.Kind) error {
	f.reasons = append(f.reasons, reason)
	return f.err
}

func newTestResolver(src *fakeSource, settings Settings, opts ...Option) (*Resolver, *seq.Table) {
	seqs := seq.NewTable()
	q := event.NewQueue(key.NewTable(key.SpecialChars{}, nil))
	opts = append([]Option{WithSettings(settings)}, opts...)
	return NewResolver(q, seqs, src, opts...), seqs
}

func str(s string) event.Event { return event.NewString(s) }

// getChars resolves n events and renders them, with '#' for the not-digit
// sentinel.
func getChars(t *testing.T, r *Resolver, flags Flags, n int) string {
	t.Helper()
	var out []rune
	for i := 0; i < n; i++ {
		ev, err := r.Get(context.Background(), flags, 0)
		if err != nil {
			t.Fatalf("Get() #%d error = %v", i, err)
		}
		if ev.Kind != event.Character {
			t.Fatalf("Get() #%d = %v, want character", i, ev)
		}
		if ev.IsNotDigit() {
			out = append(out, '#')
			continue
		}
		out = append(out, ev.Ch.Raw)
	}
	return string(out)
}

func TestResolverNoRemap(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("abc")}}
	settings := DefaultSettings()
	settings.Remap = false
	r, seqs := newTestResolver(src, settings)
	seqs.Set(seq.Command, []rune("ab"), []rune("XY"), true)
	seqs.Set(seq.Command, []rune("X"), []rune("Z"), true)

	if got := getChars(t, r, MapCommand, 3); got != "XYc" {
		t.Errorf("resolved %q, want %q", got, "XYc")
	}
}

func TestResolverRemap(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("abc")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("ab"), []rune("XY"), true)
	seqs.Set(seq.Command, []rune("X"), []rune("Z"), true)

	if got := getChars(t, r, MapCommand, 3); got != "ZYc" {
		t.Errorf("resolved %q, want %q", got, "ZYc")
	}
}

func TestResolverMappedFlags(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("ab")}}
	settings := DefaultSettings()
	settings.Remap = false
	r, seqs := newTestResolver(src, settings)
	seqs.Set(seq.Command, []rune("ab"), []rune("XY"), true)

	ev, err := r.Get(context.Background(), MapCommand, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Ch.Flags.Has(event.Mapped | event.NoMap) {
		t.Errorf("flags = %v, want mapped|nomap", ev.Ch.Flags)
	}
}

func TestResolverUnmappedWithoutMapFlags(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("ab")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("ab"), []rune("XY"), true)

	if got := getChars(t, r, 0, 2); got != "ab" {
		t.Errorf("resolved %q, want %q", got, "ab")
	}
}

func TestResolverInputMaps(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("jjx")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Input, []rune("jj"), []rune("\x1b"), true)
	seqs.Set(seq.Command, []rune("x"), []rune("y"), true)

	ev, err := r.Get(context.Background(), MapInput, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.IsChar(0x1b) || ev.Ch.Value != key.Escape {
		t.Errorf("Get() = %v, want <escape>", ev)
	}
	if got := getChars(t, r, MapInput, 1); got != "x" {
		t.Errorf("command map applied in input mode: %q", got)
	}
}

func TestResolverSelfReferentialMap(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("x")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("x"), []rune("xyz"), true)

	done := make(chan string, 1)
	go func() {
		var out []rune
		for i := 0; i < 3; i++ {
			ev, err := r.Get(context.Background(), MapCommand, 0)
			if err != nil {
				done <- "error: " + err.Error()
				return
			}
			out = append(out, ev.Ch.Raw)
		}
		done <- string(out)
	}()

	select {
	case got := <-done:
		if got != "xyz" {
			t.Errorf("resolved %q, want %q", got, "xyz")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("self-referential map did not terminate")
	}
	if r.Queue().Len() != 0 {
		t.Errorf("queue left with %d events", r.Queue().Len())
	}
}

func TestResolverRemapLoopInterrupted(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("a")}, interruptAt: 3}
	interrupted := false
	r, seqs := newTestResolver(src, DefaultSettings(),
		WithInterruptHandler(func() { interrupted = true }))
	seqs.Set(seq.Command, []rune("a"), []rune("b"), true)
	seqs.Set(seq.Command, []rune("b"), []rune("a"), true)

	done := make(chan event.Event, 1)
	go func() {
		ev, _ := r.Get(context.Background(), MapCommand, 0)
		done <- ev
	}()

	select {
	case ev := <-done:
		if ev.Kind != event.Interrupt {
			t.Errorf("Get() = %v, want interrupt", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("remap loop was not interrupted")
	}
	// Polled on the 1st, 10th and 20th expansion.
	if src.polls != 3 {
		t.Errorf("polls = %d, want 3", src.polls)
	}
	if !interrupted {
		t.Error("interrupt handler not called")
	}
	if got := r.Metrics().Snapshot().RemapAborts; got != 1 {
		t.Errorf("RemapAborts = %d, want 1", got)
	}
}

func TestResolverRemapInterruptFlushesMapped(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("aq")}, interruptAt: 2}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("a"), []rune("ba"), true)
	seqs.Set(seq.Command, []rune("b"), []rune("a"), true)

	ev, err := r.Get(context.Background(), MapCommand, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != event.Interrupt {
		t.Fatalf("Get() = %v, want interrupt", ev)
	}
	if r.Queue().Len() != 1 {
		t.Errorf("queue len = %d, want 1", r.Queue().Len())
	}
	if got := getChars(t, r, MapCommand, 1); got != "q" {
		t.Errorf("after interrupt = %q, want %q", got, "q")
	}
}

func TestResolverDigitTermination(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("d2g")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("g"), []rune("1G"), true)

	if got := getChars(t, r, MapCommand, 1); got != "d" {
		t.Fatalf("command = %q, want d", got)
	}
	if got := getChars(t, r, MapCommand|MapNoDigit, 3); got != "21#" {
		t.Errorf("count = %q, want %q", got, "21#")
	}
	if got := getChars(t, r, MapCommand, 1); got != "G" {
		t.Errorf("after count = %q, want G", got)
	}
}

func TestResolverDigitTerminationMappedNonDigit(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("2g")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("g"), []rune("Gx"), true)

	if got := getChars(t, r, MapCommand|MapNoDigit, 2); got != "2#" {
		t.Errorf("count = %q, want %q", got, "2#")
	}
	// The mapped key was not consumed.
	if ch, _ := r.Queue().CharAt(0); ch != 'g' {
		t.Errorf("queue head = %q, want g", ch)
	}
	if got := getChars(t, r, MapCommand, 2); got != "Gx" {
		t.Errorf("resolved %q, want Gx", got)
	}
}

func TestResolverPartialMatchCompletes(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("\x1b"), str("[A")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("\x1b[A"), []rune("k"), false)

	if got := getChars(t, r, MapCommand, 1); got != "k" {
		t.Errorf("resolved %q, want k", got)
	}
	if len(src.timeouts) != 2 || src.timeouts[1] != 600*time.Millisecond {
		t.Errorf("timeouts = %v, want escapetime waits", src.timeouts)
	}
}

func TestResolverPartialMatchTimesOut(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("\x1b")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("\x1b[A"), []rune("k"), false)

	ev, err := r.Get(context.Background(), MapCommand, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.IsChar(0x1b) {
		t.Errorf("Get() = %v, want unmapped <escape>", ev)
	}
	if got := r.Metrics().Snapshot().Timeouts; got != 1 {
		t.Errorf("Timeouts = %d, want 1", got)
	}
}

func TestResolverPartialTimeoutIsUnmapped(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("a")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("a"), []rune("1"), true)
	seqs.Set(seq.Command, []rune("ab"), []rune("2"), true)

	if got := getChars(t, r, MapCommand, 1); got != "a" {
		t.Errorf("resolved %q, want the unmapped a", got)
	}
	if src.timeouts[1] != time.Second {
		t.Errorf("partial wait = %v, want keytime", src.timeouts[1])
	}
}

func TestResolverTimeoutDisabled(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("\x1b"), str("x")}}
	settings := DefaultSettings()
	settings.Timeout = false
	r, seqs := newTestResolver(src, settings)
	seqs.Set(seq.Command, []rune("\x1b[A"), []rune("k"), false)

	if got := getChars(t, r, MapCommand, 2); got != "\x1bx" {
		t.Errorf("resolved %q", got)
	}
	if src.timeouts[1] != 0 {
		t.Errorf("partial wait = %v, want 0 (indefinite)", src.timeouts[1])
	}
}

func TestResolverMapToNothing(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("qz")}}
	r, seqs := newTestResolver(src, DefaultSettings())
	seqs.Set(seq.Command, []rune("q"), nil, true)

	if got := getChars(t, r, MapCommand, 1); got != "z" {
		t.Errorf("resolved %q, want z", got)
	}
}

func TestResolverPassesNonCharacterEvents(t *testing.T) {
	src := &fakeSource{events: []event.Event{event.NewResize(100, 40)}}
	r, _ := newTestResolver(src, DefaultSettings())

	ev, err := r.Get(context.Background(), MapCommand, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != event.Resize || ev.Width != 100 {
		t.Errorf("Get() = %v, want resize", ev)
	}
}

func TestResolverCallerTimeout(t *testing.T) {
	src := &fakeSource{}
	r, _ := newTestResolver(src, DefaultSettings())

	ev, err := r.Get(context.Background(), 0, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != event.Timeout {
		t.Errorf("Get() = %v, want timeout", ev)
	}
}

func TestResolverInterruptCheck(t *testing.T) {
	src := &fakeSource{events: []event.Event{event.Of(event.Interrupt)}}
	interrupted := false
	r, _ := newTestResolver(src, DefaultSettings(),
		WithInterruptHandler(func() { interrupted = true }))

	ev, err := r.Get(context.Background(), Interrupt, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != event.Interrupt || !interrupted {
		t.Errorf("Get() = %v, interrupted = %v", ev, interrupted)
	}
	if !src.flags[0].Has(Interrupt) {
		t.Error("Interrupt flag not passed to source")
	}
}

func TestResolverInterruptCheckQueuesInput(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("ab")}}
	r, _ := newTestResolver(src, DefaultSettings())

	ev, err := r.Get(context.Background(), Interrupt, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != event.None {
		t.Errorf("Get() = %v, want none", ev)
	}
	if r.Queue().Len() != 2 {
		t.Errorf("queued %d events, want 2", r.Queue().Len())
	}

	ev, _ = r.Get(context.Background(), Timeout, time.Second)
	if ev.Kind != event.None {
		t.Errorf("timeout check with pending input = %v, want none", ev)
	}
	if len(src.timeouts) != 1 {
		t.Error("timeout check read from the source with input pending")
	}
}

func TestResolverFatalEvents(t *testing.T) {
	cause := errors.New("read failed")
	tests := []struct {
		name string
		ev   event.Event
		want error
	}{
		{"hangup", event.Of(event.Hangup), ErrTerminated},
		{"terminate", event.Of(event.Terminate), ErrTerminated},
		{"error", event.NewErr(cause), cause},
		{"error without cause", event.Of(event.Err), ErrInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{events: []event.Event{tt.ev}}
			fl := &fakeFlusher{}
			r, _ := newTestResolver(src, DefaultSettings(), WithFlusher(fl))

			ev, err := r.Get(context.Background(), MapCommand, 0)
			if !fault.IsFatal(err) {
				t.Fatalf("error = %v, want fatal", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if ev.Kind != tt.ev.Kind {
				t.Errorf("event = %v, want %v", ev.Kind, tt.ev.Kind)
			}
			if len(fl.reasons) != 1 || fl.reasons[0] != tt.ev.Kind {
				t.Errorf("flush reasons = %v", fl.reasons)
			}
		})
	}
}

func TestResolverFlushFailureJoined(t *testing.T) {
	flushErr := errors.New("disk full")
	src := &fakeSource{events: []event.Event{event.Of(event.Hangup)}}
	r, _ := newTestResolver(src, DefaultSettings(), WithFlusher(&fakeFlusher{err: flushErr}))

	_, err := r.Get(context.Background(), 0, 0)
	if !errors.Is(err, flushErr) || !fault.IsFatal(err) {
		t.Errorf("error = %v, want fatal joined with flush error", err)
	}
}

func TestResolverSourceError(t *testing.T) {
	src := &fakeSource{}
	fl := &fakeFlusher{}
	r, _ := newTestResolver(src, DefaultSettings(), WithFlusher(fl))

	_, err := r.Get(context.Background(), 0, 0)
	if !fault.IsFatal(err) || !errors.Is(err, errExhausted) {
		t.Errorf("error = %v, want fatal source error", err)
	}
	if len(fl.reasons) != 1 {
		t.Error("source failure did not flush")
	}
}

func TestResolverContextCanceled(t *testing.T) {
	src := &fakeSource{events: []event.Event{str("a")}}
	fl := &fakeFlusher{}
	r, _ := newTestResolver(src, DefaultSettings(), WithFlusher(fl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Get(ctx, 0, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if fault.IsFatal(err) || len(fl.reasons) != 0 {
		t.Error("cancellation treated as fatal")
	}
}
