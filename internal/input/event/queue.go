package event

import "github.com/dshills/vicore/internal/input/key"

const (
	// PushSlack is the room left in front of the live window when a
	// push-front has to shift the queue, so that the next few pushes are free.
	PushSlack = 30

	// minGrow is the smallest number of slots added when the queue grows.
	minGrow = 64
)

// Classifier stamps raw characters with their symbolic key value.
type Classifier interface {
	Classify(ch rune) key.Value
}

// Queue is the ordered buffer of pending input events.
//
// Events live in buf[off : off+cnt]. Pushing to the front consumes the slack
// before off; appending consumes the room after the window. Both grow the
// backing array when they run out. A Queue is not safe for concurrent use.
type Queue struct {
	buf   []Event
	off   int
	cnt   int
	class Classifier
}

// NewQueue returns an empty queue that classifies exploded characters with
// class. A nil class stamps every character key.NotUsed.
func NewQueue(class Classifier) *Queue {
	return &Queue{class: class}
}

// SetClassifier replaces the classifier used for new characters.
func (q *Queue) SetClassifier(class Classifier) {
	q.class = class
}

func (q *Queue) classify(ch rune) key.Value {
	if q.class == nil {
		return key.NotUsed
	}
	return q.class.Classify(ch)
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.cnt }

// Empty reports whether no events are pending.
func (q *Queue) Empty() bool { return q.cnt == 0 }

// PushFront inserts evs ahead of every pending event, preserving their order.
func (q *Queue) PushFront(evs ...Event) {
	n := len(evs)
	if n == 0 {
		return
	}

	switch {
	case n <= q.off:
		q.off -= n
	case q.cnt == 0 && n <= len(q.buf):
		q.off = 0
	default:
		total := q.cnt + n + PushSlack
		size := len(q.buf)
		if total >= size {
			size += max(total, minGrow)
		}
		buf := make([]Event, size)
		copy(buf[PushSlack+n:], q.buf[q.off:q.off+q.cnt])
		q.buf = buf
		q.off = PushSlack
	}

	copy(q.buf[q.off:], evs)
	q.cnt += n
}

// PushChars inserts one character event per element of chars ahead of every
// pending event. Each is classified and carries flags.
func (q *Queue) PushChars(chars []rune, flags Flags) {
	if len(chars) == 0 {
		return
	}
	evs := make([]Event, len(chars))
	for i, ch := range chars {
		evs[i] = NewChar(ch, q.classify(ch), flags)
	}
	q.PushFront(evs...)
}

// Append adds ev after every pending event. A String event is exploded into
// one unflagged character event per element.
func (q *Queue) Append(ev Event) {
	if ev.Kind != String {
		q.appendEvents(ev)
		return
	}
	if len(ev.Str) == 0 {
		return
	}
	evs := make([]Event, len(ev.Str))
	for i, ch := range ev.Str {
		evs[i] = NewChar(ch, q.classify(ch), 0)
	}
	q.appendEvents(evs...)
}

func (q *Queue) appendEvents(evs ...Event) {
	n := len(evs)
	end := q.off + q.cnt
	if end+n > len(q.buf) {
		buf := make([]Event, len(q.buf)+max(n, minGrow))
		copy(buf[q.off:], q.buf[q.off:end])
		q.buf = buf
	}
	copy(q.buf[end:], evs)
	q.cnt += n
}

// Peek returns the head event without removing it.
func (q *Queue) Peek() (Event, bool) {
	if q.cnt == 0 {
		return Event{}, false
	}
	return q.buf[q.off], true
}

// Pop removes and returns the head event.
func (q *Queue) Pop() (Event, bool) {
	ev, ok := q.Peek()
	if ok {
		q.Remove(1)
	}
	return ev, ok
}

// At returns the i'th pending event, counting from the head.
func (q *Queue) At(i int) (Event, bool) {
	if i < 0 || i >= q.cnt {
		return Event{}, false
	}
	return q.buf[q.off+i], true
}

// CharAt returns the raw character of the i'th pending event. It reports
// false past the end of the queue or when that event is not a character.
func (q *Queue) CharAt(i int) (rune, bool) {
	ev, ok := q.At(i)
	if !ok || ev.Kind != Character {
		return 0, false
	}
	return ev.Ch.Raw, true
}

// Remove discards the first n events. Removing more than Len empties the
// queue.
func (q *Queue) Remove(n int) {
	if n <= 0 {
		return
	}
	if n > q.cnt {
		n = q.cnt
	}
	for i := q.off; i < q.off+n; i++ {
		q.buf[i] = Event{}
	}
	q.cnt -= n
	if q.cnt == 0 {
		q.off = 0
	} else {
		q.off += n
	}
}

// FlushWhile discards leading character events that carry any of flags and
// reports whether anything was discarded.
func (q *Queue) FlushWhile(flags Flags) bool {
	flushed := false
	for q.cnt > 0 {
		ev := q.buf[q.off]
		if ev.Kind != Character || !ev.Ch.Flags.Any(flags) {
			break
		}
		q.Remove(1)
		flushed = true
	}
	return flushed
}

// Clear discards every pending event.
func (q *Queue) Clear() {
	q.Remove(q.cnt)
}
