package macro

import (
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/register"
)

// Recorder captures typed characters into a register.
type Recorder struct {
	mu        sync.Mutex
	regs      *register.Manager
	recording bool
	name      rune
	buf       strings.Builder
}

// NewRecorder returns a recorder that stores into regs.
func NewRecorder(regs *register.Manager) *Recorder {
	return &Recorder{regs: regs}
}

// IsValidRegister reports whether a recording can be stored under name:
// a letter, upper case to append, or a digit.
func IsValidRegister(name rune) bool {
	return name < unicode.MaxASCII && (unicode.IsLetter(name) || unicode.IsDigit(name))
}

// Start begins recording into the register called name.
func (r *Recorder) Start(name rune) error {
	if !IsValidRegister(name) {
		return fault.UserWrap(ErrInvalidRegister, "Invalid buffer name %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return fault.UserWrap(ErrRecording, "Already recording into buffer %c", r.name)
	}
	r.recording = true
	r.name = name
	r.buf.Reset()
	return nil
}

// Recording returns the register being recorded into and whether a
// recording is active.
func (r *Recorder) Recording() (rune, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.recording
}

// Record adds ev to the recording when ev is a character. Nothing happens
// when no recording is active.
func (r *Recorder) Record(ev event.Event) {
	if ev.Kind != event.Character {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.buf.WriteRune(ev.Ch.Raw)
	}
}

// Stop ends the recording and stores it as a character-mode register, one
// text per recorded line. It returns the register written, or nil when no
// recording was active or nothing was recorded.
func (r *Recorder) Stop() (*register.Register, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return nil, nil
	}
	r.recording = false
	s := r.buf.String()
	r.buf.Reset()
	if s == "" {
		return nil, nil
	}

	lines := strings.Split(s, "\n")
	texts := make([]register.Text, len(lines))
	for i, l := range lines {
		texts[i] = register.NewText([]byte(l), 0, 0)
	}
	if !register.IsAppend(r.name) {
		r.regs.Clear(r.name)
	}
	return r.regs.Cut(r.name, texts, false)
}
