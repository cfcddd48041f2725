package macro

import (
	"strconv"
	"sync"

	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/register"
)

// Pusher accepts characters at the front of the input.
type Pusher interface {
	PushChars(chars []rune, flags event.Flags)
}

// Executor runs registers as input.
type Executor struct {
	mu   sync.Mutex
	regs *register.Manager
	last rune
	set  bool
}

// NewExecutor returns an executor reading regs.
func NewExecutor(regs *register.Manager) *Executor {
	return &Executor{regs: regs}
}

// Last returns the last register executed and whether there is one.
func (e *Executor) Last() (rune, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.set
}

// Execute pushes the text of the register called name onto q. A count
// greater than zero is pushed ahead of the text. The names @ and * mean
// the last register executed.
func (e *Executor) Execute(name rune, count int, q Pusher) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == '@' || name == '*' {
		if !e.set {
			return fault.UserWrap(ErrNoPrevious, "No previous buffer to execute")
		}
		name = e.last
	}
	r, err := e.regs.Get(name)
	if err != nil {
		return err
	}
	e.last, e.set = name, true

	// Pushing to the front reverses order, so push the last text first.
	for i := len(r.Texts) - 1; i >= 0; i-- {
		if r.LineMode || i < len(r.Texts)-1 {
			q.PushChars([]rune{'\n'}, 0)
		}
		q.PushChars([]rune(string(r.Texts[i].Data)), 0)
	}
	if count > 0 {
		q.PushChars([]rune(strconv.Itoa(count)), 0)
	}
	return nil
}
