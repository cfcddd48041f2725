package script

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vicore/internal/fault"
	"github.com/dshills/vicore/internal/logging"
)

// DefaultTimeout bounds the run time of one script.
const DefaultTimeout = 5 * time.Second

// Editor receives the definitions a script makes.
type Editor interface {
	Map(lhs, rhs string, input bool) error
	Unmap(lhs string, input bool) error
	Abbreviate(lhs, rhs string) error
	Unabbreviate(lhs string) error
	Set(name, value string) error
}

// Option configures a State during creation.
type Option func(*State)

// WithTimeout sets how long one script may run.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l.WithComponent("script")
		}
	}
}

// State is a sandboxed Lua interpreter bound to an Editor.
//
// gopher-lua states are not goroutine-safe; State serializes every run.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	ed      Editor
	timeout time.Duration
	logger  *logging.Logger
	closed  bool
}

// NewState returns a sandboxed interpreter whose API calls go to ed.
func NewState(ed Editor, opts ...Option) *State {
	s := &State{
		ed:      ed,
		timeout: DefaultTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(s.L)
	lua.OpenTable(s.L)
	lua.OpenString(s.L)
	lua.OpenMath(s.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.install()
	return s
}

// RunFile runs the script at path.
func (s *State) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s.logger.Debug("running %s", path)
	return s.run(ctx, path, string(code))
}

// RunString runs code. name labels errors.
func (s *State) RunString(ctx context.Context, name, code string) error {
	return s.run(ctx, name, code)
}

func (s *State) run(ctx context.Context, name, code string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: lua panic: %v", name, r)
		}
	}()

	fn, err := s.L.Load(strings.NewReader(code), name)
	if err != nil {
		return fault.UserWrap(err, "%s: %v", name, err)
	}
	s.L.Push(fn)
	if err := s.L.PCall(0, lua.MultRet, nil); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
		return fault.UserWrap(err, "%s: %v", name, err)
	}
	s.L.SetTop(0)
	return nil
}

// Close releases the interpreter.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
}
