package app

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vicore/internal/input/event"
	"github.com/dshills/vicore/internal/logging"
)

// Host tracks the live sessions of a process so that all their documents
// can be saved at once. It implements input.Flusher.
type Host struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	logger   *logging.Logger
}

// NewHost returns a host with no sessions.
func NewHost(logger *logging.Logger) *Host {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Host{
		sessions: make(map[uuid.UUID]*Session),
		logger:   logger.WithComponent("host"),
	}
}

func (h *Host) add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

func (h *Host) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.ID)
}

// Len returns the number of live sessions.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// FlushAll saves every modified document of every session. It keeps going
// past failures and returns them joined.
func (h *Host) FlushAll(reason event.Kind) error {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.flush(reason); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
