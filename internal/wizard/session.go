package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/service"
)

// machine is the common shape of the three dialog state machines.
type machine interface {
	Handle(ctx context.Context, event Event) (Prompt, error)
}

type session struct {
	machine machine
	touched time.Time
}

// Manager routes input events to the one open dialog a session may have.
// Sessions are keyed by an opaque id chosen by the transport (the chat
// id). Starting a new dialog cancels any dialog already open for that
// session, so at most one draft or edit exists per administrator.
//
// The mutex spans whole transitions. The transport feeds events
// sequentially, so there is no contention to speak of; the lock exists
// for the janitor, which reaps from another goroutine.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	store  *catalog.Store
	photos *photos.Manager
	source PhotoSource
}

// NewManager creates a session manager.
func NewManager(store *catalog.Store, photoManager *photos.Manager, source PhotoSource) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		store:    store,
		photos:   photoManager,
		source:   source,
	}
}

// StartCreation opens a creation wizard for the session and returns its
// opening prompt.
func (m *Manager) StartCreation(sessionID string) Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abandonLocked(sessionID)
	w := NewWizard(m.store, m.photos, m.source)
	m.sessions[sessionID] = &session{machine: w, touched: time.Now()}
	return w.Start()
}

// StartEdit opens a single-field edit dialog for the session. A terminal
// prompt (product gone) opens no session.
func (m *Manager) StartEdit(sessionID string, productID int) (Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abandonLocked(sessionID)
	e := NewEdit(m.store, productID)
	prompt, err := e.Start()
	if err != nil {
		return Prompt{}, err
	}
	if !prompt.Terminal {
		m.sessions[sessionID] = &session{machine: e, touched: time.Now()}
	}
	return prompt, nil
}

// StartPhotoReplace opens a photo replacement dialog for the session.
func (m *Manager) StartPhotoReplace(sessionID string, productID int) (Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abandonLocked(sessionID)
	r := NewPhotoReplace(m.store, m.photos, m.source, productID)
	prompt, err := r.Start()
	if err != nil {
		return Prompt{}, err
	}
	if !prompt.Terminal {
		m.sessions[sessionID] = &session{machine: r, touched: time.Now()}
	}
	return prompt, nil
}

// Submit feeds one event into the session's open dialog. A terminal
// prompt closes the session. Without an open dialog the event yields
// service.ErrNoActiveSession so the transport can fall back to its menu
// handling.
func (m *Manager) Submit(ctx context.Context, sessionID string, event Event) (Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return Prompt{}, service.ErrNoActiveSession
	}
	prompt, err := s.machine.Handle(ctx, event)
	if err != nil {
		return Prompt{}, err
	}
	if prompt.Terminal {
		delete(m.sessions, sessionID)
	} else {
		s.touched = time.Now()
	}
	return prompt, nil
}

// Active reports whether the session has an open dialog.
func (m *Manager) Active(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok
}

// ReapIdle cancels dialogs that saw no input for longer than maxIdle and
// returns how many were closed. A stalled dialog never advances on its
// own, so without the reaper it would hold its draft state forever.
func (m *Manager) ReapIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	reaped := 0
	for id, s := range m.sessions {
		if s.touched.After(cutoff) {
			continue
		}
		if _, err := s.machine.Handle(context.Background(), Cancel{}); err != nil {
			logger.Warnw("session_reap_cancel_failed", "session_id", id, "error", err)
		}
		delete(m.sessions, id)
		reaped++
	}
	return reaped
}

// abandonLocked cancels whatever dialog the session currently has open.
// Caller holds the lock.
func (m *Manager) abandonLocked(sessionID string) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	if _, err := s.machine.Handle(context.Background(), Cancel{}); err != nil {
		logger.Warnw("session_abandon_cancel_failed", "session_id", sessionID, "error", err)
	}
	delete(m.sessions, sessionID)
}
