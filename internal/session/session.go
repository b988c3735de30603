// Package session keeps one isolated schedule per API client. Sessions live
// in memory only and expire after an idle period.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/campus-timetable/internal/schedule"
)

var (
	ErrInvalidID = errors.New("invalid session id")
	ErrNotFound  = errors.New("session not found")
)

// Session owns a schedule. All access goes through Do, which serializes
// operations on the same session.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu       sync.Mutex
	schedule *schedule.Schedule
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's schedule.
func (s *Session) Do(fn func(*schedule.Schedule) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.schedule)
}

// Manager is a concurrency-safe registry of sessions.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager returns a manager whose sessions expire after ttl without use.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// WithClock replaces the time source, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create starts a session with an empty schedule.
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		schedule:  schedule.New(),
		lastSeen:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks a session up by its textual ID and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if m.expired(s, now) {
		delete(m.sessions, uid)
		return nil, ErrNotFound
	}
	s.lastSeen = now
	return s, nil
}

// Delete ends a session. Unknown IDs are ignored.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live and not yet swept sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// expired must be called with m.mu held.
func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.lastSeen) > m.ttl
}
