// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/weathermap/internal/view"
)

type session struct {
	state    view.State
	lastSeen time.Time
}

// SessionStore holds the view state of every browser session in memory.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// NewID returns a random session id.
func (s *SessionStore) NewID() string {
	return uuid.NewString()
}

// Load returns a copy of the state of session id.
func (s *SessionStore) Load(id string) (view.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return view.State{}, false
	}
	sess.lastSeen = s.now()
	return sess.state.Clone(), true
}

// Store replaces the state of session id. Concurrent triggers of the same session overwrite
// each other, the last one to complete wins.
func (s *SessionStore) Store(id string, state view.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{state: state.Clone(), lastSeen: s.now()}
}

// Purge removes all sessions that have not been used within ttl and returns their number.
func (s *SessionStore) Purge(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
