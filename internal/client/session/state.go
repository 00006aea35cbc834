// Package session holds the console's in-memory view of who is signed in.
//
// State is the only place the pair {user, authenticated} lives. It has
// exactly two mutators, SetAuthenticated and Clear, and both change the two
// fields together so a half-updated session is never observable.
package session

import (
	"sync"

	"github.com/benayed0/loopa-pro/internal/client/models"
)

// Session is an immutable snapshot of State.
type Session struct {
	User          *models.User
	Authenticated bool
}

// State is safe for concurrent use. The zero value is not usable; call New.
type State struct {
	// writeMu serializes writers that also touch the credential store.
	writeMu sync.Mutex

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	generation    uint64

	subsMu sync.Mutex
	subs   map[int]chan Session
	nextID int
	closed bool
}

// New returns an anonymous session.
func New() *State {
	return &State{subs: make(map[int]chan Session)}
}

// Snapshot returns the current pair. The user is a private copy.
func (s *State) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Session {
	if s.user == nil {
		return Session{}
	}
	u := s.user.Clone()
	return Session{User: &u, Authenticated: s.authenticated}
}

// User returns a copy of the current user, or nil.
func (s *State) User() *models.User {
	return s.Snapshot().User
}

// Generation counts mutations. Any SetAuthenticated or Clear, including a
// Clear of an already anonymous session, moves it forward.
func (s *State) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Update runs fn while holding the writer lock. Sign-in, logout and the
// startup check mutate the session and the credential store together
// inside Update, so those pairs of writes never interleave.
// SetAuthenticated and Clear must not call Update themselves.
func (s *State) Update(fn func() error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return fn()
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetAuthenticated replaces the user wholesale and marks the session
// authenticated.
func (s *State) SetAuthenticated(user models.User) {
	s.mu.Lock()
	u := user.Clone()
	s.user = &u
	s.authenticated = true
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
}

// Clear drops the user and the authenticated flag. Clearing an anonymous
// session is a no-op apart from notifying subscribers.
func (s *State) Clear() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.generation++
	s.mu.Unlock()

	s.publish(Session{})
}

// HasRole is false when nobody is signed in.
func (s *State) HasRole(role models.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.HasRole(role)
}

// HasAnyRole reports whether the user holds at least one of roles. An empty
// list matches any signed-in user.
func (s *State) HasAnyRole(roles ...models.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if s.user.HasRole(r) {
			return true
		}
	}
	return false
}

func (s *State) IsOwnerOrManager() bool {
	return s.HasAnyRole(models.RoleOwner, models.RoleManager)
}

// Subscribe returns a channel that receives the latest snapshot after every
// mutation. Slow readers only ever see the newest value. The returned func
// unsubscribes and closes the channel.
func (s *State) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	s.subsMu.Lock()
	if s.closed {
		s.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

func (s *State) publish(snap Session) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Close detaches every subscriber. The session itself stays readable.
func (s *State) Close() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
