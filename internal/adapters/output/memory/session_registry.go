package memory

import (
	"sync"
	"time"

	"broadcast-service/internal/domain"
	"broadcast-service/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure SessionRegistry implements the output port
var _ output.SessionRegistry = (*SessionRegistry)(nil)

// sessionEntry wraps a session with its own lock so replace-by-timestamp
// is atomic against concurrent appends without cross-session contention.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionRegistry struct - Output adapter for in-memory session storage
// Holds every live broadcast session. historyCap bounds each session's
// message history; sessionTimeout is the inactivity horizon enforced by
// the janitor sweep.
type SessionRegistry struct {
	mu             sync.RWMutex
	sessions       map[string]*sessionEntry
	historyCap     int
	sessionTimeout time.Duration
}

// NewSessionRegistry creates a new in-memory session registry.
// historyCap: maximum messages retained per session (oldest evicted)
// sessionTimeout: inactivity duration after which the janitor removes a session
func NewSessionRegistry(historyCap int, sessionTimeout time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions:       make(map[string]*sessionEntry),
		historyCap:     historyCap,
		sessionTimeout: sessionTimeout,
	}
}

// HistoryCap returns the configured per-session history bound.
func (r *SessionRegistry) HistoryCap() int {
	return r.historyCap
}

// Create allocates a session under a fresh v4 uuid.
func (r *SessionRegistry) Create() *domain.Session {
	now := time.Now()
	session := &domain.Session{
		ID:           uuid.NewString(),
		Messages:     make([]domain.Message, 0),
		CreatedAt:    now,
		LastActivity: now,
	}

	r.mu.Lock()
	r.sessions[session.ID] = &sessionEntry{session: session}
	r.mu.Unlock()

	return session
}

// Get retrieves a session by id and refreshes its activity clock.
func (r *SessionRegistry) Get(id string) (*domain.Session, bool) {
	entry, ok := r.entry(id)
	if !ok {
		return nil, false
	}

	entry.mu.Lock()
	entry.session.LastActivity = time.Now()
	s := entry.session
	entry.mu.Unlock()

	return s, true
}

// Remove tears a session down. Idempotent.
func (r *SessionRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// AppendOrReplace writes a finalized-utterance message into history.
// The message's timestamp is its identity: a quality-pass result lands
// on the slot its provisional sibling occupies instead of appending a
// duplicate. Writes against an absent session are no-ops so orchestration
// tasks racing a Remove do not crash.
func (r *SessionRegistry) AppendOrReplace(id string, msg domain.Message) bool {
	if msg.Interim() {
		// interim messages are bus-only, never history
		return false
	}

	entry, ok := r.entry(id)
	if !ok {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	s := entry.session
	s.LastActivity = time.Now()

	for i := range s.Messages {
		if s.Messages[i].Timestamp.Equal(msg.Timestamp) {
			s.Messages[i] = msg
			return true
		}
	}

	s.Messages = append(s.Messages, msg)
	if overflow := len(s.Messages) - r.historyCap; overflow > 0 {
		s.Messages = append(s.Messages[:0:0], s.Messages[overflow:]...)
	}
	return true
}

// SetLastInterim overwrites the session's single interim slot.
func (r *SessionRegistry) SetLastInterim(id string, msg domain.Message) bool {
	entry, ok := r.entry(id)
	if !ok {
		return false
	}

	entry.mu.Lock()
	entry.session.LastInterim = &msg
	entry.session.LastActivity = time.Now()
	entry.mu.Unlock()
	return true
}

// LastInterim returns the most recently stored interim message.
func (r *SessionRegistry) LastInterim(id string) (domain.Message, bool) {
	entry, ok := r.entry(id)
	if !ok {
		return domain.Message{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.LastInterim == nil {
		return domain.Message{}, false
	}
	return *entry.session.LastInterim, true
}

// History returns a copy of the session's message history.
func (r *SessionRegistry) History(id string) ([]domain.Message, bool) {
	entry, ok := r.entry(id)
	if !ok {
		return nil, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	history := make([]domain.Message, len(entry.session.Messages))
	copy(history, entry.session.Messages)
	return history, true
}

// StartJanitor launches the inactivity sweep and returns a stop func.
// Sessions idle past the configured timeout are removed so abandoned
// broadcasts do not accumulate.
func (r *SessionRegistry) StartJanitor(interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
	return func() { close(stop) }
}

func (r *SessionRegistry) sweep() {
	now := time.Now()

	r.mu.RLock()
	var expired []string
	for id, entry := range r.sessions {
		entry.mu.Lock()
		idle := now.Sub(entry.session.LastActivity)
		entry.mu.Unlock()
		if idle > r.sessionTimeout {
			expired = append(expired, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range expired {
		if r.Remove(id) {
			logrus.Infof("Removed inactive broadcast session %s (idle > %v)", id, r.sessionTimeout)
		}
	}
}

func (r *SessionRegistry) entry(id string) (*sessionEntry, bool) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	return entry, ok
}
