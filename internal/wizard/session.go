package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// Session owns one staff member's in-progress wizard: the snapshot, its
// submission guard, and the bus its listeners attach to. All access goes
// through the session mutex; the engine functions themselves are pure.
//
// Recovery is resolved exactly once per session, before any autosave is
// permitted, so a not-yet-loaded draft can never be overwritten by an
// eager save.
type Session struct {
	mu sync.Mutex

	StaffID uuid.UUID

	snapshot *WizardSnapshot
	guard    *Guard
	bus      *Bus

	// pendingRecovery holds a draft offered for resume; nil once resolved
	pendingRecovery  *WizardSnapshot
	recoveryResolved bool
}

func newSession(staffID uuid.UUID, guard *Guard, bus *Bus) *Session {
	return &Session{
		StaffID:  staffID,
		snapshot: NewSnapshot(),
		guard:    guard,
		bus:      bus,
	}
}

// Bus returns the session's event bus
func (s *Session) Bus() *Bus {
	return s.bus
}

// withLock runs fn holding the session mutex
func (s *Session) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Registry maps staff ids to their single wizard session. One session per
// staff account is assumed to own the draft slot.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	newGuard func(bus *Bus) *Guard
}

// NewRegistry creates a session registry. The factory builds a guard wired
// to the given session bus.
func NewRegistry(newGuard func(bus *Bus) *Guard) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		newGuard: newGuard,
	}
}

// Get returns the staff member's session, or nil
func (r *Registry) Get(staffID uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[staffID]
}

// GetOrCreate returns the existing session or creates a fresh one
func (r *Registry) GetOrCreate(staffID uuid.UUID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[staffID]; ok {
		return session
	}
	bus := NewBus()
	session := newSession(staffID, r.newGuard(bus), bus)
	r.sessions[staffID] = session
	return session
}

// Replace installs a fresh session for the staff member, closing the old
// session's bus if one existed
func (r *Registry) Replace(staffID uuid.UUID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.sessions[staffID]; ok {
		old.bus.Close()
	}
	bus := NewBus()
	session := newSession(staffID, r.newGuard(bus), bus)
	r.sessions[staffID] = session
	return session
}

// Remove drops the session and closes its bus
func (r *Registry) Remove(staffID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[staffID]; ok {
		session.bus.Close()
		delete(r.sessions, staffID)
	}
}
