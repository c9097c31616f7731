package draft

import (
	"sort"
	"sync"
)

// Directory is the process-wide registry of draft sessions, keyed by name.
// Sessions are independent of each other, so the RWMutex only guards the
// map itself.
type Directory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewDirectory creates an empty session directory
func NewDirectory() *Directory {
	return &Directory{
		sessions: make(map[string]*Session),
	}
}

// Add registers a session under its name.
func (d *Directory) Add(session *Session) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.sessions[session.Name()]; ok {
		return ErrSessionExists
	}
	d.sessions[session.Name()] = session
	return nil
}

// Get looks up a session by name.
func (d *Directory) Get(name string) (*Session, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	session, ok := d.sessions[name]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove drops a session from the directory.
func (d *Directory) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.sessions[name]; !ok {
		return ErrSessionNotFound
	}
	delete(d.sessions, name)
	return nil
}

// Names lists the registered session names, sorted.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.sessions))
	for name := range d.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered sessions.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
