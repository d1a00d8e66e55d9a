// Package alert holds the single pending user-facing notification.
package alert

import (
	"sync"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

// Listener receives a snapshot after every change.
type Listener func(domain.Notification)

// Store is a last-write-wins notification slot. There is no queue: a show
// replaces whatever is currently displayed.
type Store struct {
	// notifyMu keeps listener callbacks in write order.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	state     domain.Notification
	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewStore returns a store with nothing visible.
func NewStore() *Store {
	return &Store{
		state:     domain.Notification{Severity: domain.SeverityInfo},
		listeners: make(map[int]Listener),
	}
}

// GetState returns the current notification.
func (s *Store) GetState() domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Show overwrites the current notification and makes it visible. An empty
// or unknown severity falls back to info.
func (s *Store) Show(message string, severity domain.Severity) {
	if !severity.Valid() {
		severity = domain.SeverityInfo
	}
	s.set(func(n *domain.Notification) {
		*n = domain.Notification{Visible: true, Message: message, Severity: severity}
	})
}

func (s *Store) ShowSuccess(message string) { s.Show(message, domain.SeveritySuccess) }
func (s *Store) ShowError(message string)   { s.Show(message, domain.SeverityError) }
func (s *Store) ShowWarning(message string) { s.Show(message, domain.SeverityWarning) }
func (s *Store) ShowInfo(message string)    { s.Show(message, domain.SeverityInfo) }

// Dismiss hides the notification. Message and severity stay in place until
// the next show.
func (s *Store) Dismiss() {
	s.set(func(n *domain.Notification) { n.Visible = false })
}

// Subscribe registers listener and returns a func that removes it.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = listener
	s.order = append(s.order, id)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) set(change func(*domain.Notification)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	change(&s.state)
	next := s.state
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}
