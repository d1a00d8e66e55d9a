// Package store holds the client-side entity state containers. A Store owns
// one resource's {list, loading, error} triple and reconciles it against the
// records API: loads replace the list, creates append, updates replace in
// place, deletes remove. Every request bumps the store's generation; a
// response is applied only while its generation is still current.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/events"
	"github.com/Behnamfe76/directory-console/internal/observability"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

// Config describes the resource a store manages and its collaborators.
type Config struct {
	Resource   string // plural, e.g. "departments"
	Singular   string // e.g. "department"
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

type listenerEntry[T any] struct {
	id int
	fn Listener[T]
}

// Store is a state container for one entity type.
type Store[T Entity, F any] struct {
	remote Remote[T, F]
	cfg    Config
	logger *zap.Logger

	// dispatchMu serializes every mutation together with its listener
	// notifications so listeners observe changes in order.
	dispatchMu sync.Mutex

	mu         sync.RWMutex
	state      State[T]
	generation uint64
	listeners  []listenerEntry[T]
	nextID     int
}

// New constructs an empty store backed by remote.
func New[T Entity, F any](remote Remote[T, F], cfg Config) *Store[T, F] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T, F]{
		remote: remote,
		cfg:    cfg,
		logger: logger.With(zap.String("resource", cfg.Resource)),
		state:  State[T]{Items: []T{}},
	}
}

// Resource returns the plural resource name.
func (s *Store[T, F]) Resource() string { return s.cfg.Resource }

// GetState returns a snapshot of the current state.
func (s *Store[T, F]) GetState() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Find returns the list element with the given id.
func (s *Store[T, F]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.state.Items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Subscribe registers a listener invoked with a snapshot after every change.
// Listeners run on the dispatching goroutine and must not dispatch to the
// same store synchronously. The returned func removes the listener.
func (s *Store[T, F]) Subscribe(listener Listener[T]) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry[T]{id: id, fn: listener})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Load fetches the full list and replaces the local one.
func (s *Store[T, F]) Load(ctx context.Context) error {
	_, err := s.Dispatch(ctx, Load[F]())
	return err
}

// Create posts fields and appends the returned record.
func (s *Store[T, F]) Create(ctx context.Context, fields F) (T, error) {
	return s.Dispatch(ctx, Create(fields))
}

// Update replaces the record with the given id.
func (s *Store[T, F]) Update(ctx context.Context, id string, fields F) (T, error) {
	return s.Dispatch(ctx, Update(id, fields))
}

// Delete removes the record with the given id.
func (s *Store[T, F]) Delete(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, Delete[F](id))
	return err
}

// ClearError drops the last error without touching loading or the list.
func (s *Store[T, F]) ClearError() {
	_, _ = s.Dispatch(context.Background(), ClearError[F]())
}

// Invalidate discards every in-flight response and clears loading. Used
// when the view that issued the requests goes away.
func (s *Store[T, F]) Invalidate() {
	s.mutate(func(st *State[T]) {
		s.generation++
		st.Loading = false
	})
}

// Dispatch routes cmd through the store. The returned record and error are
// the remote outcome; whether the state was updated depends on the request
// still being current when the response arrives.
func (s *Store[T, F]) Dispatch(ctx context.Context, cmd Command[F]) (T, error) {
	var zero T

	switch cmd.Kind {
	case CommandClearError:
		s.mutate(func(st *State[T]) { st.Error = "" })
		return zero, nil
	case CommandUpdate, CommandDelete:
		if cmd.ID == "" {
			return zero, apperrors.NewValidationError(s.cfg.Singular+" id required", nil)
		}
	case CommandLoad, CommandCreate:
	default:
		return zero, fmt.Errorf("store: unknown command %q", cmd.Kind)
	}

	gen := s.begin()
	s.logger.Debug("dispatch", zap.String("command", string(cmd.Kind)), zap.String("id", cmd.ID), zap.Uint64("generation", gen))

	var (
		record T
		items  []T
		err    error
	)
	switch cmd.Kind {
	case CommandLoad:
		items, err = s.remote.List(ctx)
	case CommandCreate:
		record, err = s.remote.Create(ctx, cmd.Fields)
	case CommandUpdate:
		record, err = s.remote.Update(ctx, cmd.ID, cmd.Fields)
	case CommandDelete:
		err = s.remote.Delete(ctx, cmd.ID)
	}

	if err != nil {
		msg := apperrors.Message(err, s.fallbackMessage(cmd.Kind))
		if s.settle(gen, cmd, func(st *State[T]) { st.Error = msg }) {
			s.logger.Warn("request failed", zap.String("command", string(cmd.Kind)), zap.String("id", cmd.ID), zap.Error(err))
			s.publish(ctx, events.Event{
				Type:     events.EventRequestFailed,
				Resource: s.cfg.Resource,
				Command:  string(cmd.Kind),
				EntityID: cmd.ID,
				Payload:  events.RequestFailedPayload{Message: msg},
			})
		}
		return zero, err
	}

	var event events.Event
	applied := s.settle(gen, cmd, func(st *State[T]) {
		switch cmd.Kind {
		case CommandLoad:
			if items == nil {
				items = []T{}
			}
			st.Items = items
			event = events.Event{Type: events.EventEntityLoaded, Payload: events.LoadedPayload{Count: len(items)}}
		case CommandCreate:
			st.Items = appendItem(st.Items, record)
			event = events.Event{Type: events.EventEntityCreated, EntityID: record.EntityID()}
		case CommandUpdate:
			id := record.EntityID()
			if id == "" {
				id = cmd.ID
			}
			st.Items = replaceItem(st.Items, id, record)
			event = events.Event{Type: events.EventEntityUpdated, EntityID: id}
		case CommandDelete:
			st.Items = removeItem(st.Items, cmd.ID)
			event = events.Event{Type: events.EventEntityDeleted, EntityID: cmd.ID}
		}
	})
	if applied {
		event.Resource = s.cfg.Resource
		event.Command = string(cmd.Kind)
		s.publish(ctx, event)
	}
	return record, nil
}

// begin marks a new request in flight and returns its generation.
func (s *Store[T, F]) begin() uint64 {
	var gen uint64
	s.mutate(func(st *State[T]) {
		s.generation++
		gen = s.generation
		st.Loading = true
		st.Error = ""
	})
	return gen
}

// settle applies a completed request if gen is still current.
func (s *Store[T, F]) settle(gen uint64, cmd Command[F], apply func(*State[T])) bool {
	applied := false
	s.mutate(func(st *State[T]) {
		if gen != s.generation {
			return
		}
		applied = true
		st.Loading = false
		apply(st)
	})
	if !applied {
		s.logger.Debug("discarding stale response", zap.String("command", string(cmd.Kind)), zap.Uint64("generation", gen))
		s.cfg.Metrics.RecordStale(s.cfg.Resource, string(cmd.Kind))
	}
	return applied
}

// mutate is the single write path: change state, then notify listeners
// with the resulting snapshot, all under dispatchMu.
func (s *Store[T, F]) mutate(change func(*State[T])) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	before := s.state
	change(&s.state)
	changed := !sameState(before, s.state)
	snapshot := s.state.clone()
	listeners := make([]Listener[T], 0, len(s.listeners))
	for _, entry := range s.listeners {
		listeners = append(listeners, entry.fn)
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, listener := range listeners {
		listener(snapshot)
	}
}

func (s *Store[T, F]) publish(ctx context.Context, event events.Event) {
	if s.cfg.Dispatcher == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := s.cfg.Dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

func (s *Store[T, F]) fallbackMessage(kind CommandKind) string {
	switch kind {
	case CommandLoad:
		return "Failed to fetch " + s.cfg.Resource
	case CommandCreate:
		return "Failed to create " + s.cfg.Singular
	case CommandUpdate:
		return "Failed to update " + s.cfg.Singular
	case CommandDelete:
		return "Failed to delete " + s.cfg.Singular
	}
	return "request failed"
}

// sameState compares loading, error and list identity. Every reconcile
// builds a fresh slice, so identity of the backing array is enough.
func sameState[T any](a, b State[T]) bool {
	if a.Loading != b.Loading || a.Error != b.Error || len(a.Items) != len(b.Items) {
		return false
	}
	if len(a.Items) == 0 {
		return true
	}
	return &a.Items[0] == &b.Items[0]
}
