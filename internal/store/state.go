package store

import (
	"context"
	"slices"
)

// Entity is a record with a stable, server-assigned identifier.
type Entity interface {
	EntityID() string
}

// Remote is the records API surface a store reconciles against.
type Remote[T Entity, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields F) (T, error)
	Update(ctx context.Context, id string, fields F) (T, error)
	Delete(ctx context.Context, id string) error
}

// State is the {list, loading, error} triple owned by one store. An empty
// Error means no error.
type State[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// HasError reports whether the last request failed.
func (s State[T]) HasError() bool { return s.Error != "" }

func (s State[T]) clone() State[T] {
	s.Items = slices.Clone(s.Items)
	return s
}

// Listener receives a snapshot after every state change.
type Listener[T any] func(State[T])

func appendItem[T Entity](items []T, item T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, item)
}

// replaceItem swaps the first element with a matching id. Without a match
// the list is returned unchanged.
func replaceItem[T Entity](items []T, id string, item T) []T {
	idx := slices.IndexFunc(items, func(existing T) bool { return existing.EntityID() == id })
	if idx < 0 {
		return items
	}
	next := slices.Clone(items)
	next[idx] = item
	return next
}

// removeItem drops the first element with a matching id.
func removeItem[T Entity](items []T, id string) []T {
	idx := slices.IndexFunc(items, func(existing T) bool { return existing.EntityID() == id })
	if idx < 0 {
		return items
	}
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:idx]...)
	return append(next, items[idx+1:]...)
}
