package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/store"
)

// Facade is the command surface views use instead of dispatching to a store
// directly. Mutations return the remote outcome so callers can phrase their
// own messages; loads report only through store state.
type Facade[T store.Entity, F any] struct {
	store  *store.Store[T, F]
	logger *zap.Logger
}

// NewFacade wraps s.
func NewFacade[T store.Entity, F any](s *store.Store[T, F], logger *zap.Logger) *Facade[T, F] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Facade[T, F]{store: s, logger: logger}
}

// State returns the current store snapshot.
func (f *Facade[T, F]) State() store.State[T] { return f.store.GetState() }

// Find returns the loaded record with the given id.
func (f *Facade[T, F]) Find(id string) (T, bool) { return f.store.Find(id) }

// Subscribe forwards to the store.
func (f *Facade[T, F]) Subscribe(listener store.Listener[T]) func() {
	return f.store.Subscribe(listener)
}

// Load refreshes the list. Failures land in the store's error field.
func (f *Facade[T, F]) Load(ctx context.Context) {
	if err := f.store.Load(ctx); err != nil {
		f.logger.Debug("load failed", zap.String("resource", f.store.Resource()), zap.Error(err))
	}
}

func (f *Facade[T, F]) Add(ctx context.Context, fields F) (T, error) {
	return f.store.Create(ctx, fields)
}

func (f *Facade[T, F]) Edit(ctx context.Context, id string, fields F) (T, error) {
	return f.store.Update(ctx, id, fields)
}

func (f *Facade[T, F]) Remove(ctx context.Context, id string) error {
	return f.store.Delete(ctx, id)
}

func (f *Facade[T, F]) ClearError() { f.store.ClearError() }

// Invalidate drops responses to requests issued so far.
func (f *Facade[T, F]) Invalidate() { f.store.Invalidate() }
