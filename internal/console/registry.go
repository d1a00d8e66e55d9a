package console

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

// Registry maps session ids to workspaces.
type Registry struct {
	deps Dependencies
	now  func() time.Time

	mu         sync.Mutex
	workspaces map[string]*registryEntry
}

type registryEntry struct {
	workspace *Workspace
	lastUsed  time.Time
	expiresAt time.Time
}

// expired reports whether the entry's token has expired or it sat unused
// for longer than idle.
func (e *registryEntry) expired(now time.Time, idle time.Duration) bool {
	if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
		return true
	}
	return idle > 0 && now.Sub(e.lastUsed) >= idle
}

// NewRegistry creates an empty registry.
func NewRegistry(deps Dependencies) *Registry {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{deps: deps, now: now, workspaces: make(map[string]*registryEntry)}
}

// Get returns the session's workspace, creating it on first use. A workspace
// left past its expiry is replaced by a fresh one.
func (r *Registry) Get(session domain.Session) *Workspace {
	now := r.now()

	r.mu.Lock()
	entry, ok := r.workspaces[session.ID]
	var stale *Workspace
	if ok && entry.expired(now, r.deps.IdleTimeout) {
		stale = entry.workspace
		ok = false
	}
	if !ok {
		entry = &registryEntry{workspace: NewWorkspace(session, r.deps)}
		r.workspaces[session.ID] = entry
	} else {
		entry.workspace.Touch(session)
	}
	entry.lastUsed = now
	entry.expiresAt = session.ExpiresAt
	w := entry.workspace
	r.mu.Unlock()

	if stale != nil {
		stale.Close()
	}
	return w
}

// Drop closes and forgets the session's workspace.
func (r *Registry) Drop(sessionID string) bool {
	r.mu.Lock()
	entry, ok := r.workspaces[sessionID]
	delete(r.workspaces, sessionID)
	r.mu.Unlock()
	if ok {
		entry.workspace.Close()
	}
	return ok
}

// Sweep evicts workspaces whose session expired or went idle and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	var evicted []*Workspace
	for id, entry := range r.workspaces {
		if entry.expired(now, r.deps.IdleTimeout) {
			evicted = append(evicted, entry.workspace)
			delete(r.workspaces, id)
		}
	}
	r.mu.Unlock()

	for _, w := range evicted {
		w.Close()
	}
	return len(evicted)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	logger := r.deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Info("evicted workspaces", zap.Int("count", n), zap.Int("live", r.Len()))
			}
		}
	}
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Close drops every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	workspaces := r.workspaces
	r.workspaces = make(map[string]*registryEntry)
	r.mu.Unlock()
	for _, entry := range workspaces {
		entry.workspace.Close()
	}
}
