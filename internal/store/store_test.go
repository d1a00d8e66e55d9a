package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/directory-console/internal/domain"
	"github.com/Behnamfe76/directory-console/internal/events"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

type stubRemote struct {
	listFn   func(ctx context.Context) ([]domain.Department, error)
	createFn func(ctx context.Context, fields domain.DepartmentFields) (domain.Department, error)
	updateFn func(ctx context.Context, id string, fields domain.DepartmentFields) (domain.Department, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubRemote) List(ctx context.Context) ([]domain.Department, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *stubRemote) Create(ctx context.Context, fields domain.DepartmentFields) (domain.Department, error) {
	if s.createFn == nil {
		return domain.Department{}, nil
	}
	return s.createFn(ctx, fields)
}

func (s *stubRemote) Update(ctx context.Context, id string, fields domain.DepartmentFields) (domain.Department, error) {
	if s.updateFn == nil {
		return domain.Department{}, nil
	}
	return s.updateFn(ctx, id, fields)
}

func (s *stubRemote) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

type departmentStore = Store[domain.Department, domain.DepartmentFields]

func newDepartmentStore(remote *stubRemote, dispatcher events.Dispatcher) *departmentStore {
	return New[domain.Department, domain.DepartmentFields](remote, Config{
		Resource:   "departments",
		Singular:   "department",
		Dispatcher: dispatcher,
	})
}

func seed(t *testing.T, s *departmentStore, remote *stubRemote, items ...domain.Department) {
	t.Helper()
	remote.listFn = func(context.Context) ([]domain.Department, error) { return items, nil }
	require.NoError(t, s.Load(context.Background()))
	remote.listFn = nil
}

func ids(items []domain.Department) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.EntityID())
	}
	return out
}

func TestLoadReplacesListInServerOrder(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)

	seed(t, s, remote, domain.Department{ID: "3"}, domain.Department{ID: "1"}, domain.Department{ID: "2"})

	state := s.GetState()
	assert.Equal(t, []string{"3", "1", "2"}, ids(state.Items))
	assert.False(t, state.Loading)
	assert.False(t, state.HasError())
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1", Name: "Eng"})

	remote.listFn = func(context.Context) ([]domain.Department, error) {
		return nil, errors.New("network error")
	}
	err := s.Load(context.Background())
	require.Error(t, err)

	state := s.GetState()
	assert.Equal(t, "network error", state.Error)
	assert.False(t, state.Loading)
	assert.Equal(t, []domain.Department{{ID: "1", Name: "Eng"}}, state.Items)
}

func TestCreateAppendsServerRecord(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1", Name: "Eng"})

	remote.createFn = func(_ context.Context, fields domain.DepartmentFields) (domain.Department, error) {
		return domain.Department{ID: "2", Name: fields.Name, Description: fields.Description, CreatedAt: "T", UpdatedAt: "T"}, nil
	}
	created, err := s.Create(context.Background(), domain.DepartmentFields{Name: "Sales", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("2"), created.ID)

	state := s.GetState()
	require.Len(t, state.Items, 2)
	assert.Equal(t, domain.Department{ID: "1", Name: "Eng"}, state.Items[0])
	assert.Equal(t, domain.Department{ID: "2", Name: "Sales", Description: "d", CreatedAt: "T", UpdatedAt: "T"}, state.Items[1])
}

func TestUpdateReplacesInPlace(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1"}, domain.Department{ID: "2"}, domain.Department{ID: "3"})

	remote.updateFn = func(_ context.Context, id string, fields domain.DepartmentFields) (domain.Department, error) {
		return domain.Department{ID: domain.ID(id), Name: fields.Name}, nil
	}
	_, err := s.Update(context.Background(), "2", domain.DepartmentFields{Name: "Renamed"})
	require.NoError(t, err)

	state := s.GetState()
	assert.Equal(t, []string{"1", "2", "3"}, ids(state.Items))
	assert.Equal(t, "Renamed", state.Items[1].Name)
}

func TestUpdateOfUnknownRecordIsDroppedFromView(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1"})

	remote.updateFn = func(_ context.Context, id string, _ domain.DepartmentFields) (domain.Department, error) {
		return domain.Department{ID: domain.ID(id), Name: "ghost"}, nil
	}
	_, err := s.Update(context.Background(), "9", domain.DepartmentFields{Name: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(s.GetState().Items))
}

func TestUpdateThenLoadWithoutRecord(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1"}, domain.Department{ID: "2"})

	remote.updateFn = func(_ context.Context, id string, _ domain.DepartmentFields) (domain.Department, error) {
		return domain.Department{ID: domain.ID(id), Name: "x"}, nil
	}
	_, err := s.Update(context.Background(), "2", domain.DepartmentFields{Name: "x"})
	require.NoError(t, err)

	seed(t, s, remote, domain.Department{ID: "1"})
	assert.Equal(t, []string{"1"}, ids(s.GetState().Items))
}

func TestDeleteRemovesRecord(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1"}, domain.Department{ID: "2"})

	require.NoError(t, s.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"2"}, ids(s.GetState().Items))
}

func TestDeleteOfUnknownIDLeavesListAlone(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1"}, domain.Department{ID: "2"})

	require.NoError(t, s.Delete(context.Background(), "7"))
	assert.Equal(t, []string{"1", "2"}, ids(s.GetState().Items))

	remote.deleteFn = func(context.Context, string) error { return errors.New("gone") }
	require.Error(t, s.Delete(context.Background(), "7"))
	assert.Equal(t, []string{"1", "2"}, ids(s.GetState().Items))
}

func TestMutationFailuresLeaveListUntouched(t *testing.T) {
	remote := &stubRemote{
		createFn: func(context.Context, domain.DepartmentFields) (domain.Department, error) {
			return domain.Department{}, apperrors.NewRejected("")
		},
		updateFn: func(context.Context, string, domain.DepartmentFields) (domain.Department, error) {
			return domain.Department{}, apperrors.NewTransportError(errors.New("connection refused"))
		},
		deleteFn: func(context.Context, string) error { return errors.New("") },
	}
	s := newDepartmentStore(remote, nil)
	before := []domain.Department{{ID: "1", Name: "Eng"}, {ID: "2", Name: "Ops"}}
	seed(t, s, remote, before...)

	_, err := s.Create(context.Background(), domain.DepartmentFields{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "API returned success: false", s.GetState().Error)

	_, err = s.Update(context.Background(), "1", domain.DepartmentFields{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "connection refused", s.GetState().Error)

	require.Error(t, s.Delete(context.Background(), "1"))
	assert.Equal(t, "Failed to delete department", s.GetState().Error)

	state := s.GetState()
	assert.Equal(t, before, state.Items)
	assert.False(t, state.Loading)
}

func TestNewRequestClearsPreviousError(t *testing.T) {
	remote := &stubRemote{listFn: func(context.Context) ([]domain.Department, error) {
		return nil, errors.New("network error")
	}}
	s := newDepartmentStore(remote, nil)
	require.Error(t, s.Load(context.Background()))
	require.True(t, s.GetState().HasError())

	remote.listFn = nil
	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.GetState().HasError())
}

func TestClearErrorKeepsLoadingAndList(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1"})

	remote.createFn = func(context.Context, domain.DepartmentFields) (domain.Department, error) {
		close(started)
		<-release
		return domain.Department{}, errors.New("late failure")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Create(context.Background(), domain.DepartmentFields{})
	}()
	<-started

	s.ClearError()
	state := s.GetState()
	assert.True(t, state.Loading)
	assert.Equal(t, []string{"1"}, ids(state.Items))

	close(release)
	<-done

	require.Equal(t, "late failure", s.GetState().Error)
	s.ClearError()
	state = s.GetState()
	assert.False(t, state.HasError())
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"1"}, ids(state.Items))
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	releaseLoad := make(chan struct{})
	loadStarted := make(chan struct{})
	remote := &stubRemote{
		listFn: func(context.Context) ([]domain.Department, error) {
			close(loadStarted)
			<-releaseLoad
			return []domain.Department{{ID: "old"}}, nil
		},
		createFn: func(context.Context, domain.DepartmentFields) (domain.Department, error) {
			return domain.Department{ID: "new"}, nil
		},
	}
	s := newDepartmentStore(remote, nil)

	loadErr := make(chan error, 1)
	go func() { loadErr <- s.Load(context.Background()) }()
	<-loadStarted

	_, err := s.Create(context.Background(), domain.DepartmentFields{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(s.GetState().Items))

	close(releaseLoad)
	require.NoError(t, <-loadErr)

	state := s.GetState()
	assert.Equal(t, []string{"new"}, ids(state.Items))
	assert.False(t, state.Loading)
}

func TestInvalidateDropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	remote := &stubRemote{listFn: func(context.Context) ([]domain.Department, error) {
		close(started)
		<-release
		return []domain.Department{{ID: "1"}}, nil
	}}
	s := newDepartmentStore(remote, nil)

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	<-started

	s.Invalidate()
	assert.False(t, s.GetState().Loading)

	close(release)
	require.NoError(t, <-done)
	assert.Empty(t, s.GetState().Items)
}

func TestUpdateAndDeleteRequireID(t *testing.T) {
	called := false
	remote := &stubRemote{deleteFn: func(context.Context, string) error {
		called = true
		return nil
	}}
	s := newDepartmentStore(remote, nil)

	err := s.Delete(context.Background(), "")
	require.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	_, err = s.Update(context.Background(), "", domain.DepartmentFields{})
	require.Error(t, err)
	assert.False(t, called)
	assert.False(t, s.GetState().Loading)
}

func TestUnknownCommand(t *testing.T) {
	s := newDepartmentStore(&stubRemote{}, nil)
	_, err := s.Dispatch(context.Background(), Command[domain.DepartmentFields]{Kind: "bogus"})
	require.Error(t, err)
}

func TestSubscribersSeeEveryTransitionInOrder(t *testing.T) {
	remote := &stubRemote{listFn: func(context.Context) ([]domain.Department, error) {
		return []domain.Department{{ID: "1"}}, nil
	}}
	s := newDepartmentStore(remote, nil)

	var mu sync.Mutex
	var seen []State[domain.Department]
	unsubscribe := s.Subscribe(func(st State[domain.Department]) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, st)
	})

	require.NoError(t, s.Load(context.Background()))
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.Empty(t, seen[0].Items)
	assert.False(t, seen[1].Loading)
	assert.Equal(t, []string{"1"}, ids(seen[1].Items))

	unsubscribe()
	require.NoError(t, s.Load(context.Background()))
	assert.Len(t, seen, 2)
}

func TestStorePublishesEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	record := func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	}
	dispatcher.Subscribe(events.EventEntityCreated, record)
	dispatcher.Subscribe(events.EventRequestFailed, record)

	remote := &stubRemote{
		createFn: func(context.Context, domain.DepartmentFields) (domain.Department, error) {
			return domain.Department{ID: "5"}, nil
		},
		listFn: func(context.Context) ([]domain.Department, error) {
			return nil, errors.New("network error")
		},
	}
	s := newDepartmentStore(remote, dispatcher)

	_, err := s.Create(context.Background(), domain.DepartmentFields{})
	require.NoError(t, err)
	require.Error(t, s.Load(context.Background()))

	require.Len(t, got, 2)
	assert.Equal(t, events.EventEntityCreated, got[0].Type)
	assert.Equal(t, "5", got[0].EntityID)
	assert.Equal(t, "departments", got[0].Resource)
	assert.Equal(t, events.EventRequestFailed, got[1].Type)
	assert.Equal(t, "load", got[1].Command)
	assert.Equal(t, events.RequestFailedPayload{Message: "network error"}, got[1].Payload)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	remote := &stubRemote{}
	s := newDepartmentStore(remote, nil)
	seed(t, s, remote, domain.Department{ID: "1", Name: "Eng"})

	snapshot := s.GetState()
	snapshot.Items[0].Name = "mutated"

	assert.Equal(t, "Eng", s.GetState().Items[0].Name)
}

func counterRemote() *stubRemote {
	var n int
	return &stubRemote{createFn: func(_ context.Context, fields domain.DepartmentFields) (domain.Department, error) {
		n++
		return domain.Department{ID: domain.ID(strconv.Itoa(n)), Name: fields.Name}, nil
	}}
}
