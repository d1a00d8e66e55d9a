// Package console holds the per-session view layer: list screens with their
// create/edit forms and delete confirmations, the grid presentation and the
// workspace that ties them to the entity stores.
package console

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/api/dto"
	"github.com/Behnamfe76/directory-console/internal/store"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

// Phase is the screen's position in its state machine.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseLoading           Phase = "loading"
	PhaseFormOpen          Phase = "form_open"
	PhaseDeleteConfirmOpen Phase = "delete_confirm_open"
)

// FormMode tells a create form from an edit form.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

// EntityFacade is what a screen needs from an entity façade.
type EntityFacade[T store.Entity, F any] interface {
	State() store.State[T]
	Find(id string) (T, bool)
	Load(ctx context.Context)
	Add(ctx context.Context, fields F) (T, error)
	Edit(ctx context.Context, id string, fields F) (T, error)
	Remove(ctx context.Context, id string) error
	ClearError()
	Invalidate()
}

// Notifier receives the screen's toasts.
type Notifier interface {
	ShowSuccess(message string)
	ShowError(message string)
}

// ScreenConfig wires a screen to one entity.
type ScreenConfig[T store.Entity, F comparable] struct {
	Entity     string // capitalized, e.g. "Department"
	Facade     EntityFacade[T, F]
	Alerts     Notifier
	Grid       *Grid[T]
	Validate   func(F) dto.FieldErrors
	FieldsOf   func(T) F
	RecordName func(T) string
	FieldsName func(F) string
	// ReloadAfterMutation refetches the list after every successful
	// mutation instead of relying on the spliced list alone.
	ReloadAfterMutation bool
	// OnMount runs before the screen's own load on first mount.
	OnMount func(ctx context.Context)
	Logger  *zap.Logger
}

type overlay int

const (
	overlayNone overlay = iota
	overlayForm
	overlayDeleteConfirm
)

// FormView is the rendered state of an open form.
type FormView[F any] struct {
	Mode      FormMode        `json:"mode"`
	TargetID  string          `json:"targetId,omitempty"`
	Values    F               `json:"values"`
	Errors    dto.FieldErrors `json:"errors"`
	Dirty     bool            `json:"dirty"`
	CanSubmit bool            `json:"canSubmit"`
}

// DeleteView is the rendered state of an open delete confirmation.
type DeleteView struct {
	TargetID string `json:"targetId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// ScreenView is everything a client needs to render a screen.
type ScreenView[T any, F any] struct {
	Phase   Phase        `json:"phase"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
	Grid    Page[T]      `json:"grid"`
	Form    *FormView[F] `json:"form,omitempty"`
	Delete  *DeleteView  `json:"delete,omitempty"`
}

// Screen is the list screen state machine for one entity:
//
//	Idle -> Loading            on mount or reload
//	Idle -> FormOpen           on create or edit
//	Idle -> DeleteConfirmOpen  on delete
//	FormOpen, DeleteConfirmOpen -> Idle  on cancel or successful submit
//
// A failed submit keeps the overlay open and raises an error toast.
type Screen[T store.Entity, F comparable] struct {
	cfg    ScreenConfig[T, F]
	noun   string
	logger *zap.Logger

	mu      sync.Mutex
	mounted bool
	overlay overlay
	mode    FormMode
	target  T
	form    *Form[F]
	pending bool
	// seq changes whenever an overlay opens or closes, so a submit that
	// finishes after the user moved on does not close the wrong overlay.
	seq uint64
}

// NewScreen builds a screen.
func NewScreen[T store.Entity, F comparable](cfg ScreenConfig[T, F]) *Screen[T, F] {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Grid == nil {
		cfg.Grid = NewGrid[T](nil, DefaultPageSize)
	}
	return &Screen[T, F]{
		cfg:    cfg,
		noun:   strings.ToLower(cfg.Entity),
		logger: logger.With(zap.String("screen", cfg.Entity)),
	}
}

// Mounted reports whether the screen is mounted.
func (s *Screen[T, F]) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// Mount loads the list the first time the screen is shown. It reports
// whether a load was issued.
func (s *Screen[T, F]) Mount(ctx context.Context) bool {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return false
	}
	s.mounted = true
	s.mu.Unlock()

	if s.cfg.OnMount != nil {
		s.cfg.OnMount(ctx)
	}
	s.cfg.Facade.Load(ctx)
	return true
}

// Reload refetches the list.
func (s *Screen[T, F]) Reload(ctx context.Context) {
	if s.cfg.OnMount != nil {
		s.cfg.OnMount(ctx)
	}
	s.cfg.Facade.Load(ctx)
}

// Unmount closes any overlay and discards responses still in flight.
func (s *Screen[T, F]) Unmount() {
	s.mu.Lock()
	s.mounted = false
	s.closeOverlay()
	s.mu.Unlock()
	s.cfg.Facade.Invalidate()
}

// OpenCreate opens an empty create form.
func (s *Screen[T, F]) OpenCreate() (FormView[F], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireIdle(); err != nil {
		return FormView[F]{}, err
	}
	var zero T
	var empty F
	s.openForm(ModeCreate, zero, empty)
	return s.formView(), nil
}

// OpenEdit opens an edit form on the loaded record with the given id.
func (s *Screen[T, F]) OpenEdit(id string) (FormView[F], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireIdle(); err != nil {
		return FormView[F]{}, err
	}
	record, ok := s.cfg.Facade.Find(id)
	if !ok {
		return FormView[F]{}, apperrors.NewNotFound(s.cfg.Entity, map[string]any{"id": id})
	}
	s.openForm(ModeEdit, record, s.cfg.FieldsOf(record))
	return s.formView(), nil
}

// ChangeForm replaces the open form's values.
func (s *Screen[T, F]) ChangeForm(values F) (FormView[F], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay != overlayForm {
		return FormView[F]{}, apperrors.NewConflict("no form is open", nil)
	}
	s.form.Set(values)
	return s.formView(), nil
}

// CancelForm closes the open form without saving.
func (s *Screen[T, F]) CancelForm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay != overlayForm {
		return apperrors.NewConflict("no form is open", nil)
	}
	s.closeOverlay()
	return nil
}

// SubmitForm creates or updates the record behind the open form.
func (s *Screen[T, F]) SubmitForm(ctx context.Context) (T, error) {
	var zero T

	s.mu.Lock()
	if s.overlay != overlayForm {
		s.mu.Unlock()
		return zero, apperrors.NewConflict("no form is open", nil)
	}
	if errs := s.form.Revalidate(); !errs.Valid() {
		s.mu.Unlock()
		return zero, apperrors.NewValidationError("form has errors", fieldDetails(errs))
	}
	if !s.form.Dirty() {
		s.mu.Unlock()
		return zero, apperrors.NewValidationError("no changes to submit", nil)
	}
	if s.pending || s.cfg.Facade.State().Loading {
		s.mu.Unlock()
		return zero, apperrors.NewConflict("a request is already in progress", nil)
	}
	s.pending = true
	mode, seq, values := s.mode, s.seq, s.form.Values()
	targetID := s.target.EntityID()
	s.mu.Unlock()

	var (
		record T
		err    error
	)
	if mode == ModeCreate {
		record, err = s.cfg.Facade.Add(ctx, values)
	} else {
		record, err = s.cfg.Facade.Edit(ctx, targetID, values)
	}

	s.mu.Lock()
	s.pending = false
	if err == nil && s.seq == seq {
		s.closeOverlay()
	}
	s.mu.Unlock()

	verb := "create"
	if mode == ModeEdit {
		verb = "update"
	}
	if err != nil {
		s.logger.Warn("submit failed", zap.String("mode", string(mode)), zap.String("id", targetID), zap.Error(err))
		s.notifyError(fmt.Sprintf("Failed to %s %s", verb, s.noun))
		return zero, err
	}
	s.notifySuccess(fmt.Sprintf(`%s "%s" %sd successfully`, s.cfg.Entity, s.cfg.FieldsName(values), verb))
	if s.cfg.ReloadAfterMutation {
		s.cfg.Facade.Load(ctx)
	}
	return record, nil
}

// RequestDelete opens the delete confirmation for the given record.
func (s *Screen[T, F]) RequestDelete(id string) (DeleteView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireIdle(); err != nil {
		return DeleteView{}, err
	}
	record, ok := s.cfg.Facade.Find(id)
	if !ok {
		return DeleteView{}, apperrors.NewNotFound(s.cfg.Entity, map[string]any{"id": id})
	}
	s.overlay = overlayDeleteConfirm
	s.target = record
	s.form = nil
	s.seq++
	return s.deleteView(), nil
}

// CancelDelete closes the delete confirmation.
func (s *Screen[T, F]) CancelDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay != overlayDeleteConfirm {
		return apperrors.NewConflict("no delete is pending confirmation", nil)
	}
	s.closeOverlay()
	return nil
}

// ConfirmDelete deletes the record awaiting confirmation.
func (s *Screen[T, F]) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	if s.overlay != overlayDeleteConfirm {
		s.mu.Unlock()
		return apperrors.NewConflict("no delete is pending confirmation", nil)
	}
	if s.pending || s.cfg.Facade.State().Loading {
		s.mu.Unlock()
		return apperrors.NewConflict("a request is already in progress", nil)
	}
	s.pending = true
	seq := s.seq
	targetID, name := s.target.EntityID(), s.cfg.RecordName(s.target)
	s.mu.Unlock()

	err := s.cfg.Facade.Remove(ctx, targetID)

	s.mu.Lock()
	s.pending = false
	if err == nil && s.seq == seq {
		s.closeOverlay()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("delete failed", zap.String("id", targetID), zap.Error(err))
		s.notifyError("Failed to delete " + s.noun)
		return err
	}
	s.notifySuccess(fmt.Sprintf(`%s "%s" deleted successfully`, s.cfg.Entity, name))
	if s.cfg.ReloadAfterMutation {
		s.cfg.Facade.Load(ctx)
	}
	return nil
}

// ClearError clears the store's last error.
func (s *Screen[T, F]) ClearError() { s.cfg.Facade.ClearError() }

// Phase returns the current phase.
func (s *Screen[T, F]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase(s.cfg.Facade.State().Loading)
}

// View renders the screen with the grid filtered by query and sliced to the
// requested zero-based page.
func (s *Screen[T, F]) View(query string, page, pageSize int) ScreenView[T, F] {
	state := s.cfg.Facade.State()

	s.mu.Lock()
	defer s.mu.Unlock()

	view := ScreenView[T, F]{
		Phase:   s.phase(state.Loading),
		Loading: state.Loading,
		Error:   state.Error,
		Grid:    s.cfg.Grid.View(state.Items, query, page, pageSize),
	}
	switch s.overlay {
	case overlayForm:
		s.form.Revalidate()
		form := s.formViewLoading(state.Loading)
		view.Form = &form
	case overlayDeleteConfirm:
		del := s.deleteView()
		view.Delete = &del
	}
	return view
}

func (s *Screen[T, F]) phase(loading bool) Phase {
	switch s.overlay {
	case overlayForm:
		return PhaseFormOpen
	case overlayDeleteConfirm:
		return PhaseDeleteConfirmOpen
	}
	if loading {
		return PhaseLoading
	}
	return PhaseIdle
}

func (s *Screen[T, F]) requireIdle() error {
	switch s.phase(s.cfg.Facade.State().Loading) {
	case PhaseIdle:
		return nil
	case PhaseLoading:
		return apperrors.NewConflict(s.noun+" list is loading", nil)
	default:
		return apperrors.NewConflict("close the open dialog first", map[string]any{"phase": string(s.phase(false))})
	}
}

func (s *Screen[T, F]) openForm(mode FormMode, target T, initial F) {
	s.overlay = overlayForm
	s.mode = mode
	s.target = target
	s.form = NewForm(initial, s.cfg.Validate)
	s.seq++
}

func (s *Screen[T, F]) closeOverlay() {
	var zero T
	s.overlay = overlayNone
	s.mode = ""
	s.target = zero
	s.form = nil
	s.seq++
}

func (s *Screen[T, F]) formView() FormView[F] {
	return s.formViewLoading(s.cfg.Facade.State().Loading)
}

func (s *Screen[T, F]) formViewLoading(loading bool) FormView[F] {
	return FormView[F]{
		Mode:      s.mode,
		TargetID:  s.target.EntityID(),
		Values:    s.form.Values(),
		Errors:    s.form.Errors(),
		Dirty:     s.form.Dirty(),
		CanSubmit: s.form.CanSubmit(loading || s.pending),
	}
}

func (s *Screen[T, F]) deleteView() DeleteView {
	name := s.cfg.RecordName(s.target)
	return DeleteView{
		TargetID: s.target.EntityID(),
		Name:     name,
		Message:  fmt.Sprintf(`Are you sure you want to delete the %s "%s"? This action cannot be undone.`, s.noun, name),
	}
}

func (s *Screen[T, F]) notifySuccess(msg string) {
	if s.cfg.Alerts != nil {
		s.cfg.Alerts.ShowSuccess(msg)
	}
}

func (s *Screen[T, F]) notifyError(msg string) {
	if s.cfg.Alerts != nil {
		s.cfg.Alerts.ShowError(msg)
	}
}

func fieldDetails(errs dto.FieldErrors) map[string]any {
	details := make(map[string]any, len(errs))
	for field, msg := range errs {
		details[field] = msg
	}
	return details
}
