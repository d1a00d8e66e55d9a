package console

import (
	"github.com/Behnamfe76/directory-console/internal/api/dto"
)

// Form holds the values of an open create/edit form. Errors are recomputed
// on every change; submit eligibility is derived, never stored.
type Form[F comparable] struct {
	initial  F
	values   F
	errors   dto.FieldErrors
	validate func(F) dto.FieldErrors
}

// NewForm opens a form on initial.
func NewForm[F comparable](initial F, validate func(F) dto.FieldErrors) *Form[F] {
	f := &Form[F]{initial: initial, values: initial, validate: validate}
	f.revalidate()
	return f
}

func (f *Form[F]) Values() F { return f.values }

// Errors returns a copy of the current field errors.
func (f *Form[F]) Errors() dto.FieldErrors {
	out := make(dto.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Set replaces the values and revalidates.
func (f *Form[F]) Set(values F) dto.FieldErrors {
	f.values = values
	f.revalidate()
	return f.Errors()
}

// Revalidate reruns validation against the current values. Used when the
// validation inputs (such as the department list) change under an open form.
func (f *Form[F]) Revalidate() dto.FieldErrors {
	f.revalidate()
	return f.Errors()
}

// Dirty reports whether any value differs from the initial values.
func (f *Form[F]) Dirty() bool { return f.values != f.initial }

// CanSubmit is true when there are no errors, something changed and no
// request is in flight.
func (f *Form[F]) CanSubmit(loading bool) bool {
	return f.errors.Valid() && f.Dirty() && !loading
}

func (f *Form[F]) revalidate() {
	if f.validate == nil {
		f.errors = dto.FieldErrors{}
		return
	}
	f.errors = f.validate(f.values)
	if f.errors == nil {
		f.errors = dto.FieldErrors{}
	}
}
