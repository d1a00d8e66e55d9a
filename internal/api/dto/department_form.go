package dto

import (
	"context"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

// DepartmentForm is the department create/edit payload.
type DepartmentForm struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

var departmentMessages = map[messageKey]string{
	{"name", "required"}:        "Department name is required",
	{"name", "min"}:             "Department name must be at least 2 characters",
	{"name", "max"}:             "Department name must not exceed 100 characters",
	{"description", "required"}: "Department description is required",
	{"description", "max"}:      "Description must not exceed 500 characters",
}

// NewDepartmentForm copies fields into a form.
func NewDepartmentForm(fields domain.DepartmentFields) DepartmentForm {
	return DepartmentForm{Name: fields.Name, Description: fields.Description}
}

// Fields converts the form back into domain fields.
func (f DepartmentForm) Fields() domain.DepartmentFields {
	return domain.DepartmentFields{Name: f.Name, Description: f.Description}
}

// ValidateDepartment returns the field errors for fields.
func ValidateDepartment(fields domain.DepartmentFields) FieldErrors {
	form := NewDepartmentForm(fields)
	return check(context.Background(), &form, departmentMessages)
}
