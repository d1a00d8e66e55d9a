package dto

import (
	"context"
	"slices"
	"time"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

// EmployeeForm is the employee create/edit payload.
type EmployeeForm struct {
	FirstName        string    `json:"firstName" validate:"required,min=2,max=50"`
	LastName         string    `json:"lastName" validate:"required,min=2,max=50"`
	Email            string    `json:"email" validate:"required,email"`
	PhoneNumber      string    `json:"phoneNumber" validate:"required,phone"`
	Gender           string    `json:"gender" validate:"required,oneof=Male Female"`
	DateOfBirth      string    `json:"dateOfBirth" validate:"required,datetime=2006-01-02,notfuture"`
	JobTitle         string    `json:"jobTitle" validate:"required,min=2,max=100"`
	ImageURL         string    `json:"imageUrl" validate:"required"`
	Address          string    `json:"address" validate:"required,min=5,max=200"`
	DateOfEmployment string    `json:"dateOfEmployment" validate:"required,datetime=2006-01-02,notfuture"`
	DepartmentID     domain.ID `json:"departmentId" validate:"required"`
}

var employeeMessages = map[messageKey]string{
	{"firstName", "required"}:         "First name is required",
	{"firstName", "min"}:              "First name must be at least 2 characters",
	{"firstName", "max"}:              "First name must not exceed 50 characters",
	{"lastName", "required"}:          "Last name is required",
	{"lastName", "min"}:               "Last name must be at least 2 characters",
	{"lastName", "max"}:               "Last name must not exceed 50 characters",
	{"email", "required"}:             "Email is required",
	{"email", "email"}:                "Invalid email format",
	{"phoneNumber", "required"}:       "Phone number is required",
	{"phoneNumber", "phone"}:          "Phone number must be 10-15 digits",
	{"gender", "required"}:            "Gender is required",
	{"gender", "oneof"}:               "Please select a valid gender",
	{"dateOfBirth", "required"}:       "Date of birth is required",
	{"dateOfBirth", "datetime"}:       "Date of birth must be a valid date",
	{"dateOfBirth", "notfuture"}:      "Date of birth cannot be in the future",
	{"jobTitle", "required"}:          "Job title is required",
	{"jobTitle", "min"}:               "Job title must be at least 2 characters",
	{"jobTitle", "max"}:               "Job title must not exceed 100 characters",
	{"imageUrl", "required"}:          "Profile image is required",
	{"address", "required"}:           "Address is required",
	{"address", "min"}:                "Address must be at least 5 characters",
	{"address", "max"}:                "Address must not exceed 200 characters",
	{"dateOfEmployment", "required"}:  "Date of employment is required",
	{"dateOfEmployment", "datetime"}:  "Date of employment must be a valid date",
	{"dateOfEmployment", "notfuture"}: "Date of employment cannot be in the future",
	{"departmentId", "required"}:      "Department is required",
}

const unknownDepartmentMessage = "Please select a valid department"

// NewEmployeeForm copies fields into a form.
func NewEmployeeForm(fields domain.EmployeeFields) EmployeeForm {
	return EmployeeForm{
		FirstName:        fields.FirstName,
		LastName:         fields.LastName,
		Email:            fields.Email,
		PhoneNumber:      fields.PhoneNumber,
		Gender:           fields.Gender,
		DateOfBirth:      fields.DateOfBirth,
		JobTitle:         fields.JobTitle,
		ImageURL:         fields.ImageURL,
		Address:          fields.Address,
		DateOfEmployment: fields.DateOfEmployment,
		DepartmentID:     fields.DepartmentID,
	}
}

// Fields converts the form back into domain fields.
func (f EmployeeForm) Fields() domain.EmployeeFields {
	return domain.EmployeeFields{
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Email:            f.Email,
		PhoneNumber:      f.PhoneNumber,
		Gender:           f.Gender,
		DateOfBirth:      f.DateOfBirth,
		JobTitle:         f.JobTitle,
		ImageURL:         f.ImageURL,
		Address:          f.Address,
		DateOfEmployment: f.DateOfEmployment,
		DepartmentID:     f.DepartmentID,
	}
}

// ValidateEmployee returns the field errors for fields. departmentIDs is the
// currently loaded department list; the selected department must be one of
// them. Dates later than now's calendar day are rejected.
func ValidateEmployee(fields domain.EmployeeFields, departmentIDs []domain.ID, now time.Time) FieldErrors {
	form := NewEmployeeForm(fields)
	ctx := context.WithValue(context.Background(), nowKey{}, now)
	errs := check(ctx, &form, employeeMessages)
	if _, failed := errs["departmentId"]; !failed && !slices.Contains(departmentIDs, form.DepartmentID) {
		errs["departmentId"] = unknownDepartmentMessage
	}
	return errs
}
