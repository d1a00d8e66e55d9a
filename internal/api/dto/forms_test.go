package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

var today = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func validEmployee() domain.EmployeeFields {
	return domain.EmployeeFields{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		PhoneNumber:      "0123456789",
		Gender:           domain.GenderFemale,
		DateOfBirth:      "1990-12-10",
		JobTitle:         "Engineer",
		ImageURL:         "/public/employee-images/1-a.png",
		Address:          "12 Analytical St",
		DateOfEmployment: "2025-03-10",
		DepartmentID:     "4",
	}
}

func TestValidateDepartment(t *testing.T) {
	cases := []struct {
		name   string
		fields domain.DepartmentFields
		want   FieldErrors
	}{
		{"valid", domain.DepartmentFields{Name: "Eng", Description: "Builds"}, FieldErrors{}},
		{"empty", domain.DepartmentFields{}, FieldErrors{
			"name":        "Department name is required",
			"description": "Department description is required",
		}},
		{"short name", domain.DepartmentFields{Name: "E", Description: "d"}, FieldErrors{
			"name": "Department name must be at least 2 characters",
		}},
		{"long fields", domain.DepartmentFields{Name: strings.Repeat("n", 101), Description: strings.Repeat("d", 501)}, FieldErrors{
			"name":        "Department name must not exceed 100 characters",
			"description": "Description must not exceed 500 characters",
		}},
		{"multibyte name counts runes", domain.DepartmentFields{Name: "研发", Description: "d"}, FieldErrors{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateDepartment(tc.fields)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(tc.want) == 0, got.Valid())
		})
	}
}

func TestValidateEmployeeAcceptsValidFields(t *testing.T) {
	errs := ValidateEmployee(validEmployee(), []domain.ID{"1", "4"}, today)
	assert.True(t, errs.Valid(), "%v", errs)
}

func TestValidateEmployeeRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.EmployeeFields)
		field  string
		want   string
	}{
		{"first name required", func(f *domain.EmployeeFields) { f.FirstName = "" }, "firstName", "First name is required"},
		{"last name too long", func(f *domain.EmployeeFields) { f.LastName = strings.Repeat("x", 51) }, "lastName", "Last name must not exceed 50 characters"},
		{"email format", func(f *domain.EmployeeFields) { f.Email = "ada-at-example" }, "email", "Invalid email format"},
		{"phone too short", func(f *domain.EmployeeFields) { f.PhoneNumber = "12345" }, "phoneNumber", "Phone number must be 10-15 digits"},
		{"phone with symbols", func(f *domain.EmployeeFields) { f.PhoneNumber = "+1234567890" }, "phoneNumber", "Phone number must be 10-15 digits"},
		{"gender", func(f *domain.EmployeeFields) { f.Gender = "Other" }, "gender", "Please select a valid gender"},
		{"birth date format", func(f *domain.EmployeeFields) { f.DateOfBirth = "10/12/1990" }, "dateOfBirth", "Date of birth must be a valid date"},
		{"birth date in future", func(f *domain.EmployeeFields) { f.DateOfBirth = "2025-03-11" }, "dateOfBirth", "Date of birth cannot be in the future"},
		{"job title short", func(f *domain.EmployeeFields) { f.JobTitle = "E" }, "jobTitle", "Job title must be at least 2 characters"},
		{"image required", func(f *domain.EmployeeFields) { f.ImageURL = "" }, "imageUrl", "Profile image is required"},
		{"address short", func(f *domain.EmployeeFields) { f.Address = "12" }, "address", "Address must be at least 5 characters"},
		{"employment in future", func(f *domain.EmployeeFields) { f.DateOfEmployment = "2026-01-01" }, "dateOfEmployment", "Date of employment cannot be in the future"},
		{"department required", func(f *domain.EmployeeFields) { f.DepartmentID = "" }, "departmentId", "Department is required"},
		{"department not loaded", func(f *domain.EmployeeFields) { f.DepartmentID = "99" }, "departmentId", "Please select a valid department"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validEmployee()
			tc.mutate(&fields)
			errs := ValidateEmployee(fields, []domain.ID{"1", "4"}, today)
			assert.Equal(t, FieldErrors{tc.field: tc.want}, errs)
		})
	}
}

func TestValidateEmployeeEmptyForm(t *testing.T) {
	errs := ValidateEmployee(domain.EmployeeFields{}, nil, today)
	assert.Len(t, errs, 11)
	assert.Equal(t, "Department is required", errs["departmentId"])
}

func TestFormRoundTrip(t *testing.T) {
	fields := validEmployee()
	assert.Equal(t, fields, NewEmployeeForm(fields).Fields())

	dept := domain.DepartmentFields{Name: "Eng", Description: "d"}
	assert.Equal(t, dept, NewDepartmentForm(dept).Fields())
}
