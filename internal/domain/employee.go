package domain

import "strings"

// Gender values accepted by the employee form.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// DepartmentSummary is the denormalized department snapshot embedded in an
// employee record. It may be stale; DepartmentID is authoritative.
type DepartmentSummary struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Employee is an employee record as returned by the records API.
type Employee struct {
	ID               ID                 `json:"id"`
	FirstName        string             `json:"firstName"`
	LastName         string             `json:"lastName"`
	Email            string             `json:"email"`
	PhoneNumber      string             `json:"phoneNumber"`
	Gender           string             `json:"gender"`
	DateOfBirth      string             `json:"dateOfBirth"`
	JobTitle         string             `json:"jobTitle"`
	ImageURL         string             `json:"imageUrl"`
	Address          string             `json:"address"`
	DateOfEmployment string             `json:"dateOfEmployment"`
	DepartmentID     ID                 `json:"departmentId"`
	Department       *DepartmentSummary `json:"department,omitempty"`
	CreatedAt        string             `json:"createdAt"`
	UpdatedAt        string             `json:"updatedAt"`
}

// EntityID implements store.Entity.
func (e Employee) EntityID() string { return e.ID.String() }

// DisplayName is the employee's full name.
func (e Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// DepartmentName returns the embedded snapshot's name, if any.
func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}

// EmployeeFields are the user-editable employee fields.
type EmployeeFields struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"dateOfBirth"`
	JobTitle         string `json:"jobTitle"`
	ImageURL         string `json:"imageUrl"`
	Address          string `json:"address"`
	DateOfEmployment string `json:"dateOfEmployment"`
	DepartmentID     ID     `json:"departmentId"`
}

// DisplayName is the full name carried by the fields.
func (f EmployeeFields) DisplayName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// Fields extracts the editable fields of e.
func (e Employee) Fields() EmployeeFields {
	return EmployeeFields{
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		Gender:           e.Gender,
		DateOfBirth:      e.DateOfBirth,
		JobTitle:         e.JobTitle,
		ImageURL:         e.ImageURL,
		Address:          e.Address,
		DateOfEmployment: e.DateOfEmployment,
		DepartmentID:     e.DepartmentID,
	}
}
