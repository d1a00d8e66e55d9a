package console

import "github.com/Behnamfe76/directory-console/internal/domain"

// DepartmentColumns are the department grid columns.
func DepartmentColumns() []Column[domain.Department] {
	return []Column[domain.Department]{
		{Field: "name", Header: "Name", Filterable: true, Value: func(d domain.Department) string { return d.Name }},
		{Field: "description", Header: "Description", Filterable: true, Value: func(d domain.Department) string { return d.Description }},
		{Field: "createdAt", Header: "Created At", Filterable: true, Value: func(d domain.Department) string { return d.CreatedAt }},
		{Field: "updatedAt", Header: "Updated At", Filterable: true, Value: func(d domain.Department) string { return d.UpdatedAt }},
	}
}

// EmployeeColumns are the employee grid columns. The department column
// shows the embedded snapshot and may lag behind the department list.
func EmployeeColumns() []Column[domain.Employee] {
	return []Column[domain.Employee]{
		{Field: "imageUrl", Header: "Photo", Value: func(e domain.Employee) string { return e.ImageURL }},
		{Field: "firstName", Header: "First Name", Filterable: true, Value: func(e domain.Employee) string { return e.FirstName }},
		{Field: "lastName", Header: "Last Name", Filterable: true, Value: func(e domain.Employee) string { return e.LastName }},
		{Field: "email", Header: "Email", Filterable: true, Value: func(e domain.Employee) string { return e.Email }},
		{Field: "phoneNumber", Header: "Phone", Filterable: true, Value: func(e domain.Employee) string { return e.PhoneNumber }},
		{Field: "jobTitle", Header: "Job Title", Filterable: true, Value: func(e domain.Employee) string { return e.JobTitle }},
		{Field: "department", Header: "Department", Filterable: true, Value: domain.Employee.DepartmentName},
		{Field: "gender", Header: "Gender", Filterable: true, Value: func(e domain.Employee) string { return e.Gender }},
		{Field: "dateOfEmployment", Header: "Hire Date", Filterable: true, Value: func(e domain.Employee) string { return e.DateOfEmployment }},
		{Field: "createdAt", Header: "Created At", Filterable: true, Value: func(e domain.Employee) string { return e.CreatedAt }},
		{Field: "updatedAt", Header: "Updated At", Filterable: true, Value: func(e domain.Employee) string { return e.UpdatedAt }},
	}
}
