package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

const employeesPath = "/employees"

// EmployeeRepository reads and writes employees through the records API.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Create(ctx context.Context, fields domain.EmployeeFields) (domain.Employee, error)
	Update(ctx context.Context, id string, fields domain.EmployeeFields) (domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	client *Client
	tokens TokenSource
}

// NewEmployeeRepository builds the repository for one session's credentials.
func NewEmployeeRepository(client *Client, tokens TokenSource) EmployeeRepository {
	return &employeeRepository{client: client, tokens: tokens}
}

// employeePayload is the write shape: the records API keys departments by
// integer, so numeric ids go out as JSON numbers.
type employeePayload struct {
	domain.EmployeeFields
	DepartmentID any `json:"departmentId"`
}

func newEmployeePayload(fields domain.EmployeeFields) employeePayload {
	payload := employeePayload{EmployeeFields: fields, DepartmentID: fields.DepartmentID.String()}
	if n, err := strconv.ParseInt(fields.DepartmentID.String(), 10, 64); err == nil {
		payload.DepartmentID = n
	}
	return payload
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var result []domain.Employee
	err := r.client.do(ctx, call{
		resource:  "employees",
		operation: "list",
		method:    fasthttp.MethodGet,
		path:      employeesPath,
		tokens:    r.tokens,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *employeeRepository) Create(ctx context.Context, fields domain.EmployeeFields) (domain.Employee, error) {
	var employee domain.Employee
	err := r.client.do(ctx, call{
		resource:  "employees",
		operation: "create",
		method:    fasthttp.MethodPost,
		path:      employeesPath,
		body:      newEmployeePayload(fields),
		tokens:    r.tokens,
	}, &employee)
	return employee, err
}

func (r *employeeRepository) Update(ctx context.Context, id string, fields domain.EmployeeFields) (domain.Employee, error) {
	var employee domain.Employee
	err := r.client.do(ctx, call{
		resource:  "employees",
		operation: "update",
		method:    fasthttp.MethodPut,
		path:      employeesPath + "/" + url.PathEscape(id),
		body:      newEmployeePayload(fields),
		tokens:    r.tokens,
	}, &employee)
	return employee, err
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, call{
		resource:  "employees",
		operation: "delete",
		method:    fasthttp.MethodDelete,
		path:      employeesPath + "/" + url.PathEscape(id),
		tokens:    r.tokens,
	}, nil)
}
