package repository

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

const departmentsPath = "/departments"

// DepartmentRepository reads and writes departments through the records API.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	Create(ctx context.Context, fields domain.DepartmentFields) (domain.Department, error)
	Update(ctx context.Context, id string, fields domain.DepartmentFields) (domain.Department, error)
	Delete(ctx context.Context, id string) error
}

type departmentRepository struct {
	client *Client
	tokens TokenSource
}

// NewDepartmentRepository builds the repository for one session's credentials.
func NewDepartmentRepository(client *Client, tokens TokenSource) DepartmentRepository {
	return &departmentRepository{client: client, tokens: tokens}
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var result []domain.Department
	err := r.client.do(ctx, call{
		resource:  "departments",
		operation: "list",
		method:    fasthttp.MethodGet,
		path:      departmentsPath,
		tokens:    r.tokens,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *departmentRepository) Create(ctx context.Context, fields domain.DepartmentFields) (domain.Department, error) {
	var dept domain.Department
	err := r.client.do(ctx, call{
		resource:  "departments",
		operation: "create",
		method:    fasthttp.MethodPost,
		path:      departmentsPath,
		body:      fields,
		tokens:    r.tokens,
	}, &dept)
	return dept, err
}

func (r *departmentRepository) Update(ctx context.Context, id string, fields domain.DepartmentFields) (domain.Department, error) {
	var dept domain.Department
	err := r.client.do(ctx, call{
		resource:  "departments",
		operation: "update",
		method:    fasthttp.MethodPut,
		path:      departmentsPath + "/" + url.PathEscape(id),
		body:      fields,
		tokens:    r.tokens,
	}, &dept)
	return dept, err
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, call{
		resource:  "departments",
		operation: "delete",
		method:    fasthttp.MethodDelete,
		path:      departmentsPath + "/" + url.PathEscape(id),
		tokens:    r.tokens,
	}, nil)
}
