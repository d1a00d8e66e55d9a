package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/domain"
	"github.com/Behnamfe76/directory-console/internal/store"
)

// DepartmentStore is the department instantiation of the entity store.
type DepartmentStore = store.Store[domain.Department, domain.DepartmentFields]

// DepartmentService is the department façade.
type DepartmentService struct {
	*Facade[domain.Department, domain.DepartmentFields]
}

// NewDepartmentService constructs the service.
func NewDepartmentService(s *DepartmentStore, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{Facade: NewFacade(s, logger)}
}

func (s *DepartmentService) Departments() []domain.Department { return s.State().Items }

// DepartmentIDs returns the ids of the loaded departments, in list order.
func (s *DepartmentService) DepartmentIDs() []domain.ID {
	items := s.State().Items
	ids := make([]domain.ID, 0, len(items))
	for _, dept := range items {
		ids = append(ids, dept.ID)
	}
	return ids
}

func (s *DepartmentService) LoadDepartments(ctx context.Context) { s.Load(ctx) }

func (s *DepartmentService) AddDepartment(ctx context.Context, fields domain.DepartmentFields) (domain.Department, error) {
	return s.Add(ctx, fields)
}

func (s *DepartmentService) EditDepartment(ctx context.Context, id string, fields domain.DepartmentFields) (domain.Department, error) {
	return s.Edit(ctx, id, fields)
}

func (s *DepartmentService) RemoveDepartment(ctx context.Context, id string) error {
	return s.Remove(ctx, id)
}

func (s *DepartmentService) ClearDepartmentError() { s.ClearError() }
