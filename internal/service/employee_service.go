package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/domain"
	"github.com/Behnamfe76/directory-console/internal/store"
)

// EmployeeStore is the employee instantiation of the entity store.
type EmployeeStore = store.Store[domain.Employee, domain.EmployeeFields]

// EmployeeService is the employee façade.
type EmployeeService struct {
	*Facade[domain.Employee, domain.EmployeeFields]
}

// NewEmployeeService constructs the service.
func NewEmployeeService(s *EmployeeStore, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{Facade: NewFacade(s, logger)}
}

func (s *EmployeeService) Employees() []domain.Employee { return s.State().Items }

func (s *EmployeeService) LoadEmployees(ctx context.Context) { s.Load(ctx) }

func (s *EmployeeService) AddEmployee(ctx context.Context, fields domain.EmployeeFields) (domain.Employee, error) {
	return s.Add(ctx, fields)
}

func (s *EmployeeService) EditEmployee(ctx context.Context, id string, fields domain.EmployeeFields) (domain.Employee, error) {
	return s.Edit(ctx, id, fields)
}

func (s *EmployeeService) RemoveEmployee(ctx context.Context, id string) error {
	return s.Remove(ctx, id)
}

func (s *EmployeeService) ClearEmployeeError() { s.ClearError() }
