package console

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/alert"
	"github.com/Behnamfe76/directory-console/internal/api/dto"
	"github.com/Behnamfe76/directory-console/internal/domain"
	"github.com/Behnamfe76/directory-console/internal/events"
	"github.com/Behnamfe76/directory-console/internal/observability"
	"github.com/Behnamfe76/directory-console/internal/repository"
	"github.com/Behnamfe76/directory-console/internal/service"
	"github.com/Behnamfe76/directory-console/internal/store"
	"github.com/Behnamfe76/directory-console/internal/worker"
)

type (
	DepartmentScreen = Screen[domain.Department, domain.DepartmentFields]
	EmployeeScreen   = Screen[domain.Employee, domain.EmployeeFields]
)

// Dependencies are the process-wide collaborators shared by every workspace.
type Dependencies struct {
	Client   *repository.Client
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	PageSize int
	// IdleTimeout evicts workspaces unused for that long. Zero disables
	// idle eviction; expired sessions are evicted regardless.
	IdleTimeout time.Duration
	// Now is the clock used by date validation and workspace eviction.
	Now func() time.Time
	// Remotes overrides the records API repositories. Tests use it to run
	// a workspace without a client.
	Remotes func(tokens repository.TokenSource) (store.Remote[domain.Department, domain.DepartmentFields], store.Remote[domain.Employee, domain.EmployeeFields])
}

// sessionToken is the workspace's TokenSource. It follows the latest bearer
// token presented for the session.
type sessionToken struct {
	mu    sync.RWMutex
	token string
}

func (t *sessionToken) Token(context.Context) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token, nil
}

func (t *sessionToken) set(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

// Workspace is one session's console: its stores, façades, notification
// slot and screens. Nothing in it outlives the session.
type Workspace struct {
	SessionID   string
	Alerts      *alert.Store
	Departments *service.DepartmentService
	Employees   *service.EmployeeService

	DepartmentScreen *DepartmentScreen
	EmployeeScreen   *EmployeeScreen

	tokens *sessionToken
	logger *zap.Logger
}

// NewWorkspace builds a workspace for session.
func NewWorkspace(session domain.Session, deps Dependencies) *Workspace {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session_id", session.ID))
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	tokens := &sessionToken{token: session.Token}
	var (
		departmentRemote store.Remote[domain.Department, domain.DepartmentFields]
		employeeRemote   store.Remote[domain.Employee, domain.EmployeeFields]
	)
	if deps.Remotes != nil {
		departmentRemote, employeeRemote = deps.Remotes(tokens)
	} else {
		departmentRemote = repository.NewDepartmentRepository(deps.Client, tokens)
		employeeRemote = repository.NewEmployeeRepository(deps.Client, tokens)
	}

	dispatcher := events.NewInMemoryDispatcher()
	alerts := alert.NewStore()
	worker.StartWorkspaceWorkers(dispatcher, alerts, logger)

	departments := service.NewDepartmentService(store.New(departmentRemote, store.Config{
		Resource:   "departments",
		Singular:   "department",
		Logger:     logger,
		Dispatcher: dispatcher,
		Metrics:    deps.Metrics,
	}), logger)
	employees := service.NewEmployeeService(store.New(employeeRemote, store.Config{
		Resource:   "employees",
		Singular:   "employee",
		Logger:     logger,
		Dispatcher: dispatcher,
		Metrics:    deps.Metrics,
	}), logger)

	w := &Workspace{
		SessionID:   session.ID,
		Alerts:      alerts,
		Departments: departments,
		Employees:   employees,
		tokens:      tokens,
		logger:      logger,
	}

	w.DepartmentScreen = NewScreen(ScreenConfig[domain.Department, domain.DepartmentFields]{
		Entity:     "Department",
		Facade:     departments,
		Alerts:     alerts,
		Grid:       NewGrid(DepartmentColumns(), deps.PageSize),
		Validate:   dto.ValidateDepartment,
		FieldsOf:   domain.Department.Fields,
		RecordName: domain.Department.DisplayName,
		FieldsName: func(f domain.DepartmentFields) string { return f.Name },
		Logger:     logger,
	})
	w.EmployeeScreen = NewScreen(ScreenConfig[domain.Employee, domain.EmployeeFields]{
		Entity: "Employee",
		Facade: employees,
		Alerts: alerts,
		Grid:   NewGrid(EmployeeColumns(), deps.PageSize),
		Validate: func(f domain.EmployeeFields) dto.FieldErrors {
			return dto.ValidateEmployee(f, departments.DepartmentIDs(), now())
		},
		FieldsOf:            domain.Employee.Fields,
		RecordName:          domain.Employee.DisplayName,
		FieldsName:          domain.EmployeeFields.DisplayName,
		ReloadAfterMutation: true,
		OnMount:             departments.LoadDepartments,
		Logger:              logger,
	})
	return w
}

// Touch records the bearer token the session presented most recently.
func (w *Workspace) Touch(session domain.Session) {
	if session.Token != "" {
		w.tokens.set(session.Token)
	}
}

// Close unmounts both screens, discarding in-flight responses.
func (w *Workspace) Close() {
	w.DepartmentScreen.Unmount()
	w.EmployeeScreen.Unmount()
	w.logger.Debug("workspace closed")
}
