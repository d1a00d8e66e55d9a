package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/directory-console/internal/api/dto"
	"github.com/Behnamfe76/directory-console/internal/console"
	"github.com/Behnamfe76/directory-console/internal/domain"
	"github.com/Behnamfe76/directory-console/internal/store"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

// ScreenHandler exposes one entity screen of the caller's workspace.
type ScreenHandler[T store.Entity, F comparable] struct {
	workspaces Workspaces
	screen     func(*console.Workspace) *console.Screen[T, F]
	parseForm  func(*fiber.Ctx) (F, error)
}

type (
	DepartmentsHandler = ScreenHandler[domain.Department, domain.DepartmentFields]
	EmployeesHandler   = ScreenHandler[domain.Employee, domain.EmployeeFields]
)

// NewDepartmentsHandler serves /console/departments.
func NewDepartmentsHandler(workspaces Workspaces) *DepartmentsHandler {
	return &DepartmentsHandler{
		workspaces: workspaces,
		screen:     func(w *console.Workspace) *console.DepartmentScreen { return w.DepartmentScreen },
		parseForm: func(c *fiber.Ctx) (domain.DepartmentFields, error) {
			var form dto.DepartmentForm
			if err := c.BodyParser(&form); err != nil {
				return domain.DepartmentFields{}, apperrors.NewValidationError("invalid payload", nil)
			}
			return form.Fields(), nil
		},
	}
}

// NewEmployeesHandler serves /console/employees.
func NewEmployeesHandler(workspaces Workspaces) *EmployeesHandler {
	return &EmployeesHandler{
		workspaces: workspaces,
		screen:     func(w *console.Workspace) *console.EmployeeScreen { return w.EmployeeScreen },
		parseForm: func(c *fiber.Ctx) (domain.EmployeeFields, error) {
			var form dto.EmployeeForm
			if err := c.BodyParser(&form); err != nil {
				return domain.EmployeeFields{}, apperrors.NewValidationError("invalid payload", nil)
			}
			return form.Fields(), nil
		},
	}
}

func (h *ScreenHandler[T, F]) current(c *fiber.Ctx) (*console.Screen[T, F], error) {
	w, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return nil, err
	}
	return h.screen(w), nil
}

func (h *ScreenHandler[T, F]) render(c *fiber.Ctx, screen *console.Screen[T, F]) error {
	view := screen.View(c.Query("q"), c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	return c.JSON(fiber.Map{"data": view})
}

// View GET /console/{entity}. The first view of a session mounts the screen,
// which loads the list.
func (h *ScreenHandler[T, F]) View(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	screen.Mount(c.UserContext())
	return h.render(c, screen)
}

// Reload POST /console/{entity}/reload.
func (h *ScreenHandler[T, F]) Reload(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	screen.Reload(c.UserContext())
	return h.render(c, screen)
}

// Unmount POST /console/{entity}/unmount.
func (h *ScreenHandler[T, F]) Unmount(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	screen.Unmount()
	return c.SendStatus(fiber.StatusNoContent)
}

// OpenCreate POST /console/{entity}/form.
func (h *ScreenHandler[T, F]) OpenCreate(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	form, err := screen.OpenCreate()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": form})
}

// OpenEdit POST /console/{entity}/:id/form.
func (h *ScreenHandler[T, F]) OpenEdit(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	form, err := screen.OpenEdit(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": form})
}

// ChangeForm PUT /console/{entity}/form.
func (h *ScreenHandler[T, F]) ChangeForm(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	values, err := h.parseForm(c)
	if err != nil {
		return err
	}
	form, err := screen.ChangeForm(values)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": form})
}

// SubmitForm POST /console/{entity}/form/submit.
func (h *ScreenHandler[T, F]) SubmitForm(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	record, err := screen.SubmitForm(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// CancelForm POST /console/{entity}/form/cancel.
func (h *ScreenHandler[T, F]) CancelForm(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	if err := screen.CancelForm(); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequestDelete POST /console/{entity}/:id/delete.
func (h *ScreenHandler[T, F]) RequestDelete(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	confirm, err := screen.RequestDelete(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": confirm})
}

// ConfirmDelete POST /console/{entity}/delete/confirm.
func (h *ScreenHandler[T, F]) ConfirmDelete(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	if err := screen.ConfirmDelete(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CancelDelete POST /console/{entity}/delete/cancel.
func (h *ScreenHandler[T, F]) CancelDelete(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	if err := screen.CancelDelete(); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearError POST /console/{entity}/error/clear.
func (h *ScreenHandler[T, F]) ClearError(c *fiber.Ctx) error {
	screen, err := h.current(c)
	if err != nil {
		return err
	}
	screen.ClearError()
	return c.SendStatus(fiber.StatusNoContent)
}
