package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// AlertHandler exposes the workspace's notification slot.
type AlertHandler struct {
	workspaces Workspaces
}

// NewAlertHandler constructs handler.
func NewAlertHandler(workspaces Workspaces) *AlertHandler {
	return &AlertHandler{workspaces: workspaces}
}

// Get GET /console/alert.
func (h *AlertHandler) Get(c *fiber.Ctx) error {
	w, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": w.Alerts.GetState()})
}

// Dismiss POST /console/alert/dismiss.
func (h *AlertHandler) Dismiss(c *fiber.Ctx) error {
	w, err := currentWorkspace(c, h.workspaces)
	if err != nil {
		return err
	}
	w.Alerts.Dismiss()
	return c.JSON(fiber.Map{"data": w.Alerts.GetState()})
}
