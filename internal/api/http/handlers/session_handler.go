package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/domain"
)

// SessionRevoker ends a session so its token stops being admitted.
type SessionRevoker interface {
	Revoke(c *fiber.Ctx, session domain.Session) error
}

// SessionHandler reports and ends the caller's console session.
type SessionHandler struct {
	workspaces Workspaces
	revoker    SessionRevoker
	logger     *zap.Logger
}

// NewSessionHandler constructs handler.
func NewSessionHandler(workspaces Workspaces, revoker SessionRevoker, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{workspaces: workspaces, revoker: revoker, logger: logger}
}

// Get GET /console/session.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	w := h.workspaces.Get(session)
	return c.JSON(fiber.Map{"data": fiber.Map{
		"session": session,
		"screens": fiber.Map{
			"departments": w.DepartmentScreen.Phase(),
			"employees":   w.EmployeeScreen.Phase(),
		},
	}})
}

// Logout POST /console/session/logout. The token is revoked and the
// session's workspace discarded.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.revoker.Revoke(c, session); err != nil {
		return err
	}
	h.workspaces.Drop(session.ID)
	h.logger.Info("session ended", zap.String("session_id", session.ID), zap.String("subject", session.Subject))
	return c.SendStatus(fiber.StatusNoContent)
}
