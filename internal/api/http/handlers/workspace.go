package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/directory-console/internal/auth"
	"github.com/Behnamfe76/directory-console/internal/console"
	"github.com/Behnamfe76/directory-console/internal/domain"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

// Workspaces resolves the admitted session's console.
type Workspaces interface {
	Get(session domain.Session) *console.Workspace
	Drop(sessionID string) bool
}

func currentSession(c *fiber.Ctx) (domain.Session, error) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return domain.Session{}, apperrors.NewUnauthorized("session required")
	}
	return session, nil
}

func currentWorkspace(c *fiber.Ctx, workspaces Workspaces) (*console.Workspace, error) {
	session, err := currentSession(c)
	if err != nil {
		return nil, err
	}
	return workspaces.Get(session), nil
}
