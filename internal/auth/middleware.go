package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/domain"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// Gate validates bearer tokens and admits the caller to the console.
type Gate struct {
	tokens      *TokenManager
	revocations RevocationList
	logger      *zap.Logger
}

// NewGate constructs middleware.
func NewGate(tokens *TokenManager, revocations RevocationList, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, revocations: revocations, logger: logger}
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	// The session keeps the token past this request; detach it from the
	// request buffer.
	raw := utils.CopyString(strings.TrimSpace(parts[1]))

	claims, err := g.tokens.ParseToken(raw)
	if err != nil {
		g.logger.Debug("rejected token", zap.Error(err))
		return apperrors.NewUnauthorized("invalid token")
	}

	if g.revocations != nil {
		revoked, err := g.revocations.IsRevoked(c.UserContext(), claims.TokenKey())
		if err != nil {
			g.logger.Error("revocation lookup failed", zap.Error(err))
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.NewUnauthorized("session has ended")
		}
	}

	session := domain.Session{
		ID:      claims.SessionKey(),
		TokenID: claims.TokenKey(),
		Subject: claims.Subject,
		Token:   raw,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	c.Locals(sessionKey, session)
	return c.Next()
}

// Revoke ends session so its token is refused from now on.
func (g *Gate) Revoke(c *fiber.Ctx, session domain.Session) error {
	if g.revocations == nil {
		return nil
	}
	return g.revocations.Revoke(c.UserContext(), session.TokenID, session.ExpiresAt)
}

// SessionFromContext retrieves the admitted session.
func SessionFromContext(c *fiber.Ctx) (domain.Session, bool) {
	session, ok := c.Locals(sessionKey).(domain.Session)
	return session, ok
}
