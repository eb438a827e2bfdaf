package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/finderapp/finder-service/internal/domain"
)

const claimsKey = "auth_claims"

// SessionGate decides per request whether to pass through, redirect to
// login, or bounce an authorization failure back to home. Evaluation order
// matters: authenticated users must be redirected off auth pages before the
// public pass-through would let them in, and the role check only runs on a
// token that already verified.
type SessionGate struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewSessionGate constructs the request middleware.
func NewSessionGate(tokens *TokenManager, logger *zap.Logger) *SessionGate {
	return &SessionGate{tokens: tokens, logger: logger}
}

// Handle is the fiber middleware entry point.
func (g *SessionGate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	token := ResolveToken(c.Cookies(SessionCookieName), c.Get(fiber.HeaderAuthorization))

	// Already-authenticated users have no business on login/register pages.
	if token != "" && IsAuthPage(path) {
		if _, err := g.tokens.Parse(token); err == nil {
			return c.Redirect("/", fiber.StatusFound)
		}
		// Invalid token: the page stays reachable, stale cookie handled below.
	}

	if IsPublic(path) {
		return c.Next()
	}

	if token == "" {
		if IsAuthPage(path) {
			return c.Next()
		}
		return g.redirectToLogin(c)
	}

	claims, err := g.tokens.Parse(token)
	if err != nil {
		g.logger.Debug("session token rejected", zap.String("path", path), zap.Error(err))
		ClearSessionCookie(c)
		return g.redirectToLogin(c)
	}

	if IsAuthorityPath(path) && claims.Role != domain.RoleAuthority {
		return c.Redirect("/", fiber.StatusFound)
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// redirectToLogin sends the client to the login page, carrying the original
// path so it can return there after logging in. The root path omits the
// parameter.
func (g *SessionGate) redirectToLogin(c *fiber.Ctx) error {
	target := "/login"
	if path := c.Path(); path != "/" {
		target += "?redirect=" + url.QueryEscape(path)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// ClaimsFromContext retrieves the verified session claims stored by the gate.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
