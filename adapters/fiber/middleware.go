package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/okarin-dev/gatekit/core"
)

const localsAccountKey = "gatekit_account"

// RequireSession validates the bearer token and stores the resolved account
// in the request locals for downstream handlers.
func (a *Adapter) RequireSession(c fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return unauthorized(c, core.ErrUnauthenticated)
	}

	account, err := a.engine.VerifySession(c.Context(), token)
	if err != nil {
		return handleAuthError(c, err)
	}

	c.Locals(localsAccountKey, account)
	return c.Next()
}

// AccountFromContext returns the account stored by RequireSession, or nil
// when the request did not pass through the middleware.
func AccountFromContext(c fiber.Ctx) *core.Account {
	account, _ := c.Locals(localsAccountKey).(*core.Account)
	return account
}

// extractToken reads the auth token from the request. Checks the
// Authorization header (Bearer token) first, then falls back to cookie.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies("auth_token")
}
