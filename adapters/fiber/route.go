// Package fiber exposes the authentication engine over HTTP with gofiber.
// The adapter is a thin shell: every decision lives in the core engine, the
// handlers only bind JSON and map typed errors to status codes.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/okarin-dev/gatekit/core"
)

type Adapter struct {
	engine *core.Engine
}

func New(engine *core.Engine) *Adapter {
	return &Adapter{engine: engine}
}

// RegisterRoutes mounts the auth surface under basePath.
func (a *Adapter) RegisterRoutes(app *fiber.App, basePath string) {
	api := app.Group(basePath)

	// Public routes
	api.Post("/register", a.register)
	api.Post("/login", a.login)
	api.Post("/social", a.social)
	api.Post("/otp/send", a.sendOTP)
	api.Post("/otp/verify", a.verifyOTP)
	api.Post("/magic-link", a.sendMagicLink)
	api.Get("/verify-magic", a.verifyMagicLink)
	api.Post("/biometric", a.biometric)

	// Protected routes; handlers run in registration order in fiber v3,
	// so the middleware must precede the final handler.
	api.Get("/session", a.RequireSession, a.session)
	api.Get("/profile", a.RequireSession, a.profile)
	api.Put("/profile", a.RequireSession, a.updateProfile)
}
