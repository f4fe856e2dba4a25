package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/okarin-dev/gatekit/core"
)

func (a *Adapter) register(c fiber.Ctx) error {
	var input core.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return badRequest(c)
	}

	result, err := a.engine.Register(c.Context(), input)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(result)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var creds core.PasswordCredentials
	if err := c.Bind().Body(&creds); err != nil {
		return badRequest(c)
	}

	result, err := a.engine.Login(c.Context(), creds)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) social(c fiber.Ctx) error {
	var creds core.SocialCredentials
	if err := c.Bind().Body(&creds); err != nil {
		return badRequest(c)
	}

	result, err := a.engine.Login(c.Context(), creds)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) biometric(c fiber.Ctx) error {
	var creds core.BiometricCredentials
	if err := c.Bind().Body(&creds); err != nil {
		return badRequest(c)
	}

	result, err := a.engine.Login(c.Context(), creds)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) sendOTP(c fiber.Ctx) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return badRequest(c)
	}

	receipt, err := a.engine.RequestChallenge(c.Context(), core.StrategyOTP, body.Phone)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(receipt)
}

func (a *Adapter) verifyOTP(c fiber.Ctx) error {
	var creds core.OTPCredentials
	if err := c.Bind().Body(&creds); err != nil {
		return badRequest(c)
	}

	result, err := a.engine.ConfirmChallenge(c.Context(), creds)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) sendMagicLink(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return badRequest(c)
	}

	receipt, err := a.engine.RequestChallenge(c.Context(), core.StrategyMagic, body.Email)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(receipt)
}

func (a *Adapter) verifyMagicLink(c fiber.Ctx) error {
	token := c.Query("token")

	result, err := a.engine.ConfirmChallenge(c.Context(), core.MagicLinkCredentials{Token: token})
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) session(c fiber.Ctx) error {
	account := AccountFromContext(c)
	if account == nil {
		return unauthorized(c, core.ErrUnauthenticated)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account": account})
}

func (a *Adapter) profile(c fiber.Ctx) error {
	account := AccountFromContext(c)
	if account == nil {
		return unauthorized(c, core.ErrUnauthenticated)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"profile": account.Profile})
}

func (a *Adapter) updateProfile(c fiber.Ctx) error {
	account := AccountFromContext(c)
	if account == nil {
		return unauthorized(c, core.ErrUnauthenticated)
	}

	var incoming core.Profile
	if err := c.Bind().Body(&incoming); err != nil {
		return badRequest(c)
	}

	updated, err := a.engine.UpdateProfile(c.Context(), account.ID, incoming)
	if err != nil {
		return handleAuthError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"account": updated})
}

func badRequest(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body",
	})
}

func unauthorized(c fiber.Ctx, err error) error {
	return c.Status(http.StatusUnauthorized).JSON(errorBody(err))
}

// handleAuthError maps core errors to HTTP responses. The body carries the
// stable machine code alongside the human message.
func handleAuthError(c fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(errorBody(err))
}

func errorBody(err error) fiber.Map {
	var authErr *core.AuthError
	if errors.As(err, &authErr) {
		return fiber.Map{"error": authErr.Message, "code": authErr.Code}
	}
	return fiber.Map{"error": err.Error()}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrChallengeInvalid),
		errors.Is(err, core.ErrChallengeExpired),
		errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrTokenExpired):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPhoneRequired),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrNameRequired),
		errors.Is(err, core.ErrProviderRequired),
		errors.Is(err, core.ErrInvalidProvider),
		errors.Is(err, core.ErrAssertionRequired),
		errors.Is(err, core.ErrCodeFormat),
		errors.Is(err, core.ErrUnknownStrategy):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrDuplicateIdentity):
		return http.StatusConflict

	case errors.Is(err, core.ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrDeliveryFailed):
		return http.StatusBadGateway

	case errors.Is(err, core.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, core.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
