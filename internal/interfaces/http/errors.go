package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/pkg/logger"
)

// Mensajes visibles para el cliente; la app los muestra tal cual.
const (
	DetailInvalidCredentials = "Could not validate credentials"
	DetailForbidden          = "Not enough permissions"
	DetailEmailExists        = "Email already registered"
	DetailMobileExists       = "Mobile number already registered"
	DetailInvalidRole        = "Invalid role"
	DetailInvalidMobile      = "Invalid mobile number format"
	DetailTooManyAttempts    = "Too many login attempts"
	DetailInternal           = "Internal server error"
)

// apiError error ya traducido a respuesta HTTP.
type apiError struct {
	status int
	body   dto.ErrorResponse
}

func (e *apiError) Error() string { return e.body.Detail }

func newAPIError(status int, code, detail string) *apiError {
	return &apiError{status: status, body: dto.ErrorResponse{Detail: detail, Code: code}}
}

// toAPIError traduce errores de dominio a status + cuerpo. ok=false indica un error
// operacional (almacenamiento, etc.) que debe responder 500.
func toAPIError(err error) (*apiError, bool) {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae, true
	}
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		if authErr.Unauthenticated() {
			return newAPIError(fiber.StatusUnauthorized, "UNAUTHORIZED", DetailInvalidCredentials), true
		}
		return newAPIError(fiber.StatusForbidden, "FORBIDDEN", DetailForbidden), true
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return newAPIError(fe.Code, "HTTP", fe.Message), true
	}

	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return newAPIError(fiber.StatusBadRequest, "EMAIL_EXISTS", DetailEmailExists), true
	case errors.Is(err, domain.ErrMobileAlreadyExists):
		return newAPIError(fiber.StatusBadRequest, "MOBILE_EXISTS", DetailMobileExists), true
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		return newAPIError(fiber.StatusBadRequest, "DUPLICATE", "Email or mobile number already registered"), true
	case errors.Is(err, domain.ErrInvalidRole):
		return newAPIError(fiber.StatusBadRequest, "INVALID_ROLE", DetailInvalidRole), true
	case errors.Is(err, domain.ErrInvalidMobile):
		return newAPIError(fiber.StatusBadRequest, "INVALID_MOBILE", DetailInvalidMobile), true
	case errors.Is(err, domain.ErrSelfDeactivation):
		return newAPIError(fiber.StatusBadRequest, "SELF_DEACTIVATION", "You cannot deactivate your own account"), true
	case errors.Is(err, domain.ErrInvalidInput):
		return newAPIError(fiber.StatusBadRequest, "VALIDATION", "Invalid request"), true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return newAPIError(fiber.StatusUnauthorized, "UNAUTHORIZED", DetailInvalidCredentials), true
	case errors.Is(err, domain.ErrForbidden):
		return newAPIError(fiber.StatusForbidden, "FORBIDDEN", DetailForbidden), true
	case errors.Is(err, domain.ErrNotFound):
		return newAPIError(fiber.StatusNotFound, "NOT_FOUND", "Not found"), true
	case errors.Is(err, domain.ErrConflict):
		return newAPIError(fiber.StatusConflict, "CONFLICT", "Conflict with current state"), true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return newAPIError(fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", DetailTooManyAttempts), true
	}
	return newAPIError(fiber.StatusInternalServerError, "INTERNAL", DetailInternal), false
}

// ErrorHandler handler de errores de la app: un único formato {detail, code}.
// Los errores no traducibles se registran y se responden como 500 genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ae, known := toAPIError(err)
		if !known {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		}
		if ae.status == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return c.Status(ae.status).JSON(ae.body)
	}
}
