package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidRole         = errors.New("rol inválido")
	ErrInvalidMobile       = errors.New("formato de móvil inválido")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrDuplicateIdentifier = errors.New("identificador de login ya registrado")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrTooManyAttempts     = errors.New("demasiados intentos de login")
)

// Variantes de ErrDuplicateIdentifier: errors.Is(err, ErrDuplicateIdentifier) es true para ambas.
var (
	ErrEmailAlreadyExists  = fmt.Errorf("%w: email", ErrDuplicateIdentifier)
	ErrMobileAlreadyExists = fmt.Errorf("%w: móvil", ErrDuplicateIdentifier)
)

// ErrSelfDeactivation un administrador intentó desactivar su propia cuenta.
var ErrSelfDeactivation = fmt.Errorf("%w: un usuario no puede desactivarse a sí mismo", ErrInvalidInput)

// AuthErrorKind clasifica internamente los rechazos del guard. Hacia el cliente
// todos salvo Forbidden se presentan como el mismo 401.
type AuthErrorKind string

const (
	AuthMissingCredential AuthErrorKind = "missing_credential"
	AuthInvalidSignature  AuthErrorKind = "invalid_signature"
	AuthExpired           AuthErrorKind = "expired"
	AuthMalformed         AuthErrorKind = "malformed"
	AuthRevokedOrInactive AuthErrorKind = "revoked_or_inactive"
	AuthForbidden         AuthErrorKind = "forbidden"
)

// AuthError rechazo de autenticación/autorización con su causa.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

// NewAuthError construye un AuthError.
func NewAuthError(kind AuthErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + string(e.Kind)
	}
	return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Unauthenticated indica si el rechazo es de autenticación (401) y no de permisos (403).
func (e *AuthError) Unauthenticated() bool { return e.Kind != AuthForbidden }

// AuthErrorKindOf extrae el tipo de un error de auth; "" si no lo es.
func AuthErrorKindOf(err error) AuthErrorKind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}
