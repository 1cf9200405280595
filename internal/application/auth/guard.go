package auth

import (
	"context"
	"errors"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/rbac"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
	"github.com/jhoicas/b2b-portal-api/pkg/jwt"
)

// TokenVerifier verifica tokens de sesión (pkg/jwt.Service).
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Principal identidad resuelta de una petición autenticada.
type Principal struct {
	User     *entity.User
	Role     entity.Role
	TenantID string
}

// Authenticator resuelve la identidad de un bearer token contra el almacén de usuarios.
// No guarda estado entre peticiones.
type Authenticator struct {
	tokens TokenVerifier
	users  repository.UserRepository
}

// NewAuthenticator construye el authenticator.
func NewAuthenticator(tokens TokenVerifier, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate verifica el token y resuelve el usuario. Los rechazos son *domain.AuthError;
// cualquier otro error es de almacenamiento y debe tratarse como 500.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, domain.NewAuthError(domain.AuthMissingCredential, nil)
	}
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, domain.NewAuthError(verifyErrorKind(err), err)
	}
	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthMalformed, err)
	}

	user, err := a.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.NewAuthError(domain.AuthRevokedOrInactive, domain.ErrInvalidCredentials)
	}
	// un token emitido antes de un cambio de rol o de empresa ya no representa al usuario
	if user.Role != role || user.CompanyID != claims.TenantID {
		return nil, domain.NewAuthError(domain.AuthRevokedOrInactive, domain.ErrInvalidCredentials)
	}
	return &Principal{User: user, Role: user.Role, TenantID: user.CompanyID}, nil
}

// Authorize aplica la tabla de permisos al principal.
func Authorize(p *Principal, action rbac.Action) error {
	if p == nil {
		return domain.NewAuthError(domain.AuthMissingCredential, nil)
	}
	if !rbac.Allowed(p.Role, action) {
		return domain.NewAuthError(domain.AuthForbidden, domain.ErrForbidden)
	}
	return nil
}

func verifyErrorKind(err error) domain.AuthErrorKind {
	switch {
	case errors.Is(err, jwt.ErrInvalidSignature):
		return domain.AuthInvalidSignature
	case errors.Is(err, jwt.ErrExpired):
		return domain.AuthExpired
	default:
		return domain.AuthMalformed
	}
}
