package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/rbac"
	"github.com/jhoicas/b2b-portal-api/pkg/jwt"
)

func registered(t *testing.T, f *fixture, role string) (token, userID string) {
	t.Helper()
	out, err := f.uc.Register(context.Background(), registerReq("u@x.com", "5551234567", role, "Acme"))
	require.NoError(t, err)
	return out.AccessToken, out.User.ID
}

func TestAuthenticate_TokenValido(t *testing.T) {
	f := newFixture(t)
	token, id := registered(t, f, "Sales")

	p, err := f.authn.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, id, p.User.ID)
	assert.Equal(t, entity.RoleSales, p.Role)
	assert.Equal(t, p.User.CompanyID, p.TenantID)
}

func TestAuthenticate_Rechazos(t *testing.T) {
	f := newFixture(t)
	token, _ := registered(t, f, "Admin")

	cases := []struct {
		name  string
		token string
		kind  domain.AuthErrorKind
	}{
		{"sin token", "", domain.AuthMissingCredential},
		{"basura", "no.es.jwt", domain.AuthMalformed},
		{"firma alterada", token[:len(token)-2] + flip(token[len(token)-2]) + token[len(token)-1:], domain.AuthInvalidSignature},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.authn.Authenticate(context.Background(), tc.token)
			require.Error(t, err)
			assert.Equal(t, tc.kind, domain.AuthErrorKindOf(err))
		})
	}
}

func flip(c byte) string {
	if c == 'A' {
		return "B"
	}
	return "A"
}

func TestAuthenticate_Expirado(t *testing.T) {
	f := newFixture(t)
	token, _ := registered(t, f, "Buyer")

	f.clock.t = f.clock.t.Add(jwt.TokenLifetime)
	_, err := f.authn.Authenticate(context.Background(), token)
	assert.Equal(t, domain.AuthExpired, domain.AuthErrorKindOf(err))
}

func TestAuthenticate_UsuarioDesactivado(t *testing.T) {
	f := newFixture(t)
	token, id := registered(t, f, "Buyer")

	f.users.update(id, func(u *entity.User) { u.IsActive = false })
	_, err := f.authn.Authenticate(context.Background(), token)
	assert.Equal(t, domain.AuthRevokedOrInactive, domain.AuthErrorKindOf(err))
}

func TestAuthenticate_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	token, _, err := f.tokens.Issue(jwt.Subject{UserID: "no-existe", TenantID: "t1", Role: "Admin"})
	require.NoError(t, err)

	_, err = f.authn.Authenticate(context.Background(), token)
	assert.Equal(t, domain.AuthRevokedOrInactive, domain.AuthErrorKindOf(err))
}

func TestAuthenticate_CambioDeRolInvalidaToken(t *testing.T) {
	f := newFixture(t)
	token, id := registered(t, f, "Admin")

	f.users.update(id, func(u *entity.User) { u.Role = entity.RoleBuyer })
	_, err := f.authn.Authenticate(context.Background(), token)
	assert.Equal(t, domain.AuthRevokedOrInactive, domain.AuthErrorKindOf(err))
}

func TestAuthenticate_RolDesconocidoEnToken(t *testing.T) {
	f := newFixture(t)
	_, id := registered(t, f, "Admin")
	token, _, err := f.tokens.Issue(jwt.Subject{UserID: id, TenantID: "t1", Role: "Root"})
	require.NoError(t, err)

	_, err = f.authn.Authenticate(context.Background(), token)
	assert.Equal(t, domain.AuthMalformed, domain.AuthErrorKindOf(err))
}

func TestAuthenticate_ErrorDeAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	token, _ := registered(t, f, "Admin")
	f.users.fail = errStorage

	_, err := f.authn.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, errStorage)
	assert.Empty(t, domain.AuthErrorKindOf(err), "no se presenta como rechazo de auth")
}

func TestAuthenticate_ConsultaElUsuarioEnCadaPeticion(t *testing.T) {
	f := newFixture(t)
	token, _ := registered(t, f, "Admin")
	before := f.users.calls

	for i := 0; i < 3; i++ {
		f.clock.t = f.clock.t.Add(time.Minute)
		_, err := f.authn.Authenticate(context.Background(), token)
		require.NoError(t, err)
	}
	assert.Equal(t, before+3, f.users.calls)
}

func TestAuthorize(t *testing.T) {
	buyer := &auth.Principal{Role: entity.RoleBuyer}
	admin := &auth.Principal{Role: entity.RoleAdmin}

	assert.NoError(t, auth.Authorize(admin, rbac.ListUsers))
	assert.NoError(t, auth.Authorize(buyer, rbac.ViewDashboard))

	err := auth.Authorize(buyer, rbac.ListUsers)
	assert.Equal(t, domain.AuthForbidden, domain.AuthErrorKindOf(err))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
