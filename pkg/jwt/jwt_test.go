package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/b2b-portal-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests-0001"
	testOldSecret = "test-secret-key-for-unit-tests-0000"
	testIssuer    = "b2b-portal-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
)

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newService(t *testing.T, clock *fakeClock, secrets ...string) *pkgjwt.Service {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{testSecret}
	}
	svc, err := pkgjwt.NewService(secrets, testIssuer, pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func issue(t *testing.T, svc *pkgjwt.Service) string {
	t.Helper()
	tok, _, err := svc.Issue(pkgjwt.Subject{UserID: testUserID, TenantID: testTenantID, Role: "Admin"})
	require.NoError(t, err)
	return tok
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newService(t, clock)

	tok, exp, err := svc.Issue(pkgjwt.Subject{UserID: testUserID, TenantID: testTenantID, Role: "Sales"})
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour), exp)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, testTenantID, claims.TenantID)
	assert.Equal(t, "Sales", claims.Role)
	assert.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_LimiteDeSieteDias(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{"seis días aceptado", 6 * 24 * time.Hour, nil},
		{"un segundo antes del límite aceptado", 7*24*time.Hour - time.Second, nil},
		{"exactamente siete días rechazado", 7 * 24 * time.Hour, pkgjwt.ErrExpired},
		{"ocho días rechazado", 8 * 24 * time.Hour, pkgjwt.ErrExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := &fakeClock{t: issuedAt}
			svc := newService(t, clock)
			tok := issue(t, svc)

			clock.t = issuedAt.Add(tc.elapsed)
			_, err := svc.Verify(tok)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestVerify_FirmaAlterada(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newService(t, clock)
	tok := issue(t, svc)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := parts[2]

	// Cada posición, incluida la última (lleva bits de relleno), con cada carácter alternativo.
	for i := range sig {
		for _, c := range base64URLAlphabet {
			if byte(c) == sig[i] {
				continue
			}
			tampered := parts[0] + "." + parts[1] + "." + sig[:i] + string(c) + sig[i+1:]
			_, err := svc.Verify(tampered)
			if !assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature, "posición %d: %q -> %q", i, sig[i], c) {
				return
			}
		}
	}
}

func TestVerify_FirmaConCaracterExtra(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newService(t, clock)
	tok := issue(t, svc)

	// Un byte extra en la firma (carácter añadido) tampoco es un token mal formado.
	_, err := svc.Verify(tok + "A")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature)
	assert.NotErrorIs(t, err, pkgjwt.ErrMalformed)
}

func TestVerify_FirmaAlteradaYExpirado_PrevaleceFirma(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newService(t, clock)
	tok := issue(t, svc)
	clock.t = issuedAt.Add(30 * 24 * time.Hour)

	_, err := newService(t, clock, "otra-clave-completamente-distinta-0001").Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature)
	assert.NotErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestVerify_MalFormado(t *testing.T) {
	svc := newService(t, &fakeClock{t: issuedAt})

	for _, raw := range []string{"", "token.invalido.aqui", "solo-una-parte", "a.b"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, pkgjwt.ErrMalformed, "token %q", raw)
	}
}

func TestVerify_AlgoritmoNoneRechazado(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		Role:     "Admin",
		TenantID: testTenantID,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(t, &fakeClock{t: issuedAt}).Verify(tok)
	assert.Error(t, err)
}

func TestVerify_ClaimsIncompletos(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newService(t, clock)

	tok, _, err := svc.Issue(pkgjwt.Subject{UserID: testUserID, TenantID: "", Role: "Admin"})
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrMalformed)
}

func TestRotacion_FirmaConLaMasNuevaYVerificaLasAnteriores(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	oldSvc := newService(t, clock, testOldSecret)
	oldTok := issue(t, oldSvc)

	rotated := newService(t, clock, testSecret, testOldSecret)
	claims, err := rotated.Verify(oldTok)
	require.NoError(t, err, "un token firmado con la clave anterior sigue siendo válido")
	assert.Equal(t, testUserID, claims.Subject)

	newTok := issue(t, rotated)
	_, err = oldSvc.Verify(newTok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature, "los tokens nuevos se firman con la clave más nueva")

	retired := newService(t, clock, testSecret)
	_, err = retired.Verify(oldTok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature, "al retirar la clave anterior sus tokens dejan de valer")
}

func TestVerify_EmisorDistinto(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	other, err := pkgjwt.NewService([]string{testSecret}, "otro-emisor", pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	tok := issue(t, other)

	_, err = newService(t, clock).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrMalformed)
}

func TestNewService_SinClaves(t *testing.T) {
	_, err := pkgjwt.NewService(nil, testIssuer)
	assert.ErrorIs(t, err, pkgjwt.ErrNoSigningKey)

	_, err = pkgjwt.NewService([]string{testSecret, ""}, testIssuer)
	assert.ErrorIs(t, err, pkgjwt.ErrNoSigningKey)
}
