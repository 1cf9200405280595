package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appanalytics "github.com/jhoicas/b2b-portal-api/internal/application/analytics"
	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
	"github.com/jhoicas/b2b-portal-api/internal/application/usecase"
	"github.com/jhoicas/b2b-portal-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/b2b-portal-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/b2b-portal-api/pkg/jwt"
	"github.com/jhoicas/b2b-portal-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests-0001"
	testIssuer    = "b2b-portal-test"
	testPassword  = "secret1"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

// testEnv app completa sobre SQLite en memoria, con reloj controlable para los tokens.
type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	clock *fakeClock
	authn *auth.Authenticator
	seed  *sqlite.Seeder
	log   *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryDSN(uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	clock := &fakeClock{t: time.Now().UTC().Truncate(time.Second)}
	tokens, err := pkgjwt.NewService([]string{testJWTSecret}, testIssuer, pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)

	log := logger.Nop()
	users := sqlite.NewUserRepository(db)
	creds := auth.NewCredentialStore(users, auth.WithBcryptCost(bcrypt.MinCost))
	authn := auth.NewAuthenticator(tokens, users)

	app := apphttp.NewApp("b2b-portal-test", log)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(creds, sqlite.NewCompanyRepository(db), tokens),
		Authenticator: authn,
		DashboardUC:   appanalytics.NewDashboardUseCase(sqlite.NewStatsRepository(db)),
		UserUC:        usecase.NewUserUseCase(users),
		OrderUC:       usecase.NewOrderUseCase(sqlite.NewOrderRepository(db)),
		Log:           log,
	})
	return &testEnv{app: app, db: db, clock: clock, authn: authn, seed: sqlite.NewSeeder(db), log: log}
}

// do lanza la petición y devuelve la respuesta con el cuerpo ya leído.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	return doApp(t, e.app, method, path, token, body)
}

func doApp(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func registerBody(email, mobile, role, company string) map[string]any {
	b := map[string]any{
		"email":    email,
		"mobile":   mobile,
		"password": testPassword,
		"name":     email,
		"role":     role,
	}
	if company != "" {
		b["company_name"] = company
	}
	return b
}

func (e *testEnv) register(t *testing.T, email, mobile, role, company string) dto.TokenResponse {
	t.Helper()
	resp, raw := e.do(t, http.MethodPost, "/api/auth/register", "", registerBody(email, mobile, role, company))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	return decode[dto.TokenResponse](t, raw)
}
