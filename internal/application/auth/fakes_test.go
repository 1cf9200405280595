package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests-0001"

var errStorage = errors.New("conexión perdida")

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	fail  error
	calls int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if e.Mobile == u.Mobile {
			return domain.ErrMobileAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memUsers) GetByMobile(_ context.Context, mobile string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Mobile == mobile })
}

func (m *memUsers) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, errors.New("no usado")
}

func (m *memUsers) SetActive(_ context.Context, companyID, userID string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (m *memUsers) update(id string, fn func(*entity.User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.byID[id])
}

type memCompanies struct {
	mu    sync.Mutex
	byKey map[string]*entity.Company
}

func newMemCompanies() *memCompanies { return &memCompanies{byKey: map[string]*entity.Company{}} }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[c.NameKey]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	m.byKey[c.NameKey] = &cp
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byKey {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCompanies) GetByNameKey(_ context.Context, key string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byKey[key]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

type fakeLimiter struct {
	max      int
	failures map[string]int
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.failures[key] < l.max, nil
}

func (l *fakeLimiter) RecordFailure(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}

func (l *fakeLimiter) Reset(_ context.Context, key string) error {
	delete(l.failures, key)
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type fixture struct {
	users     *memUsers
	companies *memCompanies
	clock     *fakeClock
	tokens    *jwt.Service
	creds     *auth.CredentialStore
	uc        *auth.AuthUseCase
	authn     *auth.Authenticator
}

func newFixture(t *testing.T, opts ...auth.Option) *fixture {
	t.Helper()
	f := &fixture{
		users:     newMemUsers(),
		companies: newMemCompanies(),
		clock:     &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	svc, err := jwt.NewService([]string{testSecret}, "b2b-portal-test", jwt.WithClock(f.clock.Now))
	require.NoError(t, err)
	f.tokens = svc
	f.creds = auth.NewCredentialStore(f.users, auth.WithBcryptCost(bcrypt.MinCost))
	f.uc = auth.NewAuthUseCase(f.creds, f.companies, svc, opts...)
	f.authn = auth.NewAuthenticator(svc, f.users)
	return f
}
