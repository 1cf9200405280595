package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
)

// Identity datos del usuario persistidos junto al token.
type Identity = dto.UserSummary

// Session estado de sesión del dispositivo. El almacenamiento es la fuente de
// verdad: la memoria solo cambia después de persistir.
type Session struct {
	mu    sync.RWMutex
	store SecureStore
	api   *APIClient
	token string
	user  *Identity
}

// New construye la sesión sin estado; llamar a Restore al arrancar.
func New(store SecureStore, api *APIClient) *Session {
	return &Session{store: store, api: api}
}

// Restore adopta token e identidad persistidos sin contactar al servidor.
// Si falta cualquiera de los dos no hay sesión.
func (s *Session) Restore() (bool, error) {
	token, okToken, err := s.store.Get(KeyAccessToken)
	if err != nil {
		return false, err
	}
	rawUser, okUser, err := s.store.Get(KeyUserIdentity)
	if err != nil {
		return false, err
	}
	if !okToken || !okUser || token == "" {
		return false, nil
	}
	var user Identity
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return false, fmt.Errorf("%w: identidad ilegible", ErrCorruptStore)
	}

	s.mu.Lock()
	s.token, s.user = token, &user
	s.mu.Unlock()
	return true, nil
}

// Login autentica, persiste y solo entonces actualiza la memoria.
func (s *Session) Login(ctx context.Context, login, password string) (*Identity, error) {
	resp, err := s.api.Login(ctx, dto.LoginRequest{Login: login, Password: password})
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

// Register registra la cuenta y deja la sesión iniciada.
func (s *Session) Register(ctx context.Context, in dto.RegisterRequest) (*Identity, error) {
	resp, err := s.api.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

func (s *Session) adopt(resp *dto.TokenResponse) (*Identity, error) {
	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("session: serializar identidad: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SetAll(map[string]string{
		KeyAccessToken:  resp.AccessToken,
		KeyUserIdentity: string(rawUser),
	}); err != nil {
		return nil, fmt.Errorf("session: persistir sesión: %w", err)
	}
	user := resp.User
	s.token, s.user = resp.AccessToken, &user
	return &user, nil
}

// Logout borra ambas entradas y limpia la memoria. Idempotente.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteAll(KeyAccessToken, KeyUserIdentity); err != nil {
		return fmt.Errorf("session: borrar sesión: %w", err)
	}
	s.token, s.user = "", nil
	return nil
}

// Active indica si hay sesión en memoria.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// User identidad de la sesión activa; nil si no hay.
func (s *Session) User() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// bearer token a adjuntar; vacío si no hay sesión y la petición sale sin autenticar.
func (s *Session) bearer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Me perfil actual según el servidor.
func (s *Session) Me(ctx context.Context) (*dto.UserResponse, error) {
	return s.api.Me(ctx, s.bearer())
}

// Stats contadores del dashboard de la empresa.
func (s *Session) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	return s.api.Stats(ctx, s.bearer())
}

// Users usuarios de la empresa (solo Admin).
func (s *Session) Users(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	return s.api.Users(ctx, s.bearer(), page)
}
