package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

// Registration datos ya validados para crear un usuario.
type Registration struct {
	Email     string
	Mobile    string
	Password  string
	Name      string
	Role      entity.Role
	CompanyID string
}

// CredentialStore persiste usuarios con password hasheado y los busca por email o móvil.
type CredentialStore struct {
	users     repository.UserRepository
	cost      int
	dummyHash []byte
	now       func() time.Time
}

// CredentialOption configura el CredentialStore.
type CredentialOption func(*CredentialStore)

// WithBcryptCost cambia el coste de bcrypt (bcrypt.MinCost en tests).
func WithBcryptCost(cost int) CredentialOption {
	return func(s *CredentialStore) { s.cost = cost }
}

// NewCredentialStore construye el store sobre el repositorio de usuarios.
func NewCredentialStore(users repository.UserRepository, opts ...CredentialOption) *CredentialStore {
	s := &CredentialStore{users: users, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	// hash de relleno para igualar tiempos cuando el usuario no existe
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	return s
}

// FindByLoginIdentifier busca por email si el identificador tiene forma de email, si no por móvil.
// (nil, nil) si no hay coincidencia.
func (s *CredentialStore) FindByLoginIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	if entity.LooksLikeEmail(identifier) {
		return s.users.GetByEmail(ctx, entity.NormalizeEmail(identifier))
	}
	mobile, err := entity.NormalizeMobile(identifier)
	if err != nil {
		// un móvil con formato imposible no puede estar registrado
		return nil, nil
	}
	return s.users.GetByMobile(ctx, mobile)
}

// EnsureAvailable comprueba que ni el email ni el móvil estén registrados.
func (s *CredentialStore) EnsureAvailable(ctx context.Context, email, mobile string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	existing, err = s.users.GetByMobile(ctx, mobile)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrMobileAlreadyExists
	}
	return nil
}

// Create hashea el password y persiste el usuario activo.
// Email y móvil deben venir normalizados. Devuelve un error que envuelve
// domain.ErrDuplicateIdentifier si alguno ya existe.
func (s *CredentialStore) Create(ctx context.Context, reg Registration) (*entity.User, error) {
	if err := s.EnsureAvailable(ctx, reg.Email, reg.Mobile); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password demasiado largo", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("hash de password: %w", err)
	}
	now := s.now().UTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    reg.CompanyID,
		Email:        reg.Email,
		Mobile:       reg.Mobile,
		PasswordHash: string(hash),
		Name:         reg.Name,
		Role:         reg.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// el índice único decide si otra petición ganó la carrera
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPassword compara en tiempo constante. Con user nil compara contra un hash
// de relleno y devuelve false, para que un usuario inexistente cueste lo mismo.
func (s *CredentialStore) VerifyPassword(user *entity.User, candidate string) bool {
	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	ok := bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
	return ok && user != nil
}
