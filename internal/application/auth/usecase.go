package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/b2b-portal-api/internal/application/dto"
	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
	"github.com/jhoicas/b2b-portal-api/pkg/jwt"
)

// TokenType valor fijo de token_type en las respuestas.
const TokenType = "bearer"

// DefaultCompanyName empresa asignada cuando el registro no trae company_name.
const DefaultCompanyName = "Default Company"

// TokenIssuer firma tokens de sesión (pkg/jwt.Service).
type TokenIssuer interface {
	Issue(sub jwt.Subject) (string, time.Time, error)
}

// AttemptLimiter limita intentos fallidos de login por identificador.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	creds          *CredentialStore
	companyRepo    repository.CompanyRepository
	tokens         TokenIssuer
	limiter        AttemptLimiter
	defaultCompany string
	now            func() time.Time
}

// Option configura el AuthUseCase.
type Option func(*AuthUseCase)

// WithLimiter activa el límite de intentos de login.
func WithLimiter(l AttemptLimiter) Option {
	return func(uc *AuthUseCase) { uc.limiter = l }
}

// WithDefaultCompany cambia el nombre de empresa por defecto.
func WithDefaultCompany(name string) Option {
	return func(uc *AuthUseCase) {
		if strings.TrimSpace(name) != "" {
			uc.defaultCompany = name
		}
	}
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds *CredentialStore, companyRepo repository.CompanyRepository, tokens TokenIssuer, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{
		creds:          creds,
		companyRepo:    companyRepo,
		tokens:         tokens,
		defaultCompany: DefaultCompanyName,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Register crea el usuario (y su empresa si el nombre es nuevo) y devuelve un token.
// Errores: domain.ErrInvalidRole, domain.ErrInvalidMobile, domain.ErrEmailAlreadyExists,
// domain.ErrMobileAlreadyExists.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	mobile, err := entity.NormalizeMobile(in.Mobile)
	if err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)

	// antes de crear la empresa, para no dejarla huérfana en un duplicado
	if err := uc.creds.EnsureAvailable(ctx, email, mobile); err != nil {
		return nil, err
	}
	company, err := uc.resolveCompany(ctx, in.CompanyName)
	if err != nil {
		return nil, err
	}
	user, err := uc.creds.Create(ctx, Registration{
		Email:     email,
		Mobile:    mobile,
		Password:  in.Password,
		Name:      strings.TrimSpace(in.Name),
		Role:      role,
		CompanyID: company.ID,
	})
	if err != nil {
		return nil, err
	}
	return uc.tokenResponse(user, company)
}

// Login verifica identificador y password. Usuario inexistente, password incorrecto
// y cuenta inactiva devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	key := entity.NormalizeLoginIdentifier(in.Login)
	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("login: limitador: %w", err)
		}
		if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := uc.creds.FindByLoginIdentifier(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if !uc.creds.VerifyPassword(user, in.Password) || !user.IsActive {
		if uc.limiter != nil {
			if err := uc.limiter.RecordFailure(ctx, key); err != nil {
				return nil, fmt.Errorf("login: limitador: %w", err)
			}
		}
		return nil, domain.ErrInvalidCredentials
	}
	if uc.limiter != nil {
		if err := uc.limiter.Reset(ctx, key); err != nil {
			return nil, fmt.Errorf("login: limitador: %w", err)
		}
	}

	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	return uc.tokenResponse(user, company)
}

// Profile perfil del usuario autenticado con el nombre de su empresa.
func (uc *AuthUseCase) Profile(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user, company), nil
}

// resolveCompany reutiliza la empresa cuyo nombre coincide sin distinguir mayúsculas
// ni espacios repetidos; si no existe la crea.
func (uc *AuthUseCase) resolveCompany(ctx context.Context, name string) (*entity.Company, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = uc.defaultCompany
	}
	key := entity.NormalizeCompanyName(name)

	company, err := uc.companyRepo.GetByNameKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}
	company = &entity.Company{
		ID:        uuid.NewString(),
		Name:      name,
		NameKey:   key,
		CreatedAt: uc.now().UTC(),
	}
	err = uc.companyRepo.Create(ctx, company)
	if errors.Is(err, domain.ErrDuplicate) {
		// otro registro concurrente la creó primero
		existing, getErr := uc.companyRepo.GetByNameKey(ctx, key)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, fmt.Errorf("empresa %q: duplicada pero no encontrada: %w", name, err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (uc *AuthUseCase) tokenResponse(user *entity.User, company *entity.Company) (*dto.TokenResponse, error) {
	token, _, err := uc.tokens.Issue(jwt.Subject{
		UserID:   user.ID,
		TenantID: user.CompanyID,
		Role:     user.Role.String(),
	})
	if err != nil {
		return nil, err
	}
	summary := dto.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Name:      user.Name,
		Role:      user.Role.String(),
		CompanyID: user.CompanyID,
	}
	if company != nil {
		summary.CompanyName = company.Name
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: TokenType, User: summary}, nil
}

// ToUserResponse proyecta el usuario sin el hash de password. company puede ser nil.
func ToUserResponse(u *entity.User, company *entity.Company) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Name:      u.Name,
		Role:      u.Role.String(),
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
	}
	if company != nil {
		out.CompanyName = company.Name
	}
	return out
}
