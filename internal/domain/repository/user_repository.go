package repository

import (
	"context"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) si no hay coincidencia.
type UserRepository interface {
	// Create persiste el usuario. Devuelve domain.ErrEmailAlreadyExists o
	// domain.ErrMobileAlreadyExists si el índice único correspondiente ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	// SetActive activa o desactiva un usuario de la empresa. domain.ErrNotFound si no existe en ella.
	SetActive(ctx context.Context, companyID, userID string, active bool) error
}
