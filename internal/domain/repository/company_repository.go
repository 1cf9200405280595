package repository

import (
	"context"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe una empresa con el mismo NameKey.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Company, error)
}
