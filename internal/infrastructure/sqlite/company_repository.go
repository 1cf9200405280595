package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository con gorm.
type CompanyRepo struct {
	db *gorm.DB
}

// NewCompanyRepository construye el repositorio.
func NewCompanyRepository(db *gorm.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una empresa; domain.ErrDuplicate si el name_key ya existe.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	m := &companyModel{ID: c.ID, Name: c.Name, NameKey: c.NameKey, CreatedAt: c.CreatedAt}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.take(ctx, "id = ?", id)
}

// GetByNameKey obtiene una empresa por nombre normalizado.
func (r *CompanyRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Company, error) {
	return r.take(ctx, "name_key = ?", nameKey)
}

func (r *CompanyRepo) take(ctx context.Context, cond string, arg any) (*entity.Company, error) {
	var m companyModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return m.toEntity(), nil
}
