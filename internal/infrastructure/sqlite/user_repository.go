package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository con gorm.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(newUserModel(user)).Error; err != nil {
		if col, ok := uniqueViolation(err); ok {
			switch col {
			case "users.email":
				return domain.ErrEmailAlreadyExists
			case "users.mobile":
				return domain.ErrMobileAlreadyExists
			}
			return fmt.Errorf("%w: %s", domain.ErrDuplicateIdentifier, col)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.take(ctx, "id = ?", id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.take(ctx, "email = ?", email)
}

// GetByMobile obtiene un usuario por móvil.
func (r *UserRepo) GetByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	return r.take(ctx, "mobile = ?", mobile)
}

// ListByCompany lista usuarios de la empresa por fecha de alta.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at, id").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list := make([]*entity.User, 0, len(rows))
	for _, m := range rows {
		list = append(list, m.toEntity())
	}
	return list, nil
}

// SetActive activa o desactiva un usuario de la empresa.
func (r *UserRepo) SetActive(ctx context.Context, companyID, userID string, active bool) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND company_id = ?", userID, companyID).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("set user active: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) take(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return m.toEntity(), nil
}
