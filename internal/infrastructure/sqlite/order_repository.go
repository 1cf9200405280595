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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository con gorm.
type OrderRepo struct {
	db *gorm.DB
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persiste un pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	m := &orderModel{
		ID:        o.ID,
		CompanyID: o.CompanyID,
		CreatedBy: o.CreatedBy,
		Reference: o.Reference,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido de la empresa.
func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).Where("id = ? AND company_id = ?", id, companyID).Take(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return m.toEntity(), nil
}

// UpdateStatus compare-and-set sobre el estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, companyID, id string, from, to entity.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&orderModel{}).
		Where("id = ? AND company_id = ? AND status = ?", id, companyID, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}
