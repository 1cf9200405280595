package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo conteos del dashboard con gorm. Todas las consultas filtran por company_id.
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepository construye el repositorio.
func NewStatsRepository(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// CountOrders cuenta pedidos, opcionalmente en los estados dados.
func (r *StatsRepo) CountOrders(ctx context.Context, companyID string, statuses ...entity.OrderStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&orderModel{}).Where("company_id = ?", companyID)
	if len(statuses) > 0 {
		list := make([]string, len(statuses))
		for i, s := range statuses {
			list[i] = string(s)
		}
		q = q.Where("status IN ?", list)
	}
	return count(q, "orders")
}

// CountProducts cuenta productos.
func (r *StatsRepo) CountProducts(ctx context.Context, companyID string) (int64, error) {
	return count(r.db.WithContext(ctx).Model(&productModel{}).Where("company_id = ?", companyID), "products")
}

// CountLowStockProducts cuenta productos con stock_quantity < reorder_threshold.
func (r *StatsRepo) CountLowStockProducts(ctx context.Context, companyID string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&productModel{}).
		Where("company_id = ? AND stock_quantity < reorder_threshold", companyID)
	return count(q, "low stock products")
}

// CountVendors cuenta proveedores.
func (r *StatsRepo) CountVendors(ctx context.Context, companyID string) (int64, error) {
	return count(r.db.WithContext(ctx).Model(&vendorModel{}).Where("company_id = ?", companyID), "vendors")
}

// CountPayments cuenta pagos en el estado dado.
func (r *StatsRepo) CountPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("company_id = ? AND status = ?", companyID, string(status))
	return count(q, "payments")
}

// SumPayments suma en Go los importes TEXT; SUM() de SQLite operaría en coma flotante.
func (r *StatsRepo) SumPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("company_id = ? AND status = ?", companyID, string(status)).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

func count(q *gorm.DB, what string) (int64, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}
