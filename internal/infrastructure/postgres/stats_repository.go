package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas read-only del dashboard. Todas filtran por company_id.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el repositorio.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountOrders cuenta pedidos, opcionalmente solo en los estados dados.
func (r *StatsRepo) CountOrders(ctx context.Context, companyID string, statuses ...entity.OrderStatus) (int64, error) {
	if len(statuses) == 0 {
		return r.count(ctx, "count orders", `SELECT COUNT(*) FROM orders WHERE company_id = $1`, companyID)
	}
	list := make([]string, len(statuses))
	for i, s := range statuses {
		list[i] = string(s)
	}
	return r.count(ctx, "count orders",
		`SELECT COUNT(*) FROM orders WHERE company_id = $1 AND status = ANY($2)`, companyID, list)
}

// CountProducts cuenta productos.
func (r *StatsRepo) CountProducts(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, "count products", `SELECT COUNT(*) FROM products WHERE company_id = $1`, companyID)
}

// CountLowStockProducts cuenta productos con stock por debajo del umbral.
func (r *StatsRepo) CountLowStockProducts(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, "count low stock",
		`SELECT COUNT(*) FROM products WHERE company_id = $1 AND stock_quantity < reorder_threshold`, companyID)
}

// CountVendors cuenta proveedores.
func (r *StatsRepo) CountVendors(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, "count vendors", `SELECT COUNT(*) FROM vendors WHERE company_id = $1`, companyID)
}

// CountPayments cuenta pagos en el estado dado.
func (r *StatsRepo) CountPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (int64, error) {
	return r.count(ctx, "count payments",
		`SELECT COUNT(*) FROM payments WHERE company_id = $1 AND status = $2`, companyID, string(status))
}

// SumPayments suma importes de pagos en el estado dado.
func (r *StatsRepo) SumPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE company_id = $1 AND status = $2`,
		companyID, string(status),
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}

func (r *StatsRepo) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
