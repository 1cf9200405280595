package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

// StatsRepository consultas de solo lectura para el dashboard.
// Toda consulta filtra por companyID antes de contar o sumar.
type StatsRepository interface {
	// CountOrders cuenta pedidos; sin estados cuenta todos.
	CountOrders(ctx context.Context, companyID string, statuses ...entity.OrderStatus) (int64, error)
	CountProducts(ctx context.Context, companyID string) (int64, error)
	// CountLowStockProducts cuenta productos con stock_quantity < reorder_threshold.
	CountLowStockProducts(ctx context.Context, companyID string) (int64, error)
	CountVendors(ctx context.Context, companyID string) (int64, error)
	CountPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (int64, error)
	// SumPayments suma importes en el estado dado; cero si no hay filas.
	SumPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (decimal.Decimal, error)
}
