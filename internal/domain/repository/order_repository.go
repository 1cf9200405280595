package repository

import (
	"context"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

// OrderRepository escrituras mínimas de pedidos, siempre acotadas a una empresa.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Order, error)
	// UpdateStatus cambia el estado solo si el actual es from (compare-and-set).
	// Devuelve domain.ErrConflict si el pedido ya no está en from.
	UpdateStatus(ctx context.Context, companyID, id string, from, to entity.OrderStatus) error
}
