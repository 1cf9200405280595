package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada de POST /api/orders.
type CreateOrderRequest struct {
	Reference string          `json:"reference" validate:"required,max=100"`
	Total     decimal.Decimal `json:"total"`
}

// UpdateOrderStatusRequest entrada de PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	CreatedBy string          `json:"created_by"`
	Reference string          `json:"reference"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
