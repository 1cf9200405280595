package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de un pago.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentSuccessful PaymentStatus = "successful" // terminal; el único que suma ingresos
	PaymentFailed     PaymentStatus = "failed"
)

// Payment pago asociado a un pedido.
type Payment struct {
	ID        string
	CompanyID string
	OrderID   string
	PaidBy    string
	Amount    decimal.Decimal
	Status    PaymentStatus
	CreatedAt time.Time
}
