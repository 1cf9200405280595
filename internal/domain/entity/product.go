package entity

import "time"

// Product producto del catálogo de una empresa. Solo se consulta para contadores del dashboard.
type Product struct {
	ID               string
	CompanyID        string
	SKU              string
	Name             string
	StockQuantity    int
	ReorderThreshold int // 0 = sin umbral, nunca cuenta como stock bajo
	CreatedAt        time.Time
}

// LowStock stock_quantity < reorder_threshold.
func (p Product) LowStock() bool {
	return p.StockQuantity < p.ReorderThreshold
}
