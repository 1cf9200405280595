package entity

import "time"

// Vendor proveedor registrado por una empresa.
type Vendor struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}
