package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

// Seeder inserta productos, proveedores y pagos. La API no expone escrituras de
// estas entidades; se usa en entornos locales y en tests.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder construye el seeder.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Product inserta un producto.
func (s *Seeder) Product(ctx context.Context, p *entity.Product) error {
	m := &productModel{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		SKU:              p.SKU,
		Name:             p.Name,
		StockQuantity:    p.StockQuantity,
		ReorderThreshold: p.ReorderThreshold,
		CreatedAt:        p.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Vendor inserta un proveedor.
func (s *Seeder) Vendor(ctx context.Context, v *entity.Vendor) error {
	m := &vendorModel{ID: v.ID, CompanyID: v.CompanyID, Name: v.Name, CreatedAt: v.CreatedAt}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// Payment inserta un pago.
func (s *Seeder) Payment(ctx context.Context, p *entity.Payment) error {
	m := &paymentModel{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		OrderID:   p.OrderID,
		PaidBy:    p.PaidBy,
		Amount:    p.Amount,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
