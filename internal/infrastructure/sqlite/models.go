package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

// Los importes se guardan como TEXT para no perder precisión con la afinidad REAL de SQLite.

type companyModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"not null"`
	NameKey   string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (companyModel) TableName() string { return "companies" }

func (m companyModel) toEntity() *entity.Company {
	return &entity.Company{ID: m.ID, Name: m.Name, NameKey: m.NameKey, CreatedAt: m.CreatedAt}
}

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	CompanyID    string `gorm:"index;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Mobile       string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func newUserModel(u *entity.User) *userModel {
	return &userModel{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		Email:        u.Email,
		Mobile:       u.Mobile,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m userModel) toEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		Email:        m.Email,
		Mobile:       m.Mobile,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         entity.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type orderModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	CompanyID string          `gorm:"index:idx_orders_company_status;not null"`
	CreatedBy string          `gorm:"not null"`
	Reference string          `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:text;not null"`
	Status    string          `gorm:"index:idx_orders_company_status;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (orderModel) TableName() string { return "orders" }

func (m orderModel) toEntity() *entity.Order {
	return &entity.Order{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		CreatedBy: m.CreatedBy,
		Reference: m.Reference,
		Total:     m.Total,
		Status:    entity.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type productModel struct {
	ID               string `gorm:"primaryKey;size:36"`
	CompanyID        string `gorm:"index;not null"`
	SKU              string `gorm:"column:sku;not null"`
	Name             string `gorm:"not null"`
	StockQuantity    int    `gorm:"not null"`
	ReorderThreshold int    `gorm:"not null"`
	CreatedAt        time.Time
}

func (productModel) TableName() string { return "products" }

type vendorModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	CompanyID string `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

func (vendorModel) TableName() string { return "vendors" }

type paymentModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	CompanyID string          `gorm:"index:idx_payments_company_status;not null"`
	OrderID   string          `gorm:"size:36"`
	PaidBy    string          `gorm:"size:36"`
	Amount    decimal.Decimal `gorm:"type:text;not null"`
	Status    string          `gorm:"index:idx_payments_company_status;not null"`
	CreatedAt time.Time
}

func (paymentModel) TableName() string { return "payments" }
