package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
)

type companyDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	NameKey   string    `bson:"name_key"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d companyDoc) toEntity() *entity.Company {
	return &entity.Company{ID: d.ID, Name: d.Name, NameKey: d.NameKey, CreatedAt: d.CreatedAt}
}

type userDoc struct {
	ID           string    `bson:"_id"`
	CompanyID    string    `bson:"company_id"`
	Email        string    `bson:"email"`
	Mobile       string    `bson:"mobile"`
	PasswordHash string    `bson:"password_hash"`
	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	IsActive     bool      `bson:"is_active"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newUserDoc(u *entity.User) userDoc {
	return userDoc{
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

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		CompanyID:    d.CompanyID,
		Email:        d.Email,
		Mobile:       d.Mobile,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         entity.Role(d.Role),
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type orderDoc struct {
	ID        string               `bson:"_id"`
	CompanyID string               `bson:"company_id"`
	CreatedBy string               `bson:"created_by"`
	Reference string               `bson:"reference"`
	Total     primitive.Decimal128 `bson:"total"`
	Status    string               `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func newOrderDoc(o *entity.Order) (orderDoc, error) {
	total, err := toDecimal128(o.Total)
	if err != nil {
		return orderDoc{}, err
	}
	return orderDoc{
		ID:        o.ID,
		CompanyID: o.CompanyID,
		CreatedBy: o.CreatedBy,
		Reference: o.Reference,
		Total:     total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func (d orderDoc) toEntity() (*entity.Order, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	return &entity.Order{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		CreatedBy: d.CreatedBy,
		Reference: d.Reference,
		Total:     total,
		Status:    entity.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}
