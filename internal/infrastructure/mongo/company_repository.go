package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo persistencia de empresas en la colección companies.
type CompanyRepo struct {
	collection *mongo.Collection
}

// NewCompanyRepository construye el repositorio.
func NewCompanyRepository(db *mongo.Database) *CompanyRepo {
	return &CompanyRepo{collection: db.Collection(colCompanies)}
}

// Create inserta la empresa; domain.ErrDuplicate si el name_key ya existe.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	_, err := r.collection.InsertOne(ctx, companyDoc{
		ID:        company.ID,
		Name:      company.Name,
		NameKey:   company.NameKey,
		CreatedAt: company.CreatedAt,
	})
	if err != nil {
		if _, ok := duplicateIndex(err); ok {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByNameKey obtiene una empresa por nombre normalizado.
func (r *CompanyRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Company, error) {
	return r.findOne(ctx, bson.M{"name_key": nameKey})
}

func (r *CompanyRepo) findOne(ctx context.Context, filter bson.M) (*entity.Company, error) {
	var doc companyDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return doc.toEntity(), nil
}
