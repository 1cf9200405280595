package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo persistencia de usuarios en la colección users.
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{collection: db.Collection(colUsers)}
}

// Create inserta el usuario; los índices únicos de email y móvil detectan duplicados.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.collection.InsertOne(ctx, newUserDoc(user))
	if err != nil {
		if idx, ok := duplicateIndex(err); ok {
			switch idx {
			case idxUsersEmail:
				return domain.ErrEmailAlreadyExists
			case idxUsersMobile:
				return domain.ErrMobileAlreadyExists
			}
			return fmt.Errorf("%w: %v", domain.ErrDuplicateIdentifier, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByMobile obtiene un usuario por móvil.
func (r *UserRepo) GetByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"mobile": mobile})
}

// ListByCompany lista usuarios de la empresa por fecha de alta.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.collection.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.toEntity())
	}
	return list, nil
}

// SetActive activa o desactiva un usuario de la empresa.
func (r *UserRepo) SetActive(ctx context.Context, companyID, userID string, active bool) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "company_id": companyID},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toEntity(), nil
}
