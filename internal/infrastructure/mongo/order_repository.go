package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/b2b-portal-api/internal/domain"
	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo persistencia de pedidos en la colección orders.
type OrderRepo struct {
	collection *mongo.Collection
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(db *mongo.Database) *OrderRepo {
	return &OrderRepo{collection: db.Collection(colOrders)}
}

// Create inserta el pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	doc, err := newOrderDoc(o)
	if err != nil {
		return fmt.Errorf("order total: %w", err)
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido de la empresa.
func (r *OrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Order, error) {
	var doc orderDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "company_id": companyID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toEntity()
}

// UpdateStatus compare-and-set: solo actualiza si el estado actual es from.
func (r *OrderRepo) UpdateStatus(ctx context.Context, companyID, id string, from, to entity.OrderStatus) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "company_id": companyID, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}
