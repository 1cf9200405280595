package mongo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/b2b-portal-api/internal/domain/entity"
	"github.com/jhoicas/b2b-portal-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo conteos del dashboard. Cada filtro empieza por company_id.
type StatsRepo struct {
	db *mongo.Database
}

// NewStatsRepository construye el repositorio.
func NewStatsRepository(db *mongo.Database) *StatsRepo {
	return &StatsRepo{db: db}
}

// CountOrders cuenta pedidos, opcionalmente en los estados dados.
func (r *StatsRepo) CountOrders(ctx context.Context, companyID string, statuses ...entity.OrderStatus) (int64, error) {
	filter := bson.M{"company_id": companyID}
	if len(statuses) > 0 {
		list := make([]string, len(statuses))
		for i, s := range statuses {
			list[i] = string(s)
		}
		filter["status"] = bson.M{"$in": list}
	}
	return r.count(ctx, colOrders, filter)
}

// CountProducts cuenta productos.
func (r *StatsRepo) CountProducts(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, colProducts, bson.M{"company_id": companyID})
}

// CountLowStockProducts cuenta productos con stock_quantity < reorder_threshold.
func (r *StatsRepo) CountLowStockProducts(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, colProducts, bson.M{
		"company_id": companyID,
		"$expr":      bson.M{"$lt": bson.A{"$stock_quantity", "$reorder_threshold"}},
	})
}

// CountVendors cuenta proveedores.
func (r *StatsRepo) CountVendors(ctx context.Context, companyID string) (int64, error) {
	return r.count(ctx, colVendors, bson.M{"company_id": companyID})
}

// CountPayments cuenta pagos en el estado dado.
func (r *StatsRepo) CountPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (int64, error) {
	return r.count(ctx, colPayments, bson.M{"company_id": companyID, "status": string(status)})
}

// SumPayments suma amount (Decimal128) de los pagos en el estado dado.
func (r *StatsRepo) SumPayments(ctx context.Context, companyID string, status entity.PaymentStatus) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID, "status": string(status)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cur, err := r.db.Collection(colPayments).Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	var rows []struct {
		Total any `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return sumValue(rows[0].Total)
}

// sumValue $sum devuelve Decimal128 si los importes lo son; datos antiguos pueden ser numéricos.
func sumValue(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case primitive.Decimal128:
		return fromDecimal128(t)
	case float64:
		return decimal.NewFromFloat(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case int32:
		return decimal.NewFromInt32(t), nil
	case nil:
		return decimal.Zero, nil
	}
	return decimal.Zero, fmt.Errorf("sum payments: tipo inesperado %T", v)
}

func (r *StatsRepo) count(ctx context.Context, col string, filter bson.M) (int64, error) {
	n, err := r.db.Collection(col).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col, err)
	}
	return n, nil
}
