// Package mongo implementa los puertos de repositorio sobre MongoDB.
// Los IDs se guardan como string (uuid) en _id para compartir formato con PostgreSQL.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/b2b-portal-api/pkg/config"
)

// Colecciones.
const (
	colCompanies = "companies"
	colUsers     = "users"
	colOrders    = "orders"
	colProducts  = "products"
	colVendors   = "vendors"
	colPayments  = "payments"
)

// Nombres de índices únicos; aparecen en el mensaje de error E11000.
const (
	idxUsersEmail    = "uniq_users_email"
	idxUsersMobile   = "uniq_users_mobile"
	idxCompaniesName = "uniq_companies_name_key"
)

// Connect abre el cliente y comprueba conectividad.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar a MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices únicos y los de consulta por empresa. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetName(name).SetUnique(true)
	}
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique(idxUsersEmail)},
			{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: unique(idxUsersMobile)},
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colCompanies: {
			{Keys: bson.D{{Key: "name_key", Value: 1}}, Options: unique(idxCompaniesName)},
		},
		colOrders: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		colProducts: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
		colVendors: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
		colPayments: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("índices de %s: %w", col, err)
		}
	}
	return nil
}

// duplicateIndex devuelve el índice único violado si err es un E11000.
func duplicateIndex(err error) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			for _, idx := range []string{idxUsersEmail, idxUsersMobile, idxCompaniesName} {
				if strings.Contains(e.Message, idx) {
					return idx, true
				}
			}
		}
	}
	return "", true
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
