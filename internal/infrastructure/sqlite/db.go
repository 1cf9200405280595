// Package sqlite implementa los puertos de repositorio con gorm sobre SQLite
// (driver puro Go). Sirve como almacén embebido y como base de los tests de integración.
package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open abre (o crea) la base en path y migra el esquema.
// path puede ser un fichero o un DSN "file:...?mode=memory&cache=shared".
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	// SQLite admite un único escritor; una conexión evita SQLITE_BUSY y mantiene viva la base en memoria
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&companyModel{}, &userModel{}, &orderModel{}, &productModel{}, &vendorModel{}, &paymentModel{}); err != nil {
		return nil, fmt.Errorf("migrar sqlite: %w", err)
	}
	return db, nil
}

// MemoryDSN DSN de una base en memoria aislada por nombre.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// uniqueViolation devuelve "tabla.columna" si err es una violación de UNIQUE.
func uniqueViolation(err error) (string, bool) {
	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", errors.Is(err, gorm.ErrDuplicatedKey)
	}
	col := msg[i+len(marker):]
	if j := strings.IndexAny(col, " ,("); j >= 0 {
		col = col[:j]
	}
	return col, true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
