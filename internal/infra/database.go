package infra

import (
	"fmt"

	"tiendapos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate.
// TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey — the venta service's sequence retry depends on it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Negocio{},
		&model.Producto{},
		&model.UbicacionStock{},
		&model.Ticket{},
		&model.TicketItem{},
		&model.Contenedor{},
		&model.ContenedorProducto{},
		&model.Traspaso{},
		&model.TraspasoLinea{},
		&model.Corte{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
