package infra

import (
	"fmt"
	"strings"

	"github.com/glYohanny/Gucci/internal/config"
	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection selected by DATABASE_URL. Postgres
// schemas are owned by the SQL migrations in migrations/; SQLite (local runs
// and tests) is created through AutoMigrate.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.DBDebug {
		level = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         NewGormLogger(level),
		TranslateError: true,
	}

	dialector, sqliteMode := dialectorFor(cfg.DatabaseURL)
	if !sqliteMode && cfg.RunMigrations {
		if err := RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("sql migrations: %w", err)
		}
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if sqliteMode {
		// SQLite serializes writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, bool) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), true
	case strings.HasPrefix(dsn, "file:"):
		return sqlite.Open(dsn), true
	default:
		return postgres.Open(dsn), false
	}
}

// AutoMigrate creates or updates every table from the GORM models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Region{},
		&model.Comuna{},
		&model.Direccion{},
		&model.Usuario{},
		&model.Cuenta{},
		&model.Permiso{},
		&model.UsuarioPermiso{},
		&model.Cliente{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Orden{},
		&model.OrdenProducto{},
		&model.MovimientoStock{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
