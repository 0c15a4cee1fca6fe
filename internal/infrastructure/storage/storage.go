// Package storage abre los tres almacenes (clientes, notas, configuración) según el driver configurado.
package storage

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/repository"
	"github.com/jhoicas/gestor-notas/internal/infrastructure/jsonstore"
	"github.com/jhoicas/gestor-notas/internal/infrastructure/sqlite"
	"github.com/jhoicas/gestor-notas/pkg/config"
)

// Nombres de los almacenes: archivo <nombre>.json o namespace en SQLite.
const (
	CustomersName = "customers"
	InvoicesName  = "invoices"
	SettingsName  = "settings"
)

// Stores almacenes abiertos. Close libera la base cuando el driver es sqlite.
type Stores struct {
	Customers repository.KeyValueStore
	Invoices  repository.KeyValueStore
	Settings  repository.KeyValueStore

	db *gorm.DB
}

// Open abre los almacenes bajo cfg.DataDir.
func Open(cfg config.StoreConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, &domain.IOError{Op: "crear directorio de datos", Path: cfg.DataDir, Err: err}
		}
		db, err := sqlite.Open(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return &Stores{
			Customers: sqlite.New(db, CustomersName),
			Invoices:  sqlite.New(db, InvoicesName),
			Settings:  sqlite.New(db, SettingsName),
			db:        db,
		}, nil
	case config.DriverJSON, "":
		s := &Stores{}
		var err error
		if s.Customers, err = jsonstore.Open(cfg.DataDir, CustomersName); err != nil {
			return nil, err
		}
		if s.Invoices, err = jsonstore.Open(cfg.DataDir, InvoicesName); err != nil {
			return nil, err
		}
		if s.Settings, err = jsonstore.Open(cfg.DataDir, SettingsName); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}

// Close cierra la base SQLite si corresponde.
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return sqlite.CloseDB(s.db)
}
