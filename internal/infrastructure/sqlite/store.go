// Package sqlite implementa repository.KeyValueStore sobre un archivo SQLite embebido
// (driver puro Go, sin cgo). Todos los almacenes comparten la base y se separan por namespace.
package sqlite

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/repository"
)

var _ repository.KeyValueStore = (*Store)(nil)

// entry fila de la tabla kv_entries.
type entry struct {
	Namespace string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;column:entry_key;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (entry) TableName() string { return "kv_entries" }

// Open abre la base en path y migra la tabla de entradas.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &domain.IOError{Op: "abrir sqlite", Path: path, Err: err}
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, &domain.IOError{Op: "migrar kv_entries", Path: path, Err: err}
	}
	return db, nil
}

// CloseDB cierra la conexión subyacente.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Store vista de un namespace dentro de kv_entries.
type Store struct {
	db        *gorm.DB
	namespace string
}

// New construye el almacén del namespace indicado.
func New(db *gorm.DB, namespace string) *Store {
	return &Store{db: db, namespace: namespace}
}

// Get decodifica la clave en dst.
func (s *Store) Get(key string, dst any) (bool, error) {
	var e entry
	err := s.db.Where("namespace = ? AND entry_key = ?", s.namespace, key).Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, &domain.IOError{Op: fmt.Sprintf("leer %s/%s", s.namespace, key), Err: err}
	}
	if err := json.Unmarshal([]byte(e.Value), dst); err != nil {
		return true, &domain.IOError{Op: fmt.Sprintf("decodificar %s/%s", s.namespace, key), Err: err}
	}
	return true, nil
}

// Set inserta o reemplaza el valor (upsert).
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &domain.IOError{Op: fmt.Sprintf("serializar %s/%s", s.namespace, key), Err: err}
	}
	e := entry{Namespace: s.namespace, Key: key, Value: string(raw), UpdatedAt: time.Now().UTC()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return &domain.IOError{Op: fmt.Sprintf("escribir %s/%s", s.namespace, key), Err: err}
	}
	return nil
}

// Close no cierra la base compartida; usar CloseDB al apagar.
func (s *Store) Close() error { return nil }
