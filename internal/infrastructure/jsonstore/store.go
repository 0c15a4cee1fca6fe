// Package jsonstore implementa repository.KeyValueStore sobre un archivo JSON por almacén
// (mismo formato que un electron-store: un objeto con una entrada por clave).
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/repository"
)

var _ repository.KeyValueStore = (*Store)(nil)

// Store mantiene el documento decodificado en memoria y lo reescribe completo en cada Set.
type Store struct {
	path string
	data map[string]json.RawMessage
}

// Open abre (o crea) dir/name.json.
func Open(dir, name string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.IOError{Op: "crear directorio de datos", Path: dir, Err: err}
	}
	s := &Store{
		path: filepath.Join(dir, name+".json"),
		data: make(map[string]json.RawMessage),
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, &domain.IOError{Op: "leer almacén", Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, &domain.IOError{Op: "decodificar almacén", Path: s.path, Err: err}
	}
	return s, nil
}

// Get decodifica la clave en dst.
func (s *Store) Get(key string, dst any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, &domain.IOError{Op: fmt.Sprintf("decodificar clave %q", key), Path: s.path, Err: err}
	}
	return true, nil
}

// Set serializa value y reescribe el archivo. Si la escritura falla el estado en memoria no cambia.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &domain.IOError{Op: fmt.Sprintf("serializar clave %q", key), Path: s.path, Err: err}
	}
	next := s.clone()
	next[key] = raw
	if err := s.flush(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Close no mantiene recursos abiertos entre escrituras.
func (s *Store) Close() error { return nil }

func (s *Store) clone() map[string]json.RawMessage {
	next := make(map[string]json.RawMessage, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	return next
}

// flush escribe en un temporal del mismo directorio, hace fsync y lo renombra sobre el destino.
func (s *Store) flush(data map[string]json.RawMessage) error {
	out, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return &domain.IOError{Op: "serializar almacén", Path: s.path, Err: err}
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &domain.IOError{Op: "crear temporal", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		cleanup()
		return &domain.IOError{Op: "escribir almacén", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return &domain.IOError{Op: "sincronizar almacén", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &domain.IOError{Op: "cerrar temporal", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return &domain.IOError{Op: "reemplazar almacén", Path: s.path, Err: err}
	}
	return nil
}
