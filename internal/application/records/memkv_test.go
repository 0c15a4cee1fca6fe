package records_test

import (
	"encoding/json"

	"github.com/jhoicas/gestor-notas/internal/domain"
)

// memKV almacén en memoria con fallo de escritura inyectable.
type memKV struct {
	data    map[string][]byte
	failSet error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string, dst any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memKV) Set(key string, value any) error {
	if m.failSet != nil {
		return &domain.IOError{Op: "escribir " + key, Err: m.failSet}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memKV) Close() error { return nil }
