// Package backup crea y restaura snapshots completos del almacén en archivos JSON portables.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

const (
	filePrefix = "backup-"
	fileExt    = ".json"
	stampFmt   = "2006-01-02T15:04:05.000000000Z"
)

// SnapshotInfo describe un archivo de snapshot existente.
type SnapshotInfo struct {
	Name      string
	Path      string
	Size      int64
	CreatedAt time.Time
}

// Options dependencias inyectables del Manager.
type Options struct {
	Now     func() time.Time
	Logger  *logger.Logger
	Metrics records.Recorder
}

// Manager opera directamente sobre la representación persistida del almacén.
type Manager struct {
	store   *records.Store
	dir     string
	now     func() time.Time
	log     *logger.Logger
	metrics records.Recorder
}

// NewManager construye el gestor de snapshots sobre dir.
func NewManager(store *records.Store, dir string, opts Options) *Manager {
	m := &Manager{store: store, dir: dir, now: opts.Now, log: opts.Logger, metrics: opts.Metrics}
	if m.now == nil {
		m.now = time.Now
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	m.log = m.log.Component("backup")
	return m
}

// Dir directorio de snapshots.
func (m *Manager) Dir() string { return m.dir }

// FileName nombre de archivo del snapshot para el instante t: los ":" del timestamp se reemplazan por "-".
func FileName(t time.Time) string {
	stamp := strings.ReplaceAll(t.UTC().Format(stampFmt), ":", "-")
	return filePrefix + stamp + fileExt
}

// CreateSnapshot escribe ambas colecciones en un archivo nuevo y devuelve su ruta.
// Nunca sobrescribe un snapshot existente.
func (m *Manager) CreateSnapshot() (string, error) {
	path, err := m.createSnapshot()
	m.observe("create", err)
	return path, err
}

func (m *Manager) createSnapshot() (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", &domain.IOError{Op: "crear directorio de backups", Path: m.dir, Err: err}
	}
	out, err := json.MarshalIndent(m.store.Snapshot(), "", "  ")
	if err != nil {
		return "", &domain.IOError{Op: "serializar snapshot", Err: err}
	}

	path := filepath.Join(m.dir, FileName(m.now()))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", &domain.IOError{Op: "crear snapshot", Path: path, Err: err}
	}
	if _, err := f.Write(append(out, '\n')); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", &domain.IOError{Op: "escribir snapshot", Path: path, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", &domain.IOError{Op: "sincronizar snapshot", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &domain.IOError{Op: "cerrar snapshot", Path: path, Err: err}
	}
	m.log.Info().Str("path", path).Int("bytes", len(out)+1).Msg("snapshot creado")
	return path, nil
}

// RestoreSnapshot lee el archivo y reemplaza las colecciones presentes en él.
// Si el archivo no se puede leer o decodificar devuelve un IOError y el almacén no cambia.
func (m *Manager) RestoreSnapshot(path string) error {
	err := m.restoreSnapshot(path)
	m.observe("restore", err)
	return err
}

func (m *Manager) restoreSnapshot(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &domain.IOError{Op: "leer snapshot", Path: path, Err: err}
	}
	var snap records.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return &domain.IOError{Op: "decodificar snapshot", Path: path, Err: err}
	}
	if snap.Customers == nil && snap.Invoices == nil {
		return &domain.IOError{Op: "decodificar snapshot", Path: path, Err: errors.New("no contiene customers ni invoices")}
	}
	if err := m.store.Restore(snap); err != nil {
		return fmt.Errorf("restaurar %s: %w", filepath.Base(path), err)
	}
	m.log.Info().Str("path", path).Msg("snapshot restaurado")
	return nil
}

// ListSnapshots devuelve los snapshots del directorio, el más reciente primero.
func (m *Manager) ListSnapshots() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SnapshotInfo{}, nil
		}
		return nil, &domain.IOError{Op: "listar backups", Path: m.dir, Err: err}
	}
	out := make([]SnapshotInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, SnapshotInfo{
			Name:      name,
			Path:      filepath.Join(m.dir, name),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}
	// El timestamp del nombre ordena lexicográficamente.
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (m *Manager) observe(op string, err error) {
	if m.metrics != nil {
		m.metrics.ObserveOperation("backup", op, err)
	}
	if err != nil {
		m.log.Warn().Err(err).Str("op", op).Msg("operación de backup fallida")
	}
}
