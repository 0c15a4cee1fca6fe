package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas/pkg/config"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

func storeConfig(t *testing.T, driver string) config.StoreConfig {
	t.Helper()
	dir := t.TempDir()
	return config.StoreConfig{DataDir: dir, Driver: driver, BackupDir: filepath.Join(dir, "backups")}
}

func TestRun_CreateListRestore(t *testing.T) {
	for _, driver := range []string{config.DriverJSON, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := storeConfig(t, driver)
			var out, errOut bytes.Buffer

			require.Equal(t, 0, run(cfg, []string{"create"}, &out, &errOut, logger.Nop()), errOut.String())
			path := strings.TrimSpace(out.String())
			_, err := os.Stat(path)
			require.NoError(t, err)

			out.Reset()
			require.Equal(t, 0, run(cfg, []string{"list"}, &out, &errOut, logger.Nop()))
			assert.Contains(t, out.String(), filepath.Base(path))

			out.Reset()
			require.Equal(t, 0, run(cfg, []string{"restore", path}, &out, &errOut, logger.Nop()), errOut.String())
			assert.Contains(t, out.String(), "0 clientes, 0 notas")
		})
	}
}

func TestRun_ArgumentosInvalidos(t *testing.T) {
	cfg := storeConfig(t, config.DriverJSON)
	var out, errOut bytes.Buffer

	assert.Equal(t, 2, run(cfg, nil, &out, &errOut, logger.Nop()))
	assert.Equal(t, 2, run(cfg, []string{"restore"}, &out, &errOut, logger.Nop()))
	assert.Equal(t, 2, run(cfg, []string{"borrar"}, &out, &errOut, logger.Nop()))
	assert.Contains(t, errOut.String(), "uso:")
}

func TestRun_RestoreArchivoInexistente(t *testing.T) {
	cfg := storeConfig(t, config.DriverJSON)
	var out, errOut bytes.Buffer
	code := run(cfg, []string{"restore", filepath.Join(cfg.DataDir, "nada.json")}, &out, &errOut, logger.Nop())
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Restaurar snapshot")
}
