package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas/internal/infrastructure/sqlite"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_UpsertYNamespaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestor.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.CloseDB(db) })

	customers := sqlite.New(db, "customers")
	invoices := sqlite.New(db, "invoices")

	var got []sample
	found, err := customers.Get("customers", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, customers.Set("customers", []sample{{Name: "Ana", Count: 1}}))
	require.NoError(t, customers.Set("customers", []sample{{Name: "Ana", Count: 2}}))

	found, err = customers.Get("customers", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []sample{{Name: "Ana", Count: 2}}, got, "el segundo Set reemplaza al primero")

	found, err = invoices.Get("customers", &got)
	require.NoError(t, err)
	assert.False(t, found, "los namespaces están aislados")
}

func TestStore_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestor.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, sqlite.New(db, "settings").Set("theme", "dark"))
	require.NoError(t, sqlite.CloseDB(db))

	db, err = sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.CloseDB(db) })

	settings := sqlite.New(db, "settings")
	var theme string
	found, err := settings.Get("theme", &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", theme)

	require.NoError(t, settings.Set("theme", "light"))
	found, err = settings.Get("theme", &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", theme)
}
