package records_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/domain"
)

func TestRestore_IdaYVuelta(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	mustInvoice(t, s, c.ID, refNow, "150.5")

	raw, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)
	wantCustomers := asJSON(t, s.ListCustomers())
	wantInvoices := asJSON(t, s.ListInvoices())

	require.NoError(t, s.DeleteCustomer(c.ID))
	require.Empty(t, s.ListCustomers())

	var snap records.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.NoError(t, s.Restore(snap))

	assert.JSONEq(t, wantCustomers, asJSON(t, s.ListCustomers()))
	assert.JSONEq(t, wantInvoices, asJSON(t, s.ListInvoices()))
}

func TestRestore_ColeccionAusenteNoCambia(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	mustInvoice(t, s, c.ID, refNow, "10")
	before := asJSON(t, s.ListInvoices())

	var snap records.Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"customers":[
		{"id":"x-1","kind":"organization","name":"Loja","taxId":"11222333000181","registeredAt":"2024-01-01T00:00:00Z"}
	]}`), &snap))
	require.NoError(t, s.Restore(snap))

	customers := s.ListCustomers()
	require.Len(t, customers, 1)
	assert.Equal(t, "Loja", customers[0].Name)

	// Las notas siguen ahí; el join queda vacío porque su cliente ya no existe.
	invoices := s.ListInvoices()
	require.Len(t, invoices, 1)
	assert.Empty(t, invoices[0].CustomerName)
	assert.NotEqual(t, before, asJSON(t, invoices))
}

func TestRestore_RegistroInvalidoNoAplicaNada(t *testing.T) {
	s := openJSON(t, t.TempDir())
	mustCustomer(t, s, "Ana", "52998224725")
	before := asJSON(t, s.ListCustomers())

	cases := map[string]string{
		"cliente sin nombre": `{"customers":[{"id":"a","kind":"individual","name":"","taxId":"1"}]}`,
		"tipo inválido":      `{"customers":[{"id":"a","kind":"otro","name":"A","taxId":"1"}]}`,
		"id duplicado": `{"customers":[
			{"id":"a","kind":"individual","name":"A","taxId":"1"},
			{"id":"a","kind":"individual","name":"B","taxId":"2"}]}`,
		"estado overdue":   `{"customers":[],"invoices":[{"id":"n","customerId":"a","status":"overdue","lineItems":"[]"}]}`,
		"líneas corruptas": `{"customers":[],"invoices":[{"id":"n","customerId":"a","status":"paid","lineItems":"{"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var snap records.Snapshot
			require.NoError(t, json.Unmarshal([]byte(raw), &snap))
			err := s.Restore(snap)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.JSONEq(t, before, asJSON(t, s.ListCustomers()))
		})
	}
}
