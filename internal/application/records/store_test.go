package records_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/internal/infrastructure/jsonstore"
)

var refNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedOptions() records.Options {
	return records.Options{
		Now:   func() time.Time { return refNow },
		NewID: sequentialIDs("id"),
	}
}

func openJSON(t *testing.T, dir string) *records.Store {
	t.Helper()
	customers, err := jsonstore.Open(dir, "customers")
	require.NoError(t, err)
	invoices, err := jsonstore.Open(dir, "invoices")
	require.NoError(t, err)
	s, err := records.Open(customers, invoices, fixedOptions())
	require.NoError(t, err)
	return s
}

func asJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func mustCustomer(t *testing.T, s *records.Store, name, taxID string) entity.Customer {
	t.Helper()
	c, err := s.CreateCustomer(records.CustomerInput{
		Kind:  entity.KindIndividual,
		Name:  name,
		TaxID: taxID,
		Phone: "11987654321",
	})
	require.NoError(t, err)
	return c
}

func mustInvoice(t *testing.T, s *records.Store, customerID string, due time.Time, total string) entity.Invoice {
	t.Helper()
	inv, err := s.CreateInvoice(records.InvoiceInput{
		CustomerID:   customerID,
		PurchaseDate: due.AddDate(0, 0, -30),
		DueDate:      due,
		LineItems:    records.Serialized(`[{"name":"Camisa","unitPrice":50,"quantity":2}]`),
		TotalAmount:  decimal.RequireFromString(total),
	})
	require.NoError(t, err)
	return inv
}

func TestOpen_InicializaColeccionesVacias(t *testing.T) {
	mem := newMemKV()
	s, err := records.Open(mem, mem, fixedOptions())
	require.NoError(t, err)

	assert.Empty(t, s.ListCustomers())
	assert.Empty(t, s.ListInvoices())
	assert.JSONEq(t, `[]`, string(mem.data[records.CustomersKey]))
	assert.JSONEq(t, `[]`, string(mem.data[records.InvoicesKey]))
}

func TestCreateCustomer_AsignaIDYFecha(t *testing.T) {
	s := openJSON(t, t.TempDir())

	c := mustCustomer(t, s, "  Ana Souza ", "52998224725")
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "Ana Souza", c.Name)
	assert.True(t, c.RegisteredAt.Equal(refNow))

	got, err := s.GetCustomer(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCreateCustomer_CamposRequeridos(t *testing.T) {
	s := openJSON(t, t.TempDir())

	cases := []struct {
		name  string
		in    records.CustomerInput
		field string
	}{
		{"sin nombre", records.CustomerInput{Kind: entity.KindIndividual, Name: "  ", TaxID: "52998224725"}, "name"},
		{"sin documento", records.CustomerInput{Kind: entity.KindIndividual, Name: "Ana"}, "taxId"},
		{"tipo inválido", records.CustomerInput{Kind: "empresa", Name: "Ana", TaxID: "52998224725"}, "kind"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateCustomer(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Empty(t, s.ListCustomers())
}

func TestUpdateCustomer_NoCambiaIDNiFecha(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")

	name := "Ana Maria"
	kind := entity.KindOrganization
	taxID := "11222333000181"
	got, err := s.UpdateCustomer(c.ID, records.CustomerPatch{Name: &name, Kind: &kind, TaxID: &taxID})
	require.NoError(t, err)

	assert.Equal(t, c.ID, got.ID)
	assert.True(t, got.RegisteredAt.Equal(c.RegisteredAt))
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, entity.KindOrganization, got.Kind)
	assert.Equal(t, c.Phone, got.Phone, "campos ausentes en el patch no cambian")
}

func TestUpdateCustomer_Inexistente(t *testing.T) {
	s := openJSON(t, t.TempDir())
	name := "X"
	_, err := s.UpdateCustomer("nope", records.CustomerPatch{Name: &name})
	require.Error(t, err)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "customer", nf.Resource)
	assert.Equal(t, "nope", nf.ID)
}

func TestDeleteCustomer_BorraEnCascada(t *testing.T) {
	s := openJSON(t, t.TempDir())
	ana := mustCustomer(t, s, "Ana", "52998224725")
	bruno := mustCustomer(t, s, "Bruno", "11144477735")
	mustInvoice(t, s, ana.ID, refNow.AddDate(0, 0, 10), "100")
	mustInvoice(t, s, ana.ID, refNow.AddDate(0, 0, -10), "50")
	kept := mustInvoice(t, s, bruno.ID, refNow, "70")

	require.NoError(t, s.DeleteCustomer(ana.ID))

	assert.Empty(t, s.ListInvoicesByCustomer(ana.ID))
	_, err := s.GetCustomer(ana.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	all := s.ListInvoices()
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)
	for _, inv := range all {
		_, err := s.GetCustomer(inv.CustomerID)
		assert.NoError(t, err, "ninguna nota queda huérfana")
	}
}

func TestDeleteCustomer_Idempotente(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	require.NoError(t, s.DeleteCustomer(c.ID))
	require.NoError(t, s.DeleteCustomer(c.ID))
	require.NoError(t, s.DeleteCustomer("nunca-existio"))
}

func TestDeleteCustomer_FalloDeEscrituraRestauraNotas(t *testing.T) {
	customersKV := newMemKV()
	invoicesKV := newMemKV()
	s, err := records.Open(customersKV, invoicesKV, fixedOptions())
	require.NoError(t, err)
	c := mustCustomer(t, s, "Ana", "52998224725")
	mustInvoice(t, s, c.ID, refNow, "10")

	customersKV.failSet = errors.New("disco lleno")
	err = s.DeleteCustomer(c.ID)
	require.Error(t, err)

	_, err = s.GetCustomer(c.ID)
	assert.NoError(t, err, "el cliente sigue existiendo")
	assert.Len(t, s.ListInvoicesByCustomer(c.ID), 1, "sus notas se restauran")

	var persisted []records.InvoiceDocument
	require.NoError(t, json.Unmarshal(invoicesKV.data[records.InvoicesKey], &persisted))
	assert.Len(t, persisted, 1)
}

func TestCreateCustomer_FalloDeEscrituraNoCambiaMemoria(t *testing.T) {
	kv := newMemKV()
	s, err := records.Open(kv, newMemKV(), fixedOptions())
	require.NoError(t, err)

	kv.failSet = errors.New("solo lectura")
	_, err = s.CreateCustomer(records.CustomerInput{Kind: entity.KindIndividual, Name: "Ana", TaxID: "52998224725"})
	require.Error(t, err)
	assert.Empty(t, s.ListCustomers())
}

func TestSearchCustomers(t *testing.T) {
	s := openJSON(t, t.TempDir())
	mustCustomer(t, s, "Ana Souza", "52998224725")
	mustCustomer(t, s, "JOÃO Pereira", "11144477735")
	mustCustomer(t, s, "Carla", "39053344705")

	assert.Equal(t, s.ListCustomers(), s.SearchCustomers(""))
	assert.Equal(t, s.ListCustomers(), s.SearchCustomers("   "))

	names := func(cs []entity.Customer) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Ana Souza"}, names(s.SearchCustomers("ANA")))
	assert.Equal(t, []string{"JOÃO Pereira"}, names(s.SearchCustomers("joão")))
	assert.Equal(t, []string{"JOÃO Pereira"}, names(s.SearchCustomers("444777")))
	assert.Empty(t, s.SearchCustomers("zzz"))
}

func TestCreateInvoice_ClienteInexistente(t *testing.T) {
	s := openJSON(t, t.TempDir())
	_, err := s.CreateInvoice(records.InvoiceInput{CustomerID: "fantasma", DueDate: refNow})
	require.Error(t, err)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "customer", nf.Resource)
	assert.Empty(t, s.ListInvoices())
}

func TestCreateInvoice_SiemprePendienteYConJoin(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	inv := mustInvoice(t, s, c.ID, refNow.AddDate(0, 1, 0), "100")

	assert.Equal(t, entity.StatusPending, inv.Status)
	assert.Equal(t, "Ana", inv.CustomerName)
	assert.Equal(t, "52998224725", inv.CustomerTaxID)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "Camisa", inv.LineItems[0].Name)
	assert.True(t, inv.LineItems[0].Subtotal().Equal(decimal.NewFromInt(100)))

	byCustomer := s.ListInvoicesByCustomer(c.ID)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, inv.ID, byCustomer[0].ID)
}

func TestCreateInvoice_LineItemsEstructuradasYSerializadasSonIguales(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")

	fromString, err := s.CreateInvoice(records.InvoiceInput{
		CustomerID: c.ID,
		DueDate:    refNow,
		LineItems:  records.Serialized(`[{"name":"Calça","unitPrice":"89.90","quantity":"1"}]`),
	})
	require.NoError(t, err)
	fromItems, err := s.CreateInvoice(records.InvoiceInput{
		CustomerID: c.ID,
		DueDate:    refNow,
		LineItems: records.Items(entity.LineItem{
			Name:      "Calça",
			UnitPrice: decimal.RequireFromString("89.90"),
			Quantity:  decimal.NewFromInt(1),
		}),
	})
	require.NoError(t, err)

	assert.JSONEq(t, asJSON(t, fromItems.LineItems), asJSON(t, fromString.LineItems))

	snap := s.Snapshot()
	docs := *snap.Invoices
	require.Len(t, docs, 2)
	assert.Equal(t, docs[0].LineItems, docs[1].LineItems)
	assert.JSONEq(t, `[{"name":"Calça","unitPrice":89.9,"quantity":1}]`, docs[0].LineItems)
}

func TestCreateInvoice_LineItemsInvalidas(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")

	for _, raw := range []string{
		`{"name":"no es arreglo"}`,
		`[{"name":"x","unitPrice":-1,"quantity":1}]`,
		`[{"name":"x","unitPrice":1,"quantity":"abc"}]`,
	} {
		_, err := s.CreateInvoice(records.InvoiceInput{CustomerID: c.ID, DueDate: refNow, LineItems: records.Serialized(raw)})
		assert.True(t, errors.Is(err, domain.ErrValidation), raw)
	}
	assert.Empty(t, s.ListInvoices())
}

func TestDecodeLineItems_SoloClavesCanonicas(t *testing.T) {
	items, err := records.DecodeLineItems(`[{"nome":"Calça","valor":"89.90","quantidade":"1"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Name)
	assert.True(t, items[0].UnitPrice.IsZero())
	assert.True(t, items[0].Quantity.IsZero())
}

func TestUpdateInvoice_NoCambiaEstado(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	inv := mustInvoice(t, s, c.ID, refNow, "100")
	_, err := s.SetInvoiceStatus(inv.ID, entity.StatusPaid)
	require.NoError(t, err)

	total := decimal.RequireFromString("120.50")
	lines := records.Serialized(`[{"name":"Saia","unitPrice":120.5,"quantity":1}]`)
	got, err := s.UpdateInvoice(inv.ID, records.InvoicePatch{TotalAmount: &total, LineItems: &lines})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPaid, got.Status)
	assert.True(t, got.TotalAmount.Equal(total))
	assert.Equal(t, "Saia", got.LineItems[0].Name)
}

func TestUpdateInvoice_ClienteDestinoInexistente(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	inv := mustInvoice(t, s, c.ID, refNow, "100")

	other := "fantasma"
	_, err := s.UpdateInvoice(inv.ID, records.InvoicePatch{CustomerID: &other})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got, err := s.GetInvoice(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.CustomerID)
}

func TestSetInvoiceStatus(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	inv := mustInvoice(t, s, c.ID, refNow, "100")

	got, err := s.SetInvoiceStatus(inv.ID, entity.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)

	got, err = s.SetInvoiceStatus(inv.ID, entity.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status, "paid -> pending también es legal")

	_, err = s.SetInvoiceStatus(inv.ID, entity.StatusOverdue)
	assert.True(t, errors.Is(err, domain.ErrValidation), "overdue es derivado y no se guarda")

	_, err = s.SetInvoiceStatus("nope", entity.StatusPaid)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteInvoice(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	inv := mustInvoice(t, s, c.ID, refNow, "100")

	require.NoError(t, s.DeleteInvoice(inv.ID))
	require.NoError(t, s.DeleteInvoice(inv.ID))
	_, err := s.GetInvoice(inv.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListOverdue_UsaElReloj(t *testing.T) {
	s := openJSON(t, t.TempDir())
	c := mustCustomer(t, s, "Ana", "52998224725")
	vencida := mustInvoice(t, s, c.ID, refNow.AddDate(0, 0, -1), "100")
	mustInvoice(t, s, c.ID, refNow.AddDate(0, 0, 1), "100")
	paga := mustInvoice(t, s, c.ID, refNow.AddDate(0, 0, -5), "100")
	_, err := s.SetInvoiceStatus(paga.ID, entity.StatusPaid)
	require.NoError(t, err)

	overdue := s.ListOverdue()
	require.Len(t, overdue, 1)
	assert.Equal(t, vencida.ID, overdue[0].ID)
	assert.Equal(t, "Ana", overdue[0].CustomerName)
}

func TestStore_PersisteEntreAperturas(t *testing.T) {
	dir := t.TempDir()
	s := openJSON(t, dir)
	c := mustCustomer(t, s, "Ana", "52998224725")
	mustInvoice(t, s, c.ID, refNow, "99.90")
	wantCustomers := asJSON(t, s.ListCustomers())
	wantInvoices := asJSON(t, s.ListInvoices())

	reopened := openJSON(t, dir)
	assert.JSONEq(t, wantCustomers, asJSON(t, reopened.ListCustomers()))
	assert.JSONEq(t, wantInvoices, asJSON(t, reopened.ListInvoices()))
}
