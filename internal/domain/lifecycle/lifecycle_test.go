package lifecycle_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/internal/domain/lifecycle"
)

var refNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func invoice(id, customerID string, status entity.InvoiceStatus, due time.Time, total int64) entity.Invoice {
	return entity.Invoice{
		ID:          id,
		CustomerID:  customerID,
		DueDate:     due,
		Status:      status,
		TotalAmount: decimal.NewFromInt(total),
	}
}

func TestEffectiveStatus_PendienteVencidaEsOverdue(t *testing.T) {
	inv := invoice("n1", "c1", entity.StatusPending, refNow.AddDate(0, 0, -1), 100)

	assert.True(t, lifecycle.IsOverdue(inv, refNow))
	assert.Equal(t, entity.StatusOverdue, lifecycle.EffectiveStatus(inv, refNow))
}

func TestEffectiveStatus_PagaNuncaVencida(t *testing.T) {
	inv := invoice("n1", "c1", entity.StatusPaid, refNow.AddDate(0, 0, -1), 100)

	assert.False(t, lifecycle.IsOverdue(inv, refNow))
	assert.Equal(t, entity.StatusPaid, lifecycle.EffectiveStatus(inv, refNow))
}

func TestEffectiveStatus_PendienteNoVencida(t *testing.T) {
	inv := invoice("n1", "c1", entity.StatusPending, refNow.AddDate(0, 0, 1), 100)
	assert.Equal(t, entity.StatusPending, lifecycle.EffectiveStatus(inv, refNow))

	// Vence exactamente ahora: todavía no está vencida (dueDate < now es estricto).
	inv.DueDate = refNow
	assert.False(t, lifecycle.IsOverdue(inv, refNow))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, lifecycle.CanTransition(entity.StatusPending, entity.StatusPaid))
	assert.True(t, lifecycle.CanTransition(entity.StatusPaid, entity.StatusPending))
	assert.True(t, lifecycle.CanTransition(entity.StatusPaid, entity.StatusPaid))
	assert.False(t, lifecycle.CanTransition(entity.StatusPending, entity.StatusOverdue))
	assert.False(t, lifecycle.CanTransition(entity.StatusPending, "cancelada"))
}

func TestOverdueByCustomer_AgrupaSoloVencidas(t *testing.T) {
	past := refNow.AddDate(0, 0, -3)
	future := refNow.AddDate(0, 0, 3)
	invoices := []entity.Invoice{
		invoice("n1", "c1", entity.StatusPending, past, 10),
		invoice("n2", "c1", entity.StatusPending, past, 20),
		invoice("n3", "c1", entity.StatusPaid, past, 30),
		invoice("n4", "c2", entity.StatusPending, future, 40),
		invoice("n5", "c3", entity.StatusPending, past, 50),
	}

	got := lifecycle.OverdueByCustomer(invoices, refNow)

	require.Len(t, got, 2)
	require.Len(t, got["c1"], 2)
	assert.Equal(t, "n1", got["c1"][0].ID)
	assert.Equal(t, "n2", got["c1"][1].ID)
	require.Len(t, got["c3"], 1)
	_, ok := got["c2"]
	assert.False(t, ok, "c2 no tiene notas vencidas")

	// El mismo conjunto un mes antes no tiene vencidas.
	assert.Empty(t, lifecycle.OverdueByCustomer(invoices, refNow.AddDate(0, -1, 0)))
}

func TestSummarizeByCustomer(t *testing.T) {
	past := refNow.AddDate(0, 0, -3)
	future := refNow.AddDate(0, 0, 3)
	invoices := []entity.Invoice{
		invoice("n1", "c1", entity.StatusPending, past, 10),
		invoice("n2", "c1", entity.StatusPending, future, 20),
		invoice("n3", "c1", entity.StatusPaid, past, 30),
	}

	s := lifecycle.Summarize("c1", invoices, refNow)

	assert.Equal(t, 3, s.InvoiceCount)
	assert.Equal(t, 2, s.PendingCount)
	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, 1, s.PaidCount)
	assert.True(t, s.Outstanding.Equal(decimal.NewFromInt(30)), "outstanding = %s", s.Outstanding)
	assert.True(t, s.OverdueAmount.Equal(decimal.NewFromInt(10)), "overdue = %s", s.OverdueAmount)

	empty := lifecycle.Summarize("sin-notas", invoices, refNow)
	assert.Equal(t, 0, empty.InvoiceCount)
	assert.True(t, empty.Outstanding.IsZero())
}
