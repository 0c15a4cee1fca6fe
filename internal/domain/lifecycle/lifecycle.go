// Package lifecycle deriva el estado efectivo de las notas (pending / overdue / paid)
// y los agregados por cliente. Nada de lo calculado aquí se persiste.
package lifecycle

import (
	"time"

	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IsOverdue es true si la nota está pendiente y su vencimiento ya pasó.
func IsOverdue(inv entity.Invoice, now time.Time) bool {
	return inv.Status == entity.StatusPending && inv.DueDate.Before(now)
}

// EffectiveStatus devuelve el estado a mostrar. Una nota paga nunca aparece como vencida.
func EffectiveStatus(inv entity.Invoice, now time.Time) entity.InvoiceStatus {
	if IsOverdue(inv, now) {
		return entity.StatusOverdue
	}
	return inv.Status
}

// CanTransition reporta si la transición de estado es legal.
// pending <-> paid en ambos sentidos; re-entrar al mismo estado también es válido.
func CanTransition(from, to entity.InvoiceStatus) bool {
	return from.Stored() && to.Stored()
}

// OverdueByCustomer agrupa por CustomerID las notas vencidas a la fecha now.
// Debe recalcularse cada vez que cambian las notas o el instante de referencia.
func OverdueByCustomer(invoices []entity.Invoice, now time.Time) map[string][]entity.Invoice {
	out := make(map[string][]entity.Invoice)
	for _, inv := range invoices {
		if IsOverdue(inv, now) {
			out[inv.CustomerID] = append(out[inv.CustomerID], inv)
		}
	}
	return out
}

// Summary agregados de cobranza de un cliente.
type Summary struct {
	CustomerID    string
	InvoiceCount  int
	PendingCount  int // incluye las vencidas
	OverdueCount  int
	PaidCount     int
	Outstanding   decimal.Decimal // suma de totales pendientes
	OverdueAmount decimal.Decimal // suma de totales vencidos
}

// SummarizeByCustomer calcula un Summary por cliente presente en invoices.
func SummarizeByCustomer(invoices []entity.Invoice, now time.Time) map[string]Summary {
	out := make(map[string]Summary)
	for _, inv := range invoices {
		s, ok := out[inv.CustomerID]
		if !ok {
			s = Summary{CustomerID: inv.CustomerID, Outstanding: decimal.Zero, OverdueAmount: decimal.Zero}
		}
		s.InvoiceCount++
		switch inv.Status {
		case entity.StatusPaid:
			s.PaidCount++
		case entity.StatusPending:
			s.PendingCount++
			s.Outstanding = s.Outstanding.Add(inv.TotalAmount)
			if IsOverdue(inv, now) {
				s.OverdueCount++
				s.OverdueAmount = s.OverdueAmount.Add(inv.TotalAmount)
			}
		}
		out[inv.CustomerID] = s
	}
	return out
}

// Summarize calcula el Summary de un solo cliente; sin notas devuelve ceros.
func Summarize(customerID string, invoices []entity.Invoice, now time.Time) Summary {
	if s, ok := SummarizeByCustomer(invoices, now)[customerID]; ok {
		return s
	}
	return Summary{CustomerID: customerID, Outstanding: decimal.Zero, OverdueAmount: decimal.Zero}
}
