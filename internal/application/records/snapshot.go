package records

import (
	"github.com/jhoicas/gestor-notas/internal/domain"
)

// Snapshot copia completa de ambas colecciones. Una colección nil significa "ausente":
// al restaurar se deja intacta.
type Snapshot struct {
	Customers *[]CustomerDocument `json:"customers,omitempty"`
	Invoices  *[]InvoiceDocument  `json:"invoices,omitempty"`
}

// Snapshot devuelve una copia del estado persistido actual.
func (s *Store) Snapshot() Snapshot {
	customers := make([]CustomerDocument, len(s.customers))
	copy(customers, s.customers)
	invoices := make([]InvoiceDocument, len(s.invoices))
	copy(invoices, s.invoices)
	return Snapshot{Customers: &customers, Invoices: &invoices}
}

// Restore reemplaza cada colección presente en snap. Todos los registros se validan antes de
// escribir nada; si alguno es inválido el almacén no cambia.
func (s *Store) Restore(snap Snapshot) error {
	var customers []CustomerDocument
	if snap.Customers != nil {
		customers = make([]CustomerDocument, 0, len(*snap.Customers))
		seen := make(map[string]struct{}, len(*snap.Customers))
		for _, d := range *snap.Customers {
			if err := d.validate(); err != nil {
				return s.observe("snapshot", "restore", err)
			}
			if _, dup := seen[d.ID]; dup {
				return s.observe("snapshot", "restore", domain.Invalid("customers.id", "duplicado: "+d.ID))
			}
			seen[d.ID] = struct{}{}
			customers = append(customers, normalizeCustomer(d))
		}
	}

	var invoices []InvoiceDocument
	if snap.Invoices != nil {
		invoices = make([]InvoiceDocument, 0, len(*snap.Invoices))
		seen := make(map[string]struct{}, len(*snap.Invoices))
		for _, d := range *snap.Invoices {
			if err := d.validate(); err != nil {
				return s.observe("snapshot", "restore", err)
			}
			if _, dup := seen[d.ID]; dup {
				return s.observe("snapshot", "restore", domain.Invalid("invoices.id", "duplicado: "+d.ID))
			}
			seen[d.ID] = struct{}{}
			n, err := normalizeInvoice(d)
			if err != nil {
				return s.observe("snapshot", "restore", err)
			}
			invoices = append(invoices, n)
		}
	}

	if snap.Customers != nil {
		if err := s.saveCustomers(customers); err != nil {
			return s.observe("snapshot", "restore", err)
		}
	}
	if snap.Invoices != nil {
		if err := s.saveInvoices(invoices); err != nil {
			return s.observe("snapshot", "restore", err)
		}
	}
	s.observe("snapshot", "restore", nil)
	s.log.Info().
		Bool("customers", snap.Customers != nil).
		Bool("invoices", snap.Invoices != nil).
		Int("customer_count", len(s.customers)).
		Int("invoice_count", len(s.invoices)).
		Msg("snapshot restaurado")
	return nil
}
