package records

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/internal/domain/lifecycle"
)

// InvoiceInput datos de alta de una nota. TotalAmount lo calcula el llamador.
type InvoiceInput struct {
	CustomerID   string
	PurchaseDate time.Time
	DueDate      time.Time
	LineItems    LineItemsPayload
	TotalAmount  decimal.Decimal
}

// InvoicePatch actualización parcial. El estado no se modifica aquí: ver SetInvoiceStatus.
type InvoicePatch struct {
	CustomerID   *string
	PurchaseDate *time.Time
	DueDate      *time.Time
	LineItems    *LineItemsPayload
	TotalAmount  *decimal.Decimal
}

// ListInvoices devuelve todas las notas con el nombre y documento del cliente dueño.
// Si el cliente no existe los campos del join quedan vacíos.
func (s *Store) ListInvoices() []entity.Invoice {
	owners := s.customersByID()
	out := make([]entity.Invoice, 0, len(s.invoices))
	for _, d := range s.invoices {
		out = append(out, s.toInvoice(d, owners))
	}
	return out
}

// ListInvoicesByCustomer devuelve las notas del cliente, sin join.
func (s *Store) ListInvoicesByCustomer(customerID string) []entity.Invoice {
	out := make([]entity.Invoice, 0)
	for _, d := range s.invoices {
		if d.CustomerID == customerID {
			out = append(out, s.toInvoice(d, nil))
		}
	}
	return out
}

// GetInvoice busca una nota por ID, con join.
func (s *Store) GetInvoice(id string) (entity.Invoice, error) {
	i := s.invoiceIndex(id)
	if i < 0 {
		return entity.Invoice{}, domain.NotFound("invoice", id)
	}
	return s.toInvoice(s.invoices[i], s.customersByID()), nil
}

// ListOverdue devuelve las notas vencidas al instante del reloj, con join.
func (s *Store) ListOverdue() []entity.Invoice {
	now := s.now()
	out := make([]entity.Invoice, 0)
	for _, inv := range s.ListInvoices() {
		if lifecycle.IsOverdue(inv, now) {
			out = append(out, inv)
		}
	}
	return out
}

// CreateInvoice persiste una nota nueva. El estado inicial es siempre pending.
func (s *Store) CreateInvoice(in InvoiceInput) (entity.Invoice, error) {
	if s.customerIndex(in.CustomerID) < 0 {
		if in.CustomerID == "" {
			return entity.Invoice{}, s.observe("invoice", "create", domain.Invalid("customerId", "requerido"))
		}
		return entity.Invoice{}, s.observe("invoice", "create", domain.NotFound("customer", in.CustomerID))
	}
	lines, err := in.LineItems.Normalize()
	if err != nil {
		return entity.Invoice{}, s.observe("invoice", "create", err)
	}
	doc, err := normalizeInvoice(InvoiceDocument{
		ID:           s.newID(),
		CustomerID:   in.CustomerID,
		PurchaseDate: in.PurchaseDate,
		DueDate:      in.DueDate,
		LineItems:    lines,
		TotalAmount:  in.TotalAmount,
		Status:       entity.StatusPending,
	})
	if err == nil {
		err = doc.validate()
	}
	if err != nil {
		return entity.Invoice{}, s.observe("invoice", "create", err)
	}

	next := make([]InvoiceDocument, len(s.invoices), len(s.invoices)+1)
	copy(next, s.invoices)
	next = append(next, doc)
	if err := s.saveInvoices(next); err != nil {
		return entity.Invoice{}, s.observe("invoice", "create", err)
	}
	s.observe("invoice", "create", nil)
	s.log.Info().Str("invoice_id", doc.ID).Str("customer_id", doc.CustomerID).Msg("nota creada")
	return s.toInvoice(doc, s.customersByID()), nil
}

// UpdateInvoice aplica el patch sin tocar el estado.
func (s *Store) UpdateInvoice(id string, p InvoicePatch) (entity.Invoice, error) {
	i := s.invoiceIndex(id)
	if i < 0 {
		return entity.Invoice{}, s.observe("invoice", "update", domain.NotFound("invoice", id))
	}
	doc := s.invoices[i]
	if p.CustomerID != nil && *p.CustomerID != doc.CustomerID {
		if s.customerIndex(*p.CustomerID) < 0 {
			return entity.Invoice{}, s.observe("invoice", "update", domain.NotFound("customer", *p.CustomerID))
		}
		doc.CustomerID = *p.CustomerID
	}
	if p.PurchaseDate != nil {
		doc.PurchaseDate = *p.PurchaseDate
	}
	if p.DueDate != nil {
		doc.DueDate = *p.DueDate
	}
	if p.LineItems != nil {
		lines, err := p.LineItems.Normalize()
		if err != nil {
			return entity.Invoice{}, s.observe("invoice", "update", err)
		}
		doc.LineItems = lines
	}
	if p.TotalAmount != nil {
		doc.TotalAmount = *p.TotalAmount
	}
	doc, err := normalizeInvoice(doc)
	if err == nil {
		err = doc.validate()
	}
	if err != nil {
		return entity.Invoice{}, s.observe("invoice", "update", err)
	}

	next := make([]InvoiceDocument, len(s.invoices))
	copy(next, s.invoices)
	next[i] = doc
	if err := s.saveInvoices(next); err != nil {
		return entity.Invoice{}, s.observe("invoice", "update", err)
	}
	s.observe("invoice", "update", nil)
	return s.toInvoice(doc, s.customersByID()), nil
}

// DeleteInvoice elimina la nota. Borrar un ID inexistente no es error.
func (s *Store) DeleteInvoice(id string) error {
	i := s.invoiceIndex(id)
	if i < 0 {
		return nil
	}
	next := make([]InvoiceDocument, 0, len(s.invoices)-1)
	next = append(next, s.invoices[:i]...)
	next = append(next, s.invoices[i+1:]...)
	if err := s.saveInvoices(next); err != nil {
		return s.observe("invoice", "delete", err)
	}
	s.observe("invoice", "delete", nil)
	s.log.Info().Str("invoice_id", id).Msg("nota eliminada")
	return nil
}

// SetInvoiceStatus cambia el estado persistido. Solo pending y paid son válidos;
// overdue es derivado y se rechaza.
func (s *Store) SetInvoiceStatus(id string, status entity.InvoiceStatus) (entity.Invoice, error) {
	i := s.invoiceIndex(id)
	if i < 0 {
		return entity.Invoice{}, s.observe("invoice", "status", domain.NotFound("invoice", id))
	}
	doc := s.invoices[i]
	if !lifecycle.CanTransition(doc.Status, status) {
		return entity.Invoice{}, s.observe("invoice", "status", domain.Invalid("status", "debe ser pending o paid"))
	}
	doc.Status = status

	next := make([]InvoiceDocument, len(s.invoices))
	copy(next, s.invoices)
	next[i] = doc
	if err := s.saveInvoices(next); err != nil {
		return entity.Invoice{}, s.observe("invoice", "status", err)
	}
	s.observe("invoice", "status", nil)
	s.log.Info().Str("invoice_id", id).Str("status", string(status)).Msg("estado de nota actualizado")
	return s.toInvoice(doc, s.customersByID()), nil
}

func (s *Store) customersByID() map[string]*CustomerDocument {
	m := make(map[string]*CustomerDocument, len(s.customers))
	for i := range s.customers {
		m[s.customers[i].ID] = &s.customers[i]
	}
	return m
}

// toInvoice convierte el documento; owners nil omite el join.
func (s *Store) toInvoice(d InvoiceDocument, owners map[string]*CustomerDocument) entity.Invoice {
	var owner *CustomerDocument
	if owners != nil {
		owner = owners[d.CustomerID]
	}
	inv, err := d.toEntity(owner)
	if err != nil {
		s.log.Warn().Err(err).Str("invoice_id", d.ID).Msg("líneas de producto ilegibles, se devuelven vacías")
	}
	return inv
}
