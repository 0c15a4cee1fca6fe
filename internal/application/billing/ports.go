package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
)

// RecordStore operaciones del almacén que usan los casos de uso de facturación.
type RecordStore interface {
	Now() time.Time

	ListCustomers() []entity.Customer
	SearchCustomers(term string) []entity.Customer
	GetCustomer(id string) (entity.Customer, error)
	CreateCustomer(in records.CustomerInput) (entity.Customer, error)
	UpdateCustomer(id string, p records.CustomerPatch) (entity.Customer, error)
	DeleteCustomer(id string) error

	ListInvoices() []entity.Invoice
	GetInvoice(id string) (entity.Invoice, error)
	ListInvoicesByCustomer(customerID string) []entity.Invoice
	ListOverdue() []entity.Invoice
	CreateInvoice(in records.InvoiceInput) (entity.Invoice, error)
	UpdateInvoice(id string, p records.InvoicePatch) (entity.Invoice, error)
	DeleteInvoice(id string) error
	SetInvoiceStatus(id string, status entity.InvoiceStatus) (entity.Invoice, error)
}

var _ RecordStore = (*records.Store)(nil)

// InvoicePDFGenerator genera la representación imprimible de una nota.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice entity.Invoice, customer entity.Customer) ([]byte, error)
}

// OverdueObserver recibe el total de notas vencidas tras cada cambio (métricas).
type OverdueObserver interface {
	SetOverdue(count int, amount decimal.Decimal)
}

// refreshOverdue recalcula las vencidas al instante del reloj y las publica.
func refreshOverdue(store RecordStore, obs OverdueObserver) {
	if obs == nil {
		return
	}
	overdue := store.ListOverdue()
	amount := decimal.Zero
	for _, inv := range overdue {
		amount = amount.Add(inv.TotalAmount)
	}
	obs.SetOverdue(len(overdue), amount)
}
