package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado persistido de una nota. "overdue" nunca se guarda.
type InvoiceStatus string

// Estados de la nota.
const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue" // derivado en lectura: pending y vencida
)

// Stored indica si el estado puede persistirse (pending o paid).
func (s InvoiceStatus) Stored() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice representa una nota de venta de un cliente.
type Invoice struct {
	ID           string
	CustomerID   string
	PurchaseDate time.Time
	DueDate      time.Time
	LineItems    []LineItem
	TotalAmount  decimal.Decimal // calculado por el llamador; el store no lo recalcula
	Status       InvoiceStatus

	// Join de lectura con el cliente dueño; no se persiste.
	CustomerName  string
	CustomerTaxID string
}

// LineItem representa una línea de producto de la nota.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// Subtotal devuelve UnitPrice × Quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}

// SumLineItems suma los subtotales de las líneas.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
