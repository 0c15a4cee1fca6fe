package records

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
)

// CustomerDocument forma persistida de un cliente (clave "customers").
type CustomerDocument struct {
	ID           string              `json:"id"`
	Kind         entity.CustomerKind `json:"kind"`
	Name         string              `json:"name"`
	TaxID        string              `json:"taxId"`
	Address      string              `json:"address"`
	Phone        string              `json:"phone"`
	RegisteredAt time.Time           `json:"registeredAt"`
}

// InvoiceDocument forma persistida de una nota (clave "invoices").
// LineItems guarda el arreglo canónico serializado como string.
type InvoiceDocument struct {
	ID           string               `json:"id"`
	CustomerID   string               `json:"customerId"`
	PurchaseDate time.Time            `json:"purchaseDate"`
	DueDate      time.Time            `json:"dueDate"`
	LineItems    string               `json:"lineItems"`
	TotalAmount  decimal.Decimal      `json:"totalAmount"`
	Status       entity.InvoiceStatus `json:"status"`
}

func (d CustomerDocument) validate() error {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return domain.Invalid("id", "requerido")
	case strings.TrimSpace(d.Name) == "":
		return domain.Invalid("name", "requerido")
	case strings.TrimSpace(d.TaxID) == "":
		return domain.Invalid("taxId", "requerido")
	case !d.Kind.Valid():
		return domain.Invalid("kind", "debe ser individual u organization")
	}
	return nil
}

func (d InvoiceDocument) validate() error {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return domain.Invalid("id", "requerido")
	case strings.TrimSpace(d.CustomerID) == "":
		return domain.Invalid("customerId", "requerido")
	case !d.Status.Stored():
		return domain.Invalid("status", "debe ser pending o paid")
	}
	_, err := DecodeLineItems(d.LineItems)
	return err
}

func (d CustomerDocument) toEntity() entity.Customer {
	return entity.Customer{
		ID:           d.ID,
		Kind:         d.Kind,
		Name:         d.Name,
		TaxID:        d.TaxID,
		Address:      d.Address,
		Phone:        d.Phone,
		RegisteredAt: d.RegisteredAt,
	}
}

// toEntity decodifica las líneas y completa el join con el cliente dueño si existe.
// Si las líneas son ilegibles la nota se devuelve con la lista vacía junto al error.
func (d InvoiceDocument) toEntity(owner *CustomerDocument) (entity.Invoice, error) {
	items, err := DecodeLineItems(d.LineItems)
	if err != nil {
		items = []entity.LineItem{}
	}
	inv := entity.Invoice{
		ID:           d.ID,
		CustomerID:   d.CustomerID,
		PurchaseDate: d.PurchaseDate,
		DueDate:      d.DueDate,
		LineItems:    items,
		TotalAmount:  d.TotalAmount,
		Status:       d.Status,
	}
	if owner != nil {
		inv.CustomerName = owner.Name
		inv.CustomerTaxID = owner.TaxID
	}
	return inv, err
}

func normalizeCustomer(d CustomerDocument) CustomerDocument {
	d.RegisteredAt = d.RegisteredAt.UTC()
	return d
}

func normalizeInvoice(d InvoiceDocument) (InvoiceDocument, error) {
	lines, err := Serialized(d.LineItems).Normalize()
	if err != nil {
		return d, err
	}
	d.LineItems = lines
	d.PurchaseDate = d.PurchaseDate.UTC()
	d.DueDate = d.DueDate.UTC()
	d.TotalAmount = canonicalDecimal(d.TotalAmount)
	return d, nil
}
