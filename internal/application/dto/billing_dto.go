package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/application/records"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Kind    string `json:"kind"` // individual | organization
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id; los campos ausentes no cambian.
type UpdateCustomerRequest struct {
	Kind    *string `json:"kind,omitempty"`
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas, con los campos de presentación ya formateados.
type CustomerResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	TaxID          string    `json:"tax_id"`
	TaxIDFormatted string    `json:"tax_id_formatted"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	PhoneFormatted string    `json:"phone_formatted,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// CustomerSummaryResponse agregados de cobranza de un cliente.
type CustomerSummaryResponse struct {
	CustomerID             string          `json:"customer_id"`
	InvoiceCount           int             `json:"invoice_count"`
	PendingCount           int             `json:"pending_count"`
	OverdueCount           int             `json:"overdue_count"`
	PaidCount              int             `json:"paid_count"`
	Outstanding            decimal.Decimal `json:"outstanding"`
	OutstandingFormatted   string          `json:"outstanding_formatted"`
	OverdueAmount          decimal.Decimal `json:"overdue_amount"`
	OverdueAmountFormatted string          `json:"overdue_amount_formatted"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Las fechas aceptan "2024-07-01" o RFC 3339.
// LineItems acepta un arreglo o un string con el arreglo serializado.
// Si TotalAmount no viene se calcula como la suma de las líneas.
type CreateInvoiceRequest struct {
	CustomerID   string                   `json:"customer_id"`
	PurchaseDate Date                     `json:"purchase_date"`
	DueDate      Date                     `json:"due_date"`
	LineItems    records.LineItemsPayload `json:"line_items"`
	TotalAmount  *decimal.Decimal         `json:"total_amount,omitempty"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id; los campos ausentes no cambian.
// El estado no se modifica aquí: ver PATCH /api/invoices/:id/status.
type UpdateInvoiceRequest struct {
	CustomerID   *string                   `json:"customer_id,omitempty"`
	PurchaseDate *Date                     `json:"purchase_date,omitempty"`
	DueDate      *Date                     `json:"due_date,omitempty"`
	LineItems    *records.LineItemsPayload `json:"line_items,omitempty"`
	TotalAmount  *decimal.Decimal          `json:"total_amount,omitempty"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"` // pending | paid
}

// LineItemResponse línea de producto en la respuesta.
type LineItemResponse struct {
	Name              string          `json:"name"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          decimal.Decimal `json:"quantity"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	SubtotalFormatted string          `json:"subtotal_formatted"`
}

// InvoiceResponse nota con sus líneas, el join del cliente y el estado efectivo.
type InvoiceResponse struct {
	ID                    string             `json:"id"`
	CustomerID            string             `json:"customer_id"`
	CustomerName          string             `json:"customer_name,omitempty"`
	CustomerTaxID         string             `json:"customer_tax_id,omitempty"`
	PurchaseDate          time.Time          `json:"purchase_date"`
	PurchaseDateFormatted string             `json:"purchase_date_formatted"`
	DueDate               time.Time          `json:"due_date"`
	DueDateFormatted      string             `json:"due_date_formatted"`
	LineItems             []LineItemResponse `json:"line_items"`
	TotalAmount           decimal.Decimal    `json:"total_amount"`
	TotalFormatted        string             `json:"total_formatted"`
	Status                string             `json:"status"`           // persistido: pending | paid
	EffectiveStatus       string             `json:"effective_status"` // pending | paid | overdue
}

// OverdueResponse notas vencidas agrupadas por cliente.
type OverdueResponse struct {
	AsOf       time.Time           `json:"as_of"`
	ByCustomer map[string][]string `json:"by_customer"` // customer_id -> invoice ids
	Invoices   []InvoiceResponse   `json:"invoices"`
}
