package billing

import (
	"time"

	"github.com/jhoicas/gestor-notas/internal/application/dto"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/internal/domain/lifecycle"
	"github.com/jhoicas/gestor-notas/pkg/format"
)

func toCustomerResponse(c entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:             c.ID,
		Kind:           string(c.Kind),
		Name:           c.Name,
		TaxID:          c.TaxID,
		TaxIDFormatted: format.TaxID(c.TaxID, c.Kind),
		Address:        c.Address,
		Phone:          c.Phone,
		PhoneFormatted: format.Phone(c.Phone),
		RegisteredAt:   c.RegisteredAt,
	}
}

func toCustomerResponses(list []entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out
}

func toInvoiceResponse(inv entity.Invoice, now time.Time) dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(inv.LineItems))
	for _, it := range inv.LineItems {
		sub := it.Subtotal()
		items = append(items, dto.LineItemResponse{
			Name:              it.Name,
			UnitPrice:         it.UnitPrice,
			Quantity:          it.Quantity,
			Subtotal:          sub,
			SubtotalFormatted: format.Currency(sub),
		})
	}
	return dto.InvoiceResponse{
		ID:                    inv.ID,
		CustomerID:            inv.CustomerID,
		CustomerName:          inv.CustomerName,
		CustomerTaxID:         inv.CustomerTaxID,
		PurchaseDate:          inv.PurchaseDate,
		PurchaseDateFormatted: format.Date(inv.PurchaseDate),
		DueDate:               inv.DueDate,
		DueDateFormatted:      format.Date(inv.DueDate),
		LineItems:             items,
		TotalAmount:           inv.TotalAmount,
		TotalFormatted:        format.Currency(inv.TotalAmount),
		Status:                string(inv.Status),
		EffectiveStatus:       string(lifecycle.EffectiveStatus(inv, now)),
	}
}

func toInvoiceResponses(list []entity.Invoice, now time.Time) []dto.InvoiceResponse {
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, now))
	}
	return out
}

func toSummaryResponse(s lifecycle.Summary) dto.CustomerSummaryResponse {
	return dto.CustomerSummaryResponse{
		CustomerID:             s.CustomerID,
		InvoiceCount:           s.InvoiceCount,
		PendingCount:           s.PendingCount,
		OverdueCount:           s.OverdueCount,
		PaidCount:              s.PaidCount,
		Outstanding:            s.Outstanding,
		OutstandingFormatted:   format.Currency(s.Outstanding),
		OverdueAmount:          s.OverdueAmount,
		OverdueAmountFormatted: format.Currency(s.OverdueAmount),
	}
}
