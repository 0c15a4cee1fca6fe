package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/application/dto"
	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/internal/domain/lifecycle"
)

// InvoiceUseCase casos de uso para notas: calcula el total cuando no viene informado y
// agrega el estado efectivo a cada respuesta.
type InvoiceUseCase struct {
	store    RecordStore
	observer OverdueObserver
}

// NewInvoiceUseCase construye el caso de uso. observer puede ser nil.
func NewInvoiceUseCase(store RecordStore, observer OverdueObserver) *InvoiceUseCase {
	return &InvoiceUseCase{store: store, observer: observer}
}

// List lista todas las notas con el join del cliente.
func (uc *InvoiceUseCase) List() []dto.InvoiceResponse {
	return toInvoiceResponses(uc.store.ListInvoices(), uc.store.Now())
}

// Get devuelve una nota.
func (uc *InvoiceUseCase) Get(id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	out := toInvoiceResponse(inv, uc.store.Now())
	return &out, nil
}

// Create crea una nota en estado pending.
func (uc *InvoiceUseCase) Create(in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.DueDate.IsZero() {
		return nil, domain.Invalid("due_date", "requerida")
	}
	purchase := in.PurchaseDate.Time
	if purchase.IsZero() {
		purchase = uc.store.Now()
	}
	lines, total, err := resolveLines(in.LineItems, in.TotalAmount)
	if err != nil {
		return nil, err
	}
	inv, err := uc.store.CreateInvoice(records.InvoiceInput{
		CustomerID:   in.CustomerID,
		PurchaseDate: purchase,
		DueDate:      in.DueDate.Time,
		LineItems:    lines,
		TotalAmount:  total,
	})
	if err != nil {
		return nil, err
	}
	refreshOverdue(uc.store, uc.observer)
	out := toInvoiceResponse(inv, uc.store.Now())
	return &out, nil
}

// Update aplica una actualización parcial. Si cambian las líneas y no viene el total, se recalcula.
func (uc *InvoiceUseCase) Update(id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	patch := records.InvoicePatch{
		CustomerID:   in.CustomerID,
		PurchaseDate: in.PurchaseDate.TimePtr(),
		DueDate:      in.DueDate.TimePtr(),
		TotalAmount:  in.TotalAmount,
	}
	if in.DueDate != nil && in.DueDate.IsZero() {
		return nil, domain.Invalid("due_date", "requerida")
	}
	if in.LineItems != nil {
		lines, total, err := resolveLines(*in.LineItems, in.TotalAmount)
		if err != nil {
			return nil, err
		}
		patch.LineItems = &lines
		patch.TotalAmount = &total
	} else if in.TotalAmount != nil && in.TotalAmount.IsNegative() {
		return nil, domain.Invalid("total_amount", "no puede ser negativo")
	}
	inv, err := uc.store.UpdateInvoice(id, patch)
	if err != nil {
		return nil, err
	}
	refreshOverdue(uc.store, uc.observer)
	out := toInvoiceResponse(inv, uc.store.Now())
	return &out, nil
}

// Delete elimina la nota.
func (uc *InvoiceUseCase) Delete(id string) error {
	if err := uc.store.DeleteInvoice(id); err != nil {
		return err
	}
	refreshOverdue(uc.store, uc.observer)
	return nil
}

// SetStatus cambia el estado persistido (pending | paid).
func (uc *InvoiceUseCase) SetStatus(id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.SetInvoiceStatus(id, entity.InvoiceStatus(in.Status))
	if err != nil {
		return nil, err
	}
	refreshOverdue(uc.store, uc.observer)
	out := toInvoiceResponse(inv, uc.store.Now())
	return &out, nil
}

// Overdue agrupa por cliente las notas vencidas al instante actual.
func (uc *InvoiceUseCase) Overdue() dto.OverdueResponse {
	now := uc.store.Now()
	overdue := uc.store.ListOverdue()
	byCustomer := make(map[string][]string)
	for customerID, list := range lifecycle.OverdueByCustomer(overdue, now) {
		ids := make([]string, 0, len(list))
		for _, inv := range list {
			ids = append(ids, inv.ID)
		}
		byCustomer[customerID] = ids
	}
	refreshOverdue(uc.store, uc.observer)
	return dto.OverdueResponse{
		AsOf:       now.UTC().Truncate(time.Second),
		ByCustomer: byCustomer,
		Invoices:   toInvoiceResponses(overdue, now),
	}
}

// RefreshMetrics vuelve a publicar el total de vencidas (por ejemplo tras restaurar un snapshot).
func (uc *InvoiceUseCase) RefreshMetrics() {
	refreshOverdue(uc.store, uc.observer)
}

// resolveLines normaliza las líneas y devuelve el total informado o, si falta, la suma de subtotales.
func resolveLines(payload records.LineItemsPayload, total *decimal.Decimal) (records.LineItemsPayload, decimal.Decimal, error) {
	lines, err := payload.Normalize()
	if err != nil {
		return payload, decimal.Zero, err
	}
	if total != nil {
		if total.IsNegative() {
			return payload, decimal.Zero, domain.Invalid("total_amount", "no puede ser negativo")
		}
		return records.Serialized(lines), *total, nil
	}
	items, err := records.DecodeLineItems(lines)
	if err != nil {
		return payload, decimal.Zero, err
	}
	return records.Serialized(lines), entity.SumLineItems(items), nil
}
