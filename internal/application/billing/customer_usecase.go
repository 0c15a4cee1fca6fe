package billing

import (
	"strings"

	"github.com/jhoicas/gestor-notas/internal/application/dto"
	"github.com/jhoicas/gestor-notas/internal/application/records"
	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/internal/domain/lifecycle"
	"github.com/jhoicas/gestor-notas/pkg/taxid"
	"github.com/jhoicas/gestor-notas/pkg/validator"
)

// CustomerUseCase casos de uso para clientes. Valida el documento y el teléfono antes de
// delegar en el almacén, que solo exige los campos requeridos.
type CustomerUseCase struct {
	store    RecordStore
	observer OverdueObserver
}

// NewCustomerUseCase construye el caso de uso. observer puede ser nil.
func NewCustomerUseCase(store RecordStore, observer OverdueObserver) *CustomerUseCase {
	return &CustomerUseCase{store: store, observer: observer}
}

// List lista los clientes; con q no vacío filtra por nombre o documento.
func (uc *CustomerUseCase) List(q string) []dto.CustomerResponse {
	return toCustomerResponses(uc.store.SearchCustomers(q))
}

// Get devuelve un cliente.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	c, err := uc.store.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Create valida y crea un cliente. El documento y el teléfono se guardan solo con dígitos.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	kind := entity.CustomerKind(in.Kind)
	if err := validateCustomer(kind, in.Name, in.TaxID, in.Phone); err != nil {
		return nil, err
	}
	c, err := uc.store.CreateCustomer(records.CustomerInput{
		Kind:    kind,
		Name:    in.Name,
		TaxID:   string(taxid.Digits(in.TaxID)),
		Address: in.Address,
		Phone:   string(taxid.Digits(in.Phone)),
	})
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Update aplica una actualización parcial. Si cambia el tipo o el documento se revalida el par.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	current, err := uc.store.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	kind, name, doc, phone := current.Kind, current.Name, current.TaxID, current.Phone
	var patch records.CustomerPatch
	if in.Kind != nil {
		kind = entity.CustomerKind(*in.Kind)
		patch.Kind = &kind
	}
	if in.Name != nil {
		name = *in.Name
		patch.Name = in.Name
	}
	if in.TaxID != nil {
		doc = string(taxid.Digits(*in.TaxID))
		patch.TaxID = &doc
	}
	if in.Address != nil {
		patch.Address = in.Address
	}
	if in.Phone != nil {
		phone = string(taxid.Digits(*in.Phone))
		patch.Phone = &phone
	}
	if err := validateCustomer(kind, name, doc, phone); err != nil {
		return nil, err
	}
	c, err := uc.store.UpdateCustomer(id, patch)
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Delete elimina el cliente y sus notas.
func (uc *CustomerUseCase) Delete(id string) error {
	if err := uc.store.DeleteCustomer(id); err != nil {
		return err
	}
	refreshOverdue(uc.store, uc.observer)
	return nil
}

// Invoices lista las notas del cliente. Un cliente inexistente es NotFound.
func (uc *CustomerUseCase) Invoices(id string) ([]dto.InvoiceResponse, error) {
	if _, err := uc.store.GetCustomer(id); err != nil {
		return nil, err
	}
	return toInvoiceResponses(uc.store.ListInvoicesByCustomer(id), uc.store.Now()), nil
}

// Summary agregados de cobranza del cliente.
func (uc *CustomerUseCase) Summary(id string) (*dto.CustomerSummaryResponse, error) {
	if _, err := uc.store.GetCustomer(id); err != nil {
		return nil, err
	}
	s := lifecycle.Summarize(id, uc.store.ListInvoicesByCustomer(id), uc.store.Now())
	out := toSummaryResponse(s)
	return &out, nil
}

func validateCustomer(kind entity.CustomerKind, name, doc, phone string) error {
	if !kind.Valid() {
		return domain.Invalid("kind", "debe ser individual u organization")
	}
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("name", "requerido")
	}
	if strings.TrimSpace(doc) == "" {
		return domain.Invalid("tax_id", "requerido")
	}
	if !taxid.Validate(kind, doc) {
		if kind == entity.KindOrganization {
			return domain.Invalid("tax_id", "CNPJ inválido")
		}
		return domain.Invalid("tax_id", "CPF inválido")
	}
	if phone != "" && !validator.ValidatePhone(phone) {
		return domain.Invalid("phone", "debe tener 10 u 11 dígitos")
	}
	return nil
}
