package records

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
)

// CustomerInput datos de alta de un cliente. El almacén no valida el dígito verificador;
// eso lo hace la capa que lo invoca.
type CustomerInput struct {
	Kind    entity.CustomerKind
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// CustomerPatch actualización parcial; los campos nil no cambian.
// ID y RegisteredAt no son modificables.
type CustomerPatch struct {
	Kind    *entity.CustomerKind
	Name    *string
	TaxID   *string
	Address *string
	Phone   *string
}

// ListCustomers devuelve todos los clientes en orden de inserción.
func (s *Store) ListCustomers() []entity.Customer {
	out := make([]entity.Customer, 0, len(s.customers))
	for _, d := range s.customers {
		out = append(out, d.toEntity())
	}
	return out
}

// GetCustomer busca un cliente por ID.
func (s *Store) GetCustomer(id string) (entity.Customer, error) {
	i := s.customerIndex(id)
	if i < 0 {
		return entity.Customer{}, domain.NotFound("customer", id)
	}
	return s.customers[i].toEntity(), nil
}

// CreateCustomer asigna ID y fecha de registro y persiste el cliente.
func (s *Store) CreateCustomer(in CustomerInput) (entity.Customer, error) {
	doc := normalizeCustomer(CustomerDocument{
		ID:           s.newID(),
		Kind:         in.Kind,
		Name:         strings.TrimSpace(in.Name),
		TaxID:        strings.TrimSpace(in.TaxID),
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		RegisteredAt: s.now(),
	})
	if err := doc.validate(); err != nil {
		return entity.Customer{}, s.observe("customer", "create", err)
	}

	next := make([]CustomerDocument, len(s.customers), len(s.customers)+1)
	copy(next, s.customers)
	next = append(next, doc)
	if err := s.saveCustomers(next); err != nil {
		return entity.Customer{}, s.observe("customer", "create", err)
	}
	s.observe("customer", "create", nil)
	s.log.Info().Str("customer_id", doc.ID).Msg("cliente creado")
	return doc.toEntity(), nil
}

// UpdateCustomer aplica el patch sobre el cliente existente.
func (s *Store) UpdateCustomer(id string, p CustomerPatch) (entity.Customer, error) {
	i := s.customerIndex(id)
	if i < 0 {
		return entity.Customer{}, s.observe("customer", "update", domain.NotFound("customer", id))
	}
	doc := s.customers[i]
	if p.Kind != nil {
		doc.Kind = *p.Kind
	}
	if p.Name != nil {
		doc.Name = strings.TrimSpace(*p.Name)
	}
	if p.TaxID != nil {
		doc.TaxID = strings.TrimSpace(*p.TaxID)
	}
	if p.Address != nil {
		doc.Address = strings.TrimSpace(*p.Address)
	}
	if p.Phone != nil {
		doc.Phone = strings.TrimSpace(*p.Phone)
	}
	if err := doc.validate(); err != nil {
		return entity.Customer{}, s.observe("customer", "update", err)
	}

	next := make([]CustomerDocument, len(s.customers))
	copy(next, s.customers)
	next[i] = doc
	if err := s.saveCustomers(next); err != nil {
		return entity.Customer{}, s.observe("customer", "update", err)
	}
	s.observe("customer", "update", nil)
	return doc.toEntity(), nil
}

// DeleteCustomer elimina el cliente y todas sus notas. Borrar un ID inexistente no es error.
//
// Primero se escriben las notas y después los clientes; si la segunda escritura falla se
// restauran las notas para que nunca quede un cliente sin sus notas ni notas huérfanas.
func (s *Store) DeleteCustomer(id string) error {
	i := s.customerIndex(id)
	if i < 0 {
		s.log.Debug().Str("customer_id", id).Msg("borrado de cliente inexistente ignorado")
		return nil
	}

	prevInvoices := s.invoices
	keptInvoices := make([]InvoiceDocument, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if inv.CustomerID != id {
			keptInvoices = append(keptInvoices, inv)
		}
	}
	removed := len(prevInvoices) - len(keptInvoices)

	keptCustomers := make([]CustomerDocument, 0, len(s.customers)-1)
	keptCustomers = append(keptCustomers, s.customers[:i]...)
	keptCustomers = append(keptCustomers, s.customers[i+1:]...)

	if removed > 0 {
		if err := s.saveInvoices(keptInvoices); err != nil {
			return s.observe("customer", "delete", err)
		}
	}
	if err := s.saveCustomers(keptCustomers); err != nil {
		if removed > 0 {
			if rbErr := s.saveInvoices(prevInvoices); rbErr != nil {
				s.log.Error().Err(rbErr).Str("customer_id", id).Msg("no se pudieron restaurar las notas tras fallo de borrado")
			}
		}
		return s.observe("customer", "delete", err)
	}
	s.observe("customer", "delete", nil)
	s.log.Info().Str("customer_id", id).Int("invoices_removed", removed).Msg("cliente eliminado")
	return nil
}

// SearchCustomers filtra por nombre (sin distinguir mayúsculas) o por documento (subcadena literal).
// Un término vacío o en blanco devuelve la lista completa.
func (s *Store) SearchCustomers(term string) []entity.Customer {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListCustomers()
	}
	lower := cases.Lower(language.BrazilianPortuguese)
	needle := lower.String(term)

	out := make([]entity.Customer, 0)
	for _, d := range s.customers {
		if strings.Contains(lower.String(d.Name), needle) || strings.Contains(d.TaxID, term) {
			out = append(out, d.toEntity())
		}
	}
	return out
}
