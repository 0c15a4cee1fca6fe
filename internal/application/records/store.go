// Package records es el almacén de clientes y notas: CRUD, búsqueda, join de lectura y
// borrado en cascada sobre dos almacenes clave-valor durables.
//
// Store no es seguro para uso concurrente; la capa que lo expone debe serializar las llamadas.
package records

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestor-notas/internal/domain/repository"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

// Claves dentro de cada almacén.
const (
	CustomersKey = "customers"
	InvoicesKey  = "invoices"
)

// Recorder recibe el resultado de cada operación de escritura (métricas).
type Recorder interface {
	ObserveOperation(resource, op string, err error)
}

// Options dependencias inyectables del Store.
type Options struct {
	Now     func() time.Time // reloj; por defecto time.Now
	NewID   func() string    // generador de IDs; por defecto UUID v4
	Logger  *logger.Logger
	Metrics Recorder
}

// Store mantiene en memoria las dos colecciones y las reescribe completas en cada mutación.
// El orden de inserción se conserva.
type Store struct {
	customersKV repository.KeyValueStore
	invoicesKV  repository.KeyValueStore

	customers []CustomerDocument
	invoices  []InvoiceDocument

	now     func() time.Time
	newID   func() string
	log     *logger.Logger
	metrics Recorder
}

// Open carga ambas colecciones. Si una no existe se inicializa vacía y se persiste.
func Open(customersKV, invoicesKV repository.KeyValueStore, opts Options) (*Store, error) {
	s := &Store{
		customersKV: customersKV,
		invoicesKV:  invoicesKV,
		now:         opts.Now,
		newID:       opts.NewID,
		log:         opts.Logger,
		metrics:     opts.Metrics,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.Component("records")

	found, err := customersKV.Get(CustomersKey, &s.customers)
	if err != nil {
		return nil, err
	}
	if !found || s.customers == nil {
		s.customers = []CustomerDocument{}
		if err := customersKV.Set(CustomersKey, s.customers); err != nil {
			return nil, err
		}
	}

	found, err = invoicesKV.Get(InvoicesKey, &s.invoices)
	if err != nil {
		return nil, err
	}
	if !found || s.invoices == nil {
		s.invoices = []InvoiceDocument{}
		if err := invoicesKV.Set(InvoicesKey, s.invoices); err != nil {
			return nil, err
		}
	}

	s.log.Debug().Int("customers", len(s.customers)).Int("invoices", len(s.invoices)).Msg("almacén cargado")
	return s, nil
}

// Now instante de referencia del almacén (reloj inyectado).
func (s *Store) Now() time.Time { return s.now() }

func (s *Store) saveCustomers(next []CustomerDocument) error {
	if err := s.customersKV.Set(CustomersKey, next); err != nil {
		return err
	}
	s.customers = next
	return nil
}

func (s *Store) saveInvoices(next []InvoiceDocument) error {
	if err := s.invoicesKV.Set(InvoicesKey, next); err != nil {
		return err
	}
	s.invoices = next
	return nil
}

func (s *Store) observe(resource, op string, err error) error {
	if s.metrics != nil {
		s.metrics.ObserveOperation(resource, op, err)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("resource", resource).Str("op", op).Msg("operación fallida")
	}
	return err
}

func (s *Store) customerIndex(id string) int {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) invoiceIndex(id string) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}
