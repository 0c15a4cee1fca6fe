package entity

import "time"

// CustomerKind determina qué algoritmo de dígito verificador aplica al documento.
type CustomerKind string

// Tipos de cliente.
const (
	KindIndividual   CustomerKind = "individual"   // persona física (CPF, 11 dígitos)
	KindOrganization CustomerKind = "organization" // persona jurídica (CNPJ, 14 dígitos)
)

// Valid indica si el tipo es uno de los conocidos.
func (k CustomerKind) Valid() bool {
	return k == KindIndividual || k == KindOrganization
}

// Customer representa un cliente del negocio.
type Customer struct {
	ID           string
	Kind         CustomerKind
	Name         string
	TaxID        string // CPF o CNPJ, solo dígitos
	Address      string
	Phone        string
	RegisteredAt time.Time // se fija al crear y no cambia
}
