// Package validator contiene chequeos de forma para datos de contacto.
package validator

import (
	"regexp"

	"github.com/jhoicas/gestor-notas/pkg/taxid"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidatePhone es true si el teléfono tiene 10 (fijo) u 11 (celular) dígitos.
func ValidatePhone(value string) bool {
	n := len(taxid.Digits(value))
	return n == 10 || n == 11
}

// ValidateEmail comprueba la forma local@dominio.tld.
func ValidateEmail(value string) bool {
	return emailRe.MatchString(value)
}
