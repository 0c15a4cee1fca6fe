// Package format genera cadenas de presentación (moneda, fechas, documentos, teléfonos).
// Son funciones puras: no validan y ante entrada inválida formatean lo que pueden.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/domain/entity"
	"github.com/jhoicas/gestor-notas/pkg/taxid"
)

const currencySymbol = "R$"

// Currency formatea en reales: "R$ 1.234,56".
func Currency(v decimal.Decimal) string {
	rounded := v.Round(2)
	fixed := rounded.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	out := currencySymbol + " " + groupThousands(intPart) + "," + frac
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

// Date formatea dd/mm/aaaa. La fecha cero devuelve "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// TaxID puntúa el documento según el tipo: CPF "000.000.000-00", CNPJ "00.000.000/0000-00".
// Sin tipo conocido decide por la cantidad de dígitos.
func TaxID(value string, kind entity.CustomerKind) string {
	d := string(taxid.Digits(value))
	if d == "" {
		return ""
	}
	if kind == entity.KindIndividual || (kind != entity.KindOrganization && len(d) <= taxid.IndividualLength) {
		return punctuate(d, []int{3, 3, 3}, []string{".", ".", "-"})
	}
	return punctuate(d, []int{2, 3, 3, 4}, []string{".", ".", "/", "-"})
}

// Phone formatea "(11) 98765-4321" o "(11) 3456-7890"; otras longitudes devuelven solo dígitos.
func Phone(value string) string {
	d := string(taxid.Digits(value))
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return d
	}
}

// groupThousands inserta puntos de miles en un string numérico sin signo.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// punctuate corta d en grupos de los tamaños dados y los une con los separadores;
// el resto de dígitos va tras el último separador. Entradas cortas quedan parciales.
func punctuate(d string, groups []int, seps []string) string {
	var b strings.Builder
	for i, size := range groups {
		if len(d) <= size {
			b.WriteString(d)
			return b.String()
		}
		b.WriteString(d[:size])
		b.WriteString(seps[i])
		d = d[size:]
	}
	b.WriteString(d)
	return b.String()
}
