// Package taxid valida los documentos fiscales brasileños: CPF (persona física, 11 dígitos)
// y CNPJ (persona jurídica, 14 dígitos), ambos con dos dígitos verificadores módulo 11.
// Todas las funciones son totales: ante entrada mal formada devuelven false, nunca error.
package taxid

import "github.com/jhoicas/gestor-notas/internal/domain/entity"

const (
	IndividualLength   = 11
	OrganizationLength = 14
)

// pesos del CNPJ para el primer y el segundo dígito verificador (ciclo 2..9 desde la derecha).
var (
	cnpjWeights1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateIndividual valida un CPF con o sin puntuación ("529.982.247-25" o "52998224725").
func ValidateIndividual(value string) bool {
	d := Digits(value)
	if len(d) != IndividualLength || repeated(d) {
		return false
	}
	d1, d2 := cpfCheckDigits(d[:9])
	return d[9] == d1 && d[10] == d2
}

// ValidateOrganization valida un CNPJ con o sin puntuación ("11.222.333/0001-81").
func ValidateOrganization(value string) bool {
	d := Digits(value)
	if len(d) != OrganizationLength || repeated(d) {
		return false
	}
	d1, d2 := cnpjCheckDigits(d[:12])
	return d[12] == d1 && d[13] == d2
}

// Validate aplica el algoritmo correspondiente al tipo de cliente.
func Validate(kind entity.CustomerKind, value string) bool {
	switch kind {
	case entity.KindIndividual:
		return ValidateIndividual(value)
	case entity.KindOrganization:
		return ValidateOrganization(value)
	default:
		return false
	}
}

// Digits extrae los dígitos ASCII de s.
func Digits(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return out
}

// cpfCheckDigits: pesos 10..2 para el primero y 11..2 para el segundo;
// resto 10 u 11 se convierte en 0.
func cpfCheckDigits(base []byte) (byte, byte) {
	var sum int
	for i := 0; i < 9; i++ {
		sum += int(base[i]-'0') * (10 - i)
	}
	d1 := cpfDigit(sum)

	sum = 0
	for i := 0; i < 9; i++ {
		sum += int(base[i]-'0') * (11 - i)
	}
	sum += int(d1-'0') * 2
	return d1, cpfDigit(sum)
}

func cpfDigit(sum int) byte {
	r := (sum * 10) % 11
	if r >= 10 {
		r = 0
	}
	return byte('0' + r)
}

func cnpjCheckDigits(base []byte) (byte, byte) {
	var sum int
	for i, w := range cnpjWeights1 {
		sum += int(base[i]-'0') * w
	}
	d1 := cnpjDigit(sum)

	sum = 0
	for i := 0; i < 12; i++ {
		sum += int(base[i]-'0') * cnpjWeights2[i]
	}
	sum += int(d1-'0') * cnpjWeights2[12]
	return d1, cnpjDigit(sum)
}

func cnpjDigit(sum int) byte {
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

// repeated detecta secuencias de un único dígito ("11111111111"), siempre inválidas.
func repeated(d []byte) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
