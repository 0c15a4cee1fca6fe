package records

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/entity"
)

// LineItemsPayload acepta las líneas de producto en cualquiera de las dos formas de entrada:
// una secuencia estructurada o un string ya serializado. Normalize produce siempre la
// misma forma canónica persistida.
type LineItemsPayload struct {
	items      []entity.LineItem
	serialized string
	structured bool
}

// Items construye el payload desde líneas estructuradas.
func Items(items ...entity.LineItem) LineItemsPayload {
	return LineItemsPayload{items: items, structured: true}
}

// Serialized construye el payload desde un string JSON con un arreglo de líneas.
func Serialized(s string) LineItemsPayload {
	return LineItemsPayload{serialized: s}
}

// UnmarshalJSON acepta un arreglo JSON o un string que contiene el arreglo.
func (p *LineItemsPayload) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Serialized(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*p = Serialized("")
		return nil
	}
	*p = Serialized(string(b))
	return nil
}

// MarshalJSON emite la forma canónica como arreglo.
func (p LineItemsPayload) MarshalJSON() ([]byte, error) {
	s, err := p.Normalize()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Normalize valida las líneas y devuelve su serialización canónica.
func (p LineItemsPayload) Normalize() (string, error) {
	items := p.items
	if !p.structured {
		decoded, err := DecodeLineItems(p.serialized)
		if err != nil {
			return "", err
		}
		items = decoded
	}
	return encodeLineItems(items)
}

// lineItemWire forma canónica persistida de una línea.
type lineItemWire struct {
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
	Quantity  json.Number `json:"quantity"`
}

// lineItemIn forma de lectura: admite números entre comillas y campos ausentes.
type lineItemIn struct {
	Name      string       `json:"name"`
	UnitPrice *json.Number `json:"unitPrice"`
	Quantity  *json.Number `json:"quantity"`
}

// DecodeLineItems decodifica un arreglo serializado. El string vacío es una lista vacía.
func DecodeLineItems(s string) ([]entity.LineItem, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []entity.LineItem{}, nil
	}
	var raw []lineItemIn
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, domain.Invalid("lineItems", "no es un arreglo JSON de productos: "+err.Error())
	}
	items := make([]entity.LineItem, 0, len(raw))
	for _, r := range raw {
		price, err := decimalOrZero(r.UnitPrice)
		if err != nil {
			return nil, domain.Invalid("lineItems.unitPrice", err.Error())
		}
		qty, err := decimalOrZero(r.Quantity)
		if err != nil {
			return nil, domain.Invalid("lineItems.quantity", err.Error())
		}
		items = append(items, entity.LineItem{
			Name:      r.Name,
			UnitPrice: price,
			Quantity:  qty,
		})
	}
	return items, nil
}

func encodeLineItems(items []entity.LineItem) (string, error) {
	wire := make([]lineItemWire, 0, len(items))
	for _, it := range items {
		if it.UnitPrice.IsNegative() {
			return "", domain.Invalid("lineItems.unitPrice", "no puede ser negativo")
		}
		if it.Quantity.IsNegative() {
			return "", domain.Invalid("lineItems.quantity", "no puede ser negativa")
		}
		wire = append(wire, lineItemWire{
			Name:      it.Name,
			UnitPrice: json.Number(it.UnitPrice.String()),
			Quantity:  json.Number(it.Quantity.String()),
		})
	}
	out, err := json.Marshal(wire)
	if err != nil {
		return "", domain.Invalid("lineItems", err.Error())
	}
	return string(out), nil
}

func decimalOrZero(n *json.Number) (decimal.Decimal, error) {
	if n == nil || *n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(string(*n))
}

// canonicalDecimal reescribe d en su forma mínima para que la ida y vuelta por JSON sea estable.
func canonicalDecimal(d decimal.Decimal) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return d
	}
	return out
}
