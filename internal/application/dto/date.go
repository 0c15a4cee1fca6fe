package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jhoicas/gestor-notas/internal/domain"
)

// DateLayout fecha de calendario sin hora, tal como la envía un <input type="date">.
const DateLayout = "2006-01-02"

// Date fecha de entrada que acepta RFC 3339 o solo la fecha (medianoche UTC).
// null y "" dejan la fecha en cero.
type Date struct {
	time.Time
}

// NewDate envuelve t.
func NewDate(t time.Time) Date { return Date{Time: t} }

// DatePtr envuelve t y devuelve su dirección (para los campos opcionales).
func DatePtr(t time.Time) *Date {
	d := NewDate(t)
	return &d
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Invalid("date", "debe ser un string")
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return domain.Invalid("date", "formato esperado AAAA-MM-DD o RFC 3339: "+s)
	}
	d.Time = t
	return nil
}

// MarshalJSON serializa en RFC 3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// TimePtr devuelve nil si d es nil.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
