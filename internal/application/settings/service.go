// Package settings guarda las preferencias de la interfaz, separadas de las colecciones.
package settings

import (
	"github.com/jhoicas/gestor-notas/internal/domain"
	"github.com/jhoicas/gestor-notas/internal/domain/repository"
	"github.com/jhoicas/gestor-notas/pkg/logger"
)

// ThemeKey clave del tema en el almacén de configuración.
const ThemeKey = "theme"

// Temas disponibles.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Service lee y escribe la configuración de la interfaz.
type Service struct {
	kv  repository.KeyValueStore
	log *logger.Logger
}

// NewService construye el servicio sobre el almacén de configuración.
func NewService(kv repository.KeyValueStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{kv: kv, log: log.Component("settings")}
}

// EnsureDefaults persiste el tema claro si todavía no hay uno guardado.
func (s *Service) EnsureDefaults() error {
	var theme string
	found, err := s.kv.Get(ThemeKey, &theme)
	if err != nil {
		return err
	}
	if found && theme != "" {
		return nil
	}
	return s.kv.Set(ThemeKey, ThemeLight)
}

// Theme devuelve el tema guardado o "light" si no hay ninguno.
func (s *Service) Theme() (string, error) {
	var theme string
	found, err := s.kv.Get(ThemeKey, &theme)
	if err != nil {
		return "", err
	}
	if !found || theme == "" {
		return ThemeLight, nil
	}
	return theme, nil
}

// SetTheme guarda el tema y lo devuelve.
func (s *Service) SetTheme(theme string) (string, error) {
	if theme != ThemeLight && theme != ThemeDark {
		return "", domain.Invalid("theme", "debe ser light o dark")
	}
	if err := s.kv.Set(ThemeKey, theme); err != nil {
		return "", err
	}
	s.log.Info().Str("theme", theme).Msg("tema actualizado")
	return theme, nil
}
