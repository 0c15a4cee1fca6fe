package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-notas/internal/application/dto"
	"github.com/jhoicas/gestor-notas/internal/application/settings"
)

// SettingsHandler expone las preferencias de la interfaz.
type SettingsHandler struct {
	svc *settings.Service
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetTheme godoc
// @Summary      Tema actual
// @Tags         config
// @Produce      json
// @Success      200  {object}  dto.ThemeResponse
// @Router       /api/config/theme [get]
func (h *SettingsHandler) GetTheme(c *fiber.Ctx) error {
	theme, err := h.svc.Theme()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ThemeResponse{Theme: theme})
}

// SetTheme godoc
// @Summary      Cambiar el tema
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ThemeRequest  true  "light | dark"
// @Success      200   {object}  dto.ThemeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config/theme [put]
func (h *SettingsHandler) SetTheme(c *fiber.Ctx) error {
	var in dto.ThemeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	theme, err := h.svc.SetTheme(in.Theme)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ThemeResponse{Theme: theme})
}
