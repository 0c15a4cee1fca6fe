package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-notas/internal/application/backup"
	"github.com/jhoicas/gestor-notas/internal/application/billing"
	"github.com/jhoicas/gestor-notas/internal/application/dto"
	"github.com/jhoicas/gestor-notas/internal/domain"
)

// BackupHandler crea, lista y restaura snapshots (protegido).
type BackupHandler struct {
	mgr       *backup.Manager
	customers *billing.CustomerUseCase
	invoices  *billing.InvoiceUseCase
}

// NewBackupHandler construye el handler. Los casos de uso se usan para contar lo restaurado
// y republicar las métricas de vencidas.
func NewBackupHandler(mgr *backup.Manager, customers *billing.CustomerUseCase, invoices *billing.InvoiceUseCase) *BackupHandler {
	return &BackupHandler{mgr: mgr, customers: customers, invoices: invoices}
}

// Create godoc
// @Summary      Crear snapshot
// @Tags         backups
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  dto.BackupResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	path, err := h.mgr.CreateSnapshot()
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BackupResponse{Path: path})
}

// List godoc
// @Summary      Listar snapshots (el más reciente primero)
// @Tags         backups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListResponse[dto.SnapshotResponse]
// @Router       /api/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	list, err := h.mgr.ListSnapshots()
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SnapshotResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SnapshotResponse{Name: s.Name, Path: s.Path, Size: s.Size, CreatedAt: s.CreatedAt})
	}
	return c.JSON(dto.NewList(out))
}

// Restore godoc
// @Summary      Restaurar snapshot
// @Description  Si el archivo no se puede leer o contiene registros inválidos el almacén no cambia.
// @Tags         backups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RestoreBackupRequest  true  "ruta del snapshot"
// @Success      200   {object}  dto.RestoreBackupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/backups/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var in dto.RestoreBackupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	path := strings.TrimSpace(in.Path)
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "path es requerido", Field: "path"})
	}
	if err := h.mgr.RestoreSnapshot(path); err != nil {
		if errors.Is(err, domain.ErrIO) || errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "RESTORE_FAILED", Message: err.Error()})
		}
		return writeError(c, err)
	}
	h.invoices.RefreshMetrics()
	return c.JSON(dto.RestoreBackupResponse{
		Restored:  true,
		Customers: len(h.customers.List("")),
		Invoices:  len(h.invoices.List()),
	})
}
