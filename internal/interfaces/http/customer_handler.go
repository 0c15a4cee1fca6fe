package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-notas/internal/application/billing"
	"github.com/jhoicas/gestor-notas/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?q=termo
// Sin q (o con q en blanco) devuelve todos los clientes.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.List(c.Query("q"))))
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id
// Solo cambian los campos presentes en el cuerpo.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id
// Elimina también sus notas. Borrar un id inexistente no es error.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invoices GET /api/customers/:id/invoices
func (h *CustomerHandler) Invoices(c *fiber.Ctx) error {
	list, err := h.uc.Invoices(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Summary GET /api/customers/:id/summary
func (h *CustomerHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
