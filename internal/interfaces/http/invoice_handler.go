package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/dto"
	"github.com/jhoicas/recupera-monofasico/internal/application/review"
)

// InvoiceHandler expone las notas importadas y la revisión humana de ítems.
type InvoiceHandler struct {
	svc *review.Service
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc *review.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// List devuelve todas las notas con sus ítems clasificados.
// @Summary      Listar notas importadas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InvoiceResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.svc.ListInvoices(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceList(invoices))
}

// Clear elimina todas las notas (reinicio de la apuración).
// @Summary      Eliminar todas las notas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/invoices [delete]
func (h *InvoiceHandler) Clear(c *fiber.Ctx) error {
	if err := h.svc.ClearInvoices(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notas eliminadas"})
}

// ListPending devuelve las notas con ítems pendientes de revisión (solo esos ítems).
// @Summary      Ítems pendientes de revisión
// @Description  Ítems cuya señal NCM no coincide con la señal CST.
// @Tags         review
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InvoiceResponse
// @Router       /api/review [get]
func (h *InvoiceHandler) ListPending(c *fiber.Ctx) error {
	invoices, err := h.svc.ListPending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToInvoiceList(invoices))
}

// SaveReview aplica las correcciones del operador.
// @Summary      Guardar revisión
// @Description  Corrige descripción, NCM o flag monofásico por ID de ítem. IDs desconocidos se informan sin abortar.
// @Tags         review
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveReviewRequest  true  "correcciones por ID de ítem"
// @Success      200   {object}  dto.SaveReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/review [put]
func (h *InvoiceHandler) SaveReview(c *fiber.Ctx) error {
	var in dto.SaveReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.svc.Save(c.UserContext(), in.ToCorrections())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSaveReviewResponse(res))
}
