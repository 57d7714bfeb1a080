package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/dto"
)

// CalculationHandler maneja los parámetros mensuales y los resultados de la apuración.
type CalculationHandler struct {
	svc *apuracao.Service
}

// NewCalculationHandler construye el handler.
func NewCalculationHandler(svc *apuracao.Service) *CalculationHandler {
	return &CalculationHandler{svc: svc}
}

// ListInputs devuelve los parámetros informados, ordenados por mes.
// @Summary      Listar parámetros mensuales
// @Tags         calculations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CalculationInputDTO
// @Router       /api/calculations/inputs [get]
func (h *CalculationHandler) ListInputs(c *fiber.Ctx) error {
	inputs, err := h.svc.ListInputs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCalculationInputList(inputs))
}

// SaveInputs guarda RBT12, Anexo y DAS pago por mes (insert o reemplazo).
// @Summary      Guardar parámetros mensuales
// @Description  Si algún mes es inválido no se guarda ninguno.
// @Tags         calculations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveInputsRequest  true  "parámetros por mes (YYYY-MM)"
// @Success      200   {array}   dto.CalculationInputDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculations/inputs [put]
func (h *CalculationHandler) SaveInputs(c *fiber.Ctx) error {
	var in dto.SaveInputsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Inputs) == 0 {
		return badRequest(c, "VALIDATION", "inputs vacío")
	}
	if err := h.svc.SaveInputs(c.UserContext(), in.ToInputs()); err != nil {
		return writeError(c, err)
	}
	return h.ListInputs(c)
}

// DeleteInput elimina los parámetros de un mes.
// @Summary      Eliminar parámetros de un mes
// @Tags         calculations
// @Security     Bearer
// @Produce      json
// @Param        month  path      string  true  "YYYY-MM"
// @Success      200    {object}  dto.MessageResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/calculations/inputs/{month} [delete]
func (h *CalculationHandler) DeleteInput(c *fiber.Ctx) error {
	if err := h.svc.DeleteInput(c.UserContext(), c.Params("month")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "parámetros eliminados"})
}

// Calculate recalcula y devuelve el resultado de cada mes con receita de venta.
// @Summary      Resultados mensuales
// @Tags         calculations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CalculationResultResponse
// @Router       /api/calculations [get]
func (h *CalculationHandler) Calculate(c *fiber.Ctx) error {
	results, err := h.svc.Calculate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCalculationResults(results))
}

// Report devuelve la vista mensual, anual o total.
// @Summary      Reporte consolidado
// @Tags         calculations
// @Security     Bearer
// @Produce      json
// @Param        view  query     string  false  "monthly | yearly | total"  default(monthly)
// @Success      200   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculations/report [get]
func (h *CalculationHandler) Report(c *fiber.Ctx) error {
	view := c.Query("view", dto.ViewMonthly)
	rep, err := h.svc.Report(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out, ok := dto.ToReportResponse(rep, view)
	if !ok {
		return badRequest(c, "VALIDATION", "view debe ser monthly, yearly o total")
	}
	return c.JSON(out)
}
