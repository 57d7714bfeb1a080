package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/report"
)

// ReportHandler descarga los reportes de la apuración.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Excel descarga la planilla con sumário, apuração mensal e itens monofásicos.
// @Summary      Reporte Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/excel [get]
func (h *ReportHandler) Excel(c *fiber.Ctx) error {
	data, name, err := h.uc.Excel(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// PDF descarga el resumen en PDF.
// @Summary      Reporte PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	data, name, err := h.uc.PDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, "application/pdf")
}

func sendFile(c *fiber.Ctx, data []byte, name, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}
