package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/dto"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// SimplesHandler expone las tablas del Simples Nacional (solo lectura).
type SimplesHandler struct{}

// NewSimplesHandler construye el handler.
func NewSimplesHandler() *SimplesHandler { return &SimplesHandler{} }

// ListAnexos devuelve las faixas de los Anexos I a V.
// @Summary      Tablas del Simples Nacional
// @Tags         simples
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AnexoResponse
// @Router       /api/simples/anexos [get]
func (h *SimplesHandler) ListAnexos(c *fiber.Ctx) error {
	anexos := simples.Anexos()
	out := make([]dto.AnexoResponse, 0, len(anexos))
	for _, a := range anexos {
		if t, ok := simples.Lookup(a); ok {
			out = append(out, dto.ToAnexoResponse(t))
		}
	}
	return c.JSON(out)
}
