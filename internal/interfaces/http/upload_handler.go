package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/dto"
	"github.com/jhoicas/recupera-monofasico/internal/application/ingestion"
)

// UploadHandler maneja la subida y el procesamiento de archivos NF-e.
type UploadHandler struct {
	svc *ingestion.Service
}

// NewUploadHandler construye el handler.
func NewUploadHandler(svc *ingestion.Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload registra los archivos como AGUARDANDO.
// @Summary      Subir archivos NF-e
// @Description  Acepta XML, ZIP o PDF (campo multipart "files", repetible). El PDF queda registrado pero falla al procesar.
// @Tags         uploads
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        files  formData  file  true  "Archivos .xml, .zip o .pdf"
// @Success      201    {array}   dto.UploadResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "INVALID_BODY", "se esperaba multipart/form-data")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return badRequest(c, "VALIDATION", "ningún archivo recibido en el campo files")
	}

	files := make([]ingestion.FileInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "INVALID_BODY", "no se pudo leer "+fh.Filename)
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return badRequest(c, "INVALID_BODY", "no se pudo leer "+fh.Filename)
		}
		files = append(files, ingestion.FileInput{Name: fh.Filename, Content: content})
	}

	uploads, err := h.svc.Upload(c.UserContext(), files)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUploadList(uploads))
}

// List devuelve los archivos subidos, más recientes primero.
// @Summary      Listar archivos subidos
// @Tags         uploads
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UploadResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/uploads [get]
func (h *UploadHandler) List(c *fiber.Ctx) error {
	uploads, err := h.svc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToUploadList(uploads))
}

// Process procesa todos los archivos AGUARDANDO.
// @Summary      Procesar archivos pendientes
// @Description  Parsea, clasifica y persiste las notas. Un archivo con error no afecta al resto del lote.
// @Tags         uploads
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProcessSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/uploads/process [post]
func (h *UploadHandler) Process(c *fiber.Ctx) error {
	summary, err := h.svc.ProcessPending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProcessSummary(summary))
}

// Delete elimina un archivo; las notas ya importadas se conservan.
// @Summary      Eliminar archivo
// @Tags         uploads
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del upload"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/uploads/{id} [delete]
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "archivo eliminado"})
}

// Clear elimina todos los archivos subidos.
// @Summary      Eliminar todos los archivos
// @Tags         uploads
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/uploads [delete]
func (h *UploadHandler) Clear(c *fiber.Ctx) error {
	if err := h.svc.Clear(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "archivos eliminados"})
}
