package dto

import (
	"time"

	"github.com/jhoicas/recupera-monofasico/internal/application/ingestion"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// UploadResponse archivo subido y su estado de procesamiento.
type UploadResponse struct {
	ID           string     `json:"id"`
	FileName     string     `json:"file_name"`
	FileType     string     `json:"file_type"`
	Size         int64      `json:"size"`
	Status       string     `json:"status"` // AGUARDANDO | FALHA NO PROCESSAMENTO | PROCESSADO
	ErrorMessage string     `json:"error_message,omitempty"`
	InvoiceCount int        `json:"invoice_count"`
	CreatedAt    time.Time  `json:"created_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
}

// ProcessSummaryResponse resultado de POST /api/uploads/process.
type ProcessSummaryResponse struct {
	Processed     int              `json:"processed"`
	Failed        int              `json:"failed"`
	Invoices      int              `json:"invoices"`
	Duplicates    int              `json:"duplicates"`
	ItemsToReview int              `json:"items_to_review"`
	Uploads       []UploadResponse `json:"uploads"`
}

// ToUploadResponse mapea la entidad; nunca incluye el contenido del archivo.
func ToUploadResponse(u *entity.Upload) UploadResponse {
	return UploadResponse{
		ID:           u.ID,
		FileName:     u.FileName,
		FileType:     u.FileType,
		Size:         u.Size,
		Status:       u.Status,
		ErrorMessage: u.ErrorMessage,
		InvoiceCount: u.InvoiceCount,
		CreatedAt:    u.CreatedAt,
		ProcessedAt:  u.ProcessedAt,
	}
}

// ToUploadList mapea una lista de uploads.
func ToUploadList(uploads []*entity.Upload) []UploadResponse {
	out := make([]UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, ToUploadResponse(u))
	}
	return out
}

// ToProcessSummary mapea el resumen del lote.
func ToProcessSummary(s *ingestion.Summary) ProcessSummaryResponse {
	return ProcessSummaryResponse{
		Processed:     s.Processed,
		Failed:        s.Failed,
		Invoices:      s.Invoices,
		Duplicates:    s.Duplicates,
		ItemsToReview: s.ItemsToReview,
		Uploads:       ToUploadList(s.Uploads),
	}
}
