package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/internal/application/review"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// InvoiceResponse NF-e importada con sus ítems.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	UploadID        string                `json:"upload_id,omitempty"`
	AccessKey       string                `json:"access_key"`
	IssueDate       string                `json:"issue_date"`
	TotalValue      decimal.Decimal       `json:"total_value"`
	MonofasicoTotal decimal.Decimal       `json:"monofasico_total"`
	Items           []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse ítem de la nota con su clasificación.
type InvoiceItemResponse struct {
	ID                 string          `json:"id"`
	ProductCode        string          `json:"product_code"`
	Description        string          `json:"description"`
	NCMCode            string          `json:"ncm_code"`
	CFOP               string          `json:"cfop"`
	CSTPIS             string          `json:"cst_pis"`
	CSTCOFINS          string          `json:"cst_cofins"`
	TotalValue         decimal.Decimal `json:"total_value"`
	IsMonofasico       bool            `json:"is_monofasico"`
	ClassificationRule string          `json:"classification_rule"`
	NeedsHumanReview   bool            `json:"needs_human_review"`
}

// ItemCorrectionRequest campos editables de un ítem; los ausentes no se modifican.
type ItemCorrectionRequest struct {
	Description  *string `json:"description,omitempty"`
	NCMCode      *string `json:"ncm_code,omitempty"`
	IsMonofasico *bool   `json:"is_monofasico,omitempty"`
}

// SaveReviewRequest body de PUT /api/review, indexado por ID de ítem.
type SaveReviewRequest struct {
	Corrections map[string]ItemCorrectionRequest `json:"corrections"`
}

// SaveReviewResponse resultado de la revisión.
type SaveReviewResponse struct {
	Updated    int      `json:"updated"`
	UnknownIDs []string `json:"unknown_ids"`
}

// ToInvoiceResponse mapea la entidad.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:                 it.ID,
			ProductCode:        it.ProductCode,
			Description:        it.Description,
			NCMCode:            it.NCMCode,
			CFOP:               it.CFOP,
			CSTPIS:             it.CSTPIS,
			CSTCOFINS:          it.CSTCOFINS,
			TotalValue:         it.TotalValue,
			IsMonofasico:       it.IsMonofasico,
			ClassificationRule: it.ClassificationRule,
			NeedsHumanReview:   it.NeedsHumanReview,
		})
	}
	return InvoiceResponse{
		ID:              inv.ID,
		UploadID:        inv.UploadID,
		AccessKey:       inv.AccessKey,
		IssueDate:       inv.IssueDate,
		TotalValue:      inv.TotalValue,
		MonofasicoTotal: inv.MonofasicoTotal(),
		Items:           items,
	}
}

// ToInvoiceList mapea una lista de notas.
func ToInvoiceList(invoices []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, ToInvoiceResponse(inv))
	}
	return out
}

// ToCorrections convierte el body en correcciones de dominio.
func (r SaveReviewRequest) ToCorrections() map[string]entity.ItemCorrection {
	out := make(map[string]entity.ItemCorrection, len(r.Corrections))
	for id, c := range r.Corrections {
		out[id] = entity.ItemCorrection{Description: c.Description, NCMCode: c.NCMCode, IsMonofasico: c.IsMonofasico}
	}
	return out
}

// ToSaveReviewResponse mapea el resultado; UnknownIDs nunca es null en JSON.
func ToSaveReviewResponse(r *review.SaveResult) SaveReviewResponse {
	ids := r.UnknownIDs
	if ids == nil {
		ids = []string{}
	}
	return SaveReviewResponse{Updated: r.Updated, UnknownIDs: ids}
}
