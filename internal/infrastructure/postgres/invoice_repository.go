package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera e ítems. Una huella o chave de acesso repetida no aborta la
// transacción: ON CONFLICT DO NOTHING (cubre ambos índices únicos) y se devuelve domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO invoices (id, upload_id, access_key, issue_date, total_value, fingerprint, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, nullIfEmpty(inv.UploadID), inv.AccessKey, inv.IssueDate, inv.TotalValue, inv.Fingerprint, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}

	b := &pgx.Batch{}
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.InvoiceID = inv.ID
		b.Queue(`
			INSERT INTO invoice_items (id, invoice_id, position, product_code, ncm_code, cfop, cst_pis, cst_cofins,
				description, total_value, is_monofasico, classification_rule, needs_human_review)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			it.ID, inv.ID, i, it.ProductCode, it.NCMCode, it.CFOP, it.CSTPIS, it.CSTCOFINS,
			it.Description, it.TotalValue, it.IsMonofasico, it.ClassificationRule, it.NeedsHumanReview,
		)
	}
	return execBatch(ctx, r.q, b, "insert invoice item")
}

// List devuelve todas las notas con sus ítems ordenadas por fecha de emisión.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(upload_id, ''), access_key, issue_date, total_value, fingerprint, created_at
		FROM invoices
		ORDER BY issue_date, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	byID := make(map[string]*entity.Invoice)
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.UploadID, &inv.AccessKey, &inv.IssueDate, &inv.TotalValue, &inv.Fingerprint, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
		byID[inv.ID] = &inv
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_code, ncm_code, cfop, cst_pis, cst_cofins, description,
			total_value, is_monofasico, classification_rule, needs_human_review
		FROM invoice_items
		ORDER BY invoice_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it entity.InvoiceItem
		if err := itemRows.Scan(&it.ID, &it.InvoiceID, &it.ProductCode, &it.NCMCode, &it.CFOP, &it.CSTPIS, &it.CSTCOFINS,
			&it.Description, &it.TotalValue, &it.IsMonofasico, &it.ClassificationRule, &it.NeedsHumanReview); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		if inv, ok := byID[it.InvoiceID]; ok {
			inv.Items = append(inv.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	return list, nil
}

// Exists indica si el documento ya fue importado (por huella o por chave de acesso).
func (r *InvoiceRepo) Exists(ctx context.Context, fingerprint, accessKey string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, existsInvoiceSQL, fingerprint, accessKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return exists, nil
}

// UpdateItems persiste los campos editables de la revisión.
func (r *InvoiceRepo) UpdateItems(ctx context.Context, items []entity.InvoiceItem) error {
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(`
			UPDATE invoice_items
			SET description = $2, ncm_code = $3, is_monofasico = $4, needs_human_review = $5
			WHERE id = $1`,
			it.ID, it.Description, it.NCMCode, it.IsMonofasico, it.NeedsHumanReview,
		)
	}
	return execBatch(ctx, r.q, b, "update invoice item")
}

// DeleteAll elimina todas las notas; los ítems caen por ON DELETE CASCADE.
func (r *InvoiceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices`); err != nil {
		return fmt.Errorf("delete invoices: %w", err)
	}
	return nil
}

const existsInvoiceSQL = `
	SELECT EXISTS (
		SELECT 1 FROM invoices
		WHERE fingerprint = $1 OR ($2 <> '' AND access_key = $2)
	)`

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
