package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
)

var _ repository.UploadRepository = (*UploadRepo)(nil)

// UploadRepo implementación de UploadRepository.
type UploadRepo struct {
	q Querier
}

// NewUploadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUploadRepository(q Querier) *UploadRepo {
	return &UploadRepo{q: q}
}

const uploadColumns = `id, file_name, file_type, size, status, error_message, invoice_count, created_at, processed_at`

func scanUpload(row pgx.Row, withContent bool) (*entity.Upload, error) {
	var u entity.Upload
	dest := []any{&u.ID, &u.FileName, &u.FileType, &u.Size, &u.Status, &u.ErrorMessage, &u.InvoiceCount, &u.CreatedAt, &u.ProcessedAt}
	if withContent {
		dest = append(dest, &u.Content)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste el archivo con su contenido.
func (r *UploadRepo) Create(ctx context.Context, u *entity.Upload) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO uploads (id, file_name, file_type, size, content, status, error_message, invoice_count, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.FileName, u.FileType, u.Size, u.Content, u.Status, u.ErrorMessage, u.InvoiceCount, u.CreatedAt, u.ProcessedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert upload: %w", err)
	}
	return nil
}

// GetByID devuelve el upload sin contenido; nil, nil si no existe.
func (r *UploadRepo) GetByID(ctx context.Context, id string) (*entity.Upload, error) {
	u, err := scanUpload(r.q.QueryRow(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE id = $1`, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get upload: %w", err)
	}
	return u, nil
}

// List devuelve los uploads sin contenido, más recientes primero.
func (r *UploadRepo) List(ctx context.Context) ([]*entity.Upload, error) {
	return r.list(ctx, `SELECT `+uploadColumns+` FROM uploads ORDER BY created_at DESC, id`, false)
}

// ListPending devuelve los uploads AGUARDANDO con contenido, en orden de llegada.
func (r *UploadRepo) ListPending(ctx context.Context) ([]*entity.Upload, error) {
	return r.list(ctx, `SELECT `+uploadColumns+`, content FROM uploads WHERE status = $1 ORDER BY created_at, id`, true, entity.UploadStatusPending)
}

func (r *UploadRepo) list(ctx context.Context, query string, withContent bool, args ...any) ([]*entity.Upload, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var out []*entity.Upload
	for rows.Next() {
		u, err := scanUpload(rows, withContent)
		if err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateResult guarda el resultado del procesamiento y libera el contenido del archivo.
func (r *UploadRepo) UpdateResult(ctx context.Context, u *entity.Upload) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE uploads
		SET status = $2, error_message = $3, invoice_count = $4, processed_at = $5, content = NULL
		WHERE id = $1`,
		u.ID, u.Status, u.ErrorMessage, u.InvoiceCount, u.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("update upload: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el upload; invoices.upload_id queda en NULL (ON DELETE SET NULL).
func (r *UploadRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll elimina todos los uploads.
func (r *UploadRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM uploads`); err != nil {
		return fmt.Errorf("delete uploads: %w", err)
	}
	return nil
}
