package repository

import (
	"context"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// UploadRepository define el puerto de persistencia para archivos subidos.
type UploadRepository interface {
	Create(ctx context.Context, u *entity.Upload) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Upload, error)
	// List devuelve los uploads sin contenido, más recientes primero.
	List(ctx context.Context) ([]*entity.Upload, error)
	// ListPending devuelve los uploads AGUARDANDO con su contenido, en orden de llegada.
	ListPending(ctx context.Context) ([]*entity.Upload, error)
	// UpdateResult guarda estado, mensaje de error, cantidad de notas y fecha de procesamiento.
	UpdateResult(ctx context.Context, u *entity.Upload) error
	// Delete elimina el upload; las notas ya importadas se conservan.
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
