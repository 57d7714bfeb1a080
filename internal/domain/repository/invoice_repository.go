package repository

import (
	"context"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para notas NF-e y sus ítems.
type InvoiceRepository interface {
	// Create persiste la cabecera y todos los ítems. Devuelve domain.ErrDuplicate
	// si ya existe una nota con la misma huella (Fingerprint) o la misma chave de acesso.
	Create(ctx context.Context, inv *entity.Invoice) error

	// List devuelve todas las notas con sus ítems, ordenadas por fecha de emisión.
	List(ctx context.Context) ([]*entity.Invoice, error)

	// Exists indica si la nota ya fue importada: misma huella, o misma chave de acesso
	// cuando accessKey no es vacía.
	Exists(ctx context.Context, fingerprint, accessKey string) (bool, error)

	// UpdateItems persiste descripción, NCM, flag monofásico y flag de revisión de los ítems.
	UpdateItems(ctx context.Context, items []entity.InvoiceItem) error

	// DeleteAll elimina todas las notas (reinicio de la apuración).
	DeleteAll(ctx context.Context) error
}
