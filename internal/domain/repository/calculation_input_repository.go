package repository

import (
	"context"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// CalculationInputRepository guarda los parámetros mensuales (RBT12, Anexo, DAS pago).
type CalculationInputRepository interface {
	// List devuelve los parámetros indexados por mes (YYYY-MM).
	List(ctx context.Context) (map[string]entity.MonthlyCalculationInput, error)
	// Upsert inserta o reemplaza los parámetros de cada mes.
	Upsert(ctx context.Context, inputs []entity.MonthlyCalculationInput) error
	// Delete elimina los parámetros de un mes; domain.ErrNotFound si no existían.
	Delete(ctx context.Context, month string) error
}
