package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

var _ repository.CalculationInputRepository = (*CalculationInputRepo)(nil)

// CalculationInputRepo parámetros mensuales de la apuración.
type CalculationInputRepo struct {
	q Querier
}

// NewCalculationInputRepository construye el adaptador.
func NewCalculationInputRepository(q Querier) *CalculationInputRepo {
	return &CalculationInputRepo{q: q}
}

// List devuelve los parámetros indexados por mes.
func (r *CalculationInputRepo) List(ctx context.Context) (map[string]entity.MonthlyCalculationInput, error) {
	rows, err := r.q.Query(ctx, `SELECT month, rbt12, anexo, das_paid FROM calculation_inputs`)
	if err != nil {
		return nil, fmt.Errorf("list calculation inputs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]entity.MonthlyCalculationInput)
	for rows.Next() {
		var in entity.MonthlyCalculationInput
		var anexo string
		if err := rows.Scan(&in.Month, &in.RBT12, &anexo, &in.DASPaid); err != nil {
			return nil, fmt.Errorf("scan calculation input: %w", err)
		}
		in.Anexo = simples.Anexo(anexo)
		out[in.Month] = in
	}
	return out, rows.Err()
}

// Upsert inserta o reemplaza los parámetros de cada mes.
func (r *CalculationInputRepo) Upsert(ctx context.Context, inputs []entity.MonthlyCalculationInput) error {
	now := time.Now()
	b := &pgx.Batch{}
	for _, in := range inputs {
		b.Queue(`
			INSERT INTO calculation_inputs (month, rbt12, anexo, das_paid, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (month) DO UPDATE
			SET rbt12 = EXCLUDED.rbt12, anexo = EXCLUDED.anexo, das_paid = EXCLUDED.das_paid, updated_at = EXCLUDED.updated_at`,
			in.Month, in.RBT12, string(in.Anexo), in.DASPaid, now,
		)
	}
	return execBatch(ctx, r.q, b, "upsert calculation input")
}

// Delete elimina los parámetros del mes.
func (r *CalculationInputRepo) Delete(ctx context.Context, month string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM calculation_inputs WHERE month = $1`, month)
	if err != nil {
		return fmt.Errorf("delete calculation input: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
