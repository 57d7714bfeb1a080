// Package review expone la revisión humana de ítems cuya señal NCM y CST no coinciden.
package review

import (
	"context"
	"fmt"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
	reviewrules "github.com/jhoicas/recupera-monofasico/internal/domain/review"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
)

// SaveResult resultado de guardar correcciones.
type SaveResult struct {
	Updated    int
	UnknownIDs []string
}

// Service caso de uso de revisión.
type Service struct {
	invoices repository.InvoiceRepository
	log      *logger.Logger
}

// NewService construye el caso de uso.
func NewService(invoices repository.InvoiceRepository, log *logger.Logger) *Service {
	return &Service{invoices: invoices, log: log.Component("review")}
}

// ListInvoices devuelve todas las notas importadas.
func (s *Service) ListInvoices(ctx context.Context) ([]*entity.Invoice, error) {
	return s.invoices.List(ctx)
}

// ListPending devuelve las notas con ítems pendientes de revisión (solo esos ítems).
func (s *Service) ListPending(ctx context.Context) ([]*entity.Invoice, error) {
	all, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}
	return reviewrules.Pending(all), nil
}

// Save aplica las correcciones por ID de ítem y persiste los ítems modificados.
// IDs inexistentes no abortan: se devuelven en UnknownIDs.
func (s *Service) Save(ctx context.Context, corrections map[string]entity.ItemCorrection) (*SaveResult, error) {
	if len(corrections) == 0 {
		return nil, fmt.Errorf("%w: ninguna corrección recibida", domain.ErrInvalidInput)
	}
	all, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}

	res := reviewrules.Apply(all, corrections)
	if len(res.UpdatedItems) > 0 {
		if err := s.invoices.UpdateItems(ctx, res.UpdatedItems); err != nil {
			return nil, fmt.Errorf("guardar correcciones: %w", err)
		}
	}
	if len(res.UnknownIDs) > 0 {
		s.log.Warn().Strs("item_ids", res.UnknownIDs).Msg("correcciones para ítems inexistentes")
	}
	s.log.Info().Int("updated", len(res.UpdatedItems)).Msg("revisión guardada")
	return &SaveResult{Updated: len(res.UpdatedItems), UnknownIDs: res.UnknownIDs}, nil
}

// ClearInvoices elimina todas las notas importadas.
func (s *Service) ClearInvoices(ctx context.Context) error {
	return s.invoices.DeleteAll(ctx)
}
