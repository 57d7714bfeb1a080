// Package apuracao orquesta el cálculo mensual del crédito a partir de las notas
// importadas y de los parámetros informados por el operador.
package apuracao

import (
	"context"
	"errors"
	"fmt"
	"sort"

	calc "github.com/jhoicas/recupera-monofasico/internal/domain/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/repository"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
)

// MonofasicoItem ítem monofásico con los datos de la nota para el reporte detallado.
type MonofasicoItem struct {
	AccessKey string
	IssueDate string
	Item      entity.InvoiceItem
}

// Report vistas mensual, anual y total del período, más el detalle de ítems monofásicos.
type Report struct {
	Monthly         []entity.CalculationResult
	Yearly          []entity.PeriodSummary
	Total           entity.PeriodSummary
	MonofasicoItems []MonofasicoItem
}

// Service caso de uso de apuración.
type Service struct {
	invoices   repository.InvoiceRepository
	inputs     repository.CalculationInputRepository
	aggregator *calc.Aggregator
	calculator *calc.Calculator
	log        *logger.Logger
}

// NewService construye el caso de uso.
func NewService(
	invoices repository.InvoiceRepository,
	inputs repository.CalculationInputRepository,
	aggregator *calc.Aggregator,
	calculator *calc.Calculator,
	log *logger.Logger,
) *Service {
	return &Service{
		invoices:   invoices,
		inputs:     inputs,
		aggregator: aggregator,
		calculator: calculator,
		log:        log.Component("apuracao"),
	}
}

// ListInputs devuelve los parámetros mensuales ordenados por mes.
func (s *Service) ListInputs(ctx context.Context) ([]entity.MonthlyCalculationInput, error) {
	byMonth, err := s.inputs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar parámetros: %w", err)
	}
	out := make([]entity.MonthlyCalculationInput, 0, len(byMonth))
	for _, in := range byMonth {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// SaveInputs valida y guarda (insert o reemplazo) los parámetros de cada mes.
func (s *Service) SaveInputs(ctx context.Context, inputs []entity.MonthlyCalculationInput) error {
	var errs []error
	for _, in := range inputs {
		if err := calc.ValidateInput(in); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if err := s.inputs.Upsert(ctx, inputs); err != nil {
		return fmt.Errorf("guardar parámetros: %w", err)
	}
	s.log.Info().Int("months", len(inputs)).Msg("parámetros guardados")
	return nil
}

// DeleteInput elimina los parámetros de un mes.
func (s *Service) DeleteInput(ctx context.Context, month string) error {
	return s.inputs.Delete(ctx, month)
}

// Calculate recalcula los resultados mensuales desde el estado actual.
func (s *Service) Calculate(ctx context.Context) ([]entity.CalculationResult, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}
	inputs, err := s.inputs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar parámetros: %w", err)
	}
	return s.calculate(invoices, inputs), nil
}

func (s *Service) calculate(invoices []*entity.Invoice, inputs map[string]entity.MonthlyCalculationInput) []entity.CalculationResult {
	revenues := s.aggregator.Aggregate(invoices)
	results := s.calculator.Calculate(revenues, inputs)
	s.log.Debug().Int("invoices", len(invoices)).Int("months", len(results)).Msg("apuración recalculada")
	return results
}

// Report arma las vistas mensual, anual y total y el detalle de todos los ítems monofásicos
// importados, con cualquier CFOP (la receita de la apuración sí filtra por CFOP de venta).
func (s *Service) Report(ctx context.Context) (*Report, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar notas: %w", err)
	}
	inputs, err := s.inputs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar parámetros: %w", err)
	}

	results := s.calculate(invoices, inputs)
	rep := &Report{
		Monthly: results,
		Yearly:  calc.ByYear(results),
		Total:   calc.Total(results),
	}
	for _, inv := range invoices {
		for _, it := range inv.Items {
			if it.IsMonofasico {
				rep.MonofasicoItems = append(rep.MonofasicoItems, MonofasicoItem{AccessKey: inv.AccessKey, IssueDate: inv.IssueDate, Item: it})
			}
		}
	}
	return rep, nil
}
