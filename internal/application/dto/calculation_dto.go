package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// Vistas de GET /api/calculations/report.
const (
	ViewMonthly = "monthly"
	ViewYearly  = "yearly"
	ViewTotal   = "total"
)

// CalculationInputDTO parámetros de un mes; entrada y salida de /api/calculations/inputs.
type CalculationInputDTO struct {
	Month   string           `json:"month"` // YYYY-MM
	RBT12   *decimal.Decimal `json:"rbt12,omitempty"`
	Anexo   string           `json:"anexo,omitempty"`
	DASPaid decimal.Decimal  `json:"das_paid"`
}

// SaveInputsRequest body de PUT /api/calculations/inputs.
type SaveInputsRequest struct {
	Inputs []CalculationInputDTO `json:"inputs"`
}

// CalculationResultResponse resultado de un mes. Montos redondeados a centavos.
type CalculationResultResponse struct {
	CompetenceMonth    string          `json:"competence_month"`
	Anexo              string          `json:"anexo,omitempty"`
	Faixa              int             `json:"faixa"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	MonofasicoRevenue  decimal.Decimal `json:"monofasico_revenue"`
	DASPaid            decimal.Decimal `json:"das_paid"`
	EffectiveRate      decimal.Decimal `json:"effective_rate"`
	RecalculatedDASDue decimal.Decimal `json:"recalculated_das_due"`
	CreditAmount       decimal.Decimal `json:"credit_amount"`
}

// PeriodSummaryResponse acumulado anual o total.
type PeriodSummaryResponse struct {
	Period             string          `json:"period"`
	Months             int             `json:"months"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	MonofasicoRevenue  decimal.Decimal `json:"monofasico_revenue"`
	DASPaid            decimal.Decimal `json:"das_paid"`
	RecalculatedDASDue decimal.Decimal `json:"recalculated_das_due"`
	CreditAmount       decimal.Decimal `json:"credit_amount"`
}

// ReportResponse respuesta de GET /api/calculations/report; solo se llena la vista pedida.
type ReportResponse struct {
	View    string                      `json:"view"`
	Monthly []CalculationResultResponse `json:"monthly,omitempty"`
	Yearly  []PeriodSummaryResponse     `json:"yearly,omitempty"`
	Total   *PeriodSummaryResponse      `json:"total,omitempty"`
}

func money(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// ToEntity convierte el DTO en parámetros de dominio.
func (d CalculationInputDTO) ToEntity() entity.MonthlyCalculationInput {
	return entity.MonthlyCalculationInput{
		Month:   d.Month,
		RBT12:   d.RBT12,
		Anexo:   simples.Anexo(d.Anexo),
		DASPaid: d.DASPaid,
	}
}

// ToInputs convierte el body completo.
func (r SaveInputsRequest) ToInputs() []entity.MonthlyCalculationInput {
	out := make([]entity.MonthlyCalculationInput, 0, len(r.Inputs))
	for _, in := range r.Inputs {
		out = append(out, in.ToEntity())
	}
	return out
}

// ToCalculationInputList mapea los parámetros guardados.
func ToCalculationInputList(inputs []entity.MonthlyCalculationInput) []CalculationInputDTO {
	out := make([]CalculationInputDTO, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, CalculationInputDTO{Month: in.Month, RBT12: in.RBT12, Anexo: string(in.Anexo), DASPaid: in.DASPaid})
	}
	return out
}

// ToCalculationResult mapea un resultado mensual.
func ToCalculationResult(r entity.CalculationResult) CalculationResultResponse {
	return CalculationResultResponse{
		CompetenceMonth:    r.CompetenceMonth,
		Anexo:              string(r.Anexo),
		Faixa:              r.Faixa,
		TotalRevenue:       money(r.TotalRevenue),
		MonofasicoRevenue:  money(r.MonofasicoRevenue),
		DASPaid:            money(r.DASPaid),
		EffectiveRate:      r.EffectiveRate.Round(6),
		RecalculatedDASDue: money(r.RecalculatedDASDue),
		CreditAmount:       money(r.CreditAmount),
	}
}

// ToCalculationResults mapea la lista mensual.
func ToCalculationResults(results []entity.CalculationResult) []CalculationResultResponse {
	out := make([]CalculationResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToCalculationResult(r))
	}
	return out
}

// ToPeriodSummary mapea un acumulado.
func ToPeriodSummary(s entity.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		Period:             s.Period,
		Months:             s.Months,
		TotalRevenue:       money(s.TotalRevenue),
		MonofasicoRevenue:  money(s.MonofasicoRevenue),
		DASPaid:            money(s.DASPaid),
		RecalculatedDASDue: money(s.RecalculatedDASDue),
		CreditAmount:       money(s.CreditAmount),
	}
}

// ToReportResponse arma la vista pedida. Vista desconocida: ok=false.
func ToReportResponse(rep *apuracao.Report, view string) (ReportResponse, bool) {
	out := ReportResponse{View: view}
	switch view {
	case ViewMonthly:
		out.Monthly = ToCalculationResults(rep.Monthly)
	case ViewYearly:
		out.Yearly = make([]PeriodSummaryResponse, 0, len(rep.Yearly))
		for _, y := range rep.Yearly {
			out.Yearly = append(out.Yearly, ToPeriodSummary(y))
		}
	case ViewTotal:
		total := ToPeriodSummary(rep.Total)
		out.Total = &total
	default:
		return out, false
	}
	return out, true
}
