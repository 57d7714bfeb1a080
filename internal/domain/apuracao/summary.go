package apuracao

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// PeriodTotal es la etiqueta del acumulado de todo el período.
const PeriodTotal = "TOTAL"

// ByYear acumula los resultados mensuales por año (YYYY), en orden ascendente.
func ByYear(results []entity.CalculationResult) []entity.PeriodSummary {
	byYear := make(map[string]*summary)
	for _, r := range results {
		if len(r.CompetenceMonth) < 4 {
			continue
		}
		year := r.CompetenceMonth[:4]
		s, ok := byYear[year]
		if !ok {
			s = newSummary(year)
			byYear[year] = s
		}
		s.add(r)
	}

	out := make([]entity.PeriodSummary, 0, len(byYear))
	for _, s := range byYear {
		out = append(out, s.PeriodSummary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// Total acumula todos los resultados.
func Total(results []entity.CalculationResult) entity.PeriodSummary {
	s := newSummary(PeriodTotal)
	for _, r := range results {
		s.add(r)
	}
	return s.PeriodSummary
}

type summary struct {
	entity.PeriodSummary
}

func newSummary(period string) *summary {
	return &summary{entity.PeriodSummary{
		Period:             period,
		TotalRevenue:       decimal.Zero,
		MonofasicoRevenue:  decimal.Zero,
		DASPaid:            decimal.Zero,
		RecalculatedDASDue: decimal.Zero,
		CreditAmount:       decimal.Zero,
	}}
}

func (s *summary) add(r entity.CalculationResult) {
	s.Months++
	s.TotalRevenue = s.TotalRevenue.Add(r.TotalRevenue)
	s.MonofasicoRevenue = s.MonofasicoRevenue.Add(r.MonofasicoRevenue)
	s.DASPaid = s.DASPaid.Add(r.DASPaid)
	s.RecalculatedDASDue = s.RecalculatedDASDue.Add(r.RecalculatedDASDue)
	s.CreditAmount = s.CreditAmount.Add(r.CreditAmount)
}
