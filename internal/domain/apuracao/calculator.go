package apuracao

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// Calculator resuelve la faixa del Simples Nacional y calcula crédito y DAS recalculado.
type Calculator struct{}

// NewCalculator crea el calculador.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate produce un resultado por cada mes de revenues, en orden ascendente.
// Meses sin parámetros en inputs resultan en cero.
func (c *Calculator) Calculate(revenues []entity.MonthlyRevenue, inputs map[string]entity.MonthlyCalculationInput) []entity.CalculationResult {
	out := make([]entity.CalculationResult, 0, len(revenues))
	for _, rev := range revenues {
		out = append(out, c.CalculateMonth(rev, inputs[rev.Month]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompetenceMonth < out[j].CompetenceMonth })
	return out
}

// CalculateMonth aplica, para un mes:
//
//	alíquota efetiva = (RBT12 × alíquota nominal − parcela a deduzir) / RBT12
//	crédito          = receita monofásica × alíquota efetiva × (partilha COFINS + partilha PIS/Pasep)
//	DAS recalculado  = (receita total − receita monofásica) × alíquota efetiva
//
// Sin Anexo, con RBT12 ausente o no positivo, sin receita monofásica o sin faixa que
// contenga el RBT12, las tasas y montos calculados quedan en cero.
func (c *Calculator) CalculateMonth(rev entity.MonthlyRevenue, in entity.MonthlyCalculationInput) entity.CalculationResult {
	res := entity.CalculationResult{
		CompetenceMonth:    rev.Month,
		Anexo:              in.Anexo,
		TotalRevenue:       rev.TotalRevenue,
		MonofasicoRevenue:  rev.MonofasicoRevenue,
		DASPaid:            in.DASPaid,
		EffectiveRate:      decimal.Zero,
		RecalculatedDASDue: decimal.Zero,
		CreditAmount:       decimal.Zero,
	}

	if in.Anexo == "" || in.RBT12 == nil || !in.RBT12.IsPositive() || !rev.MonofasicoRevenue.IsPositive() {
		return res
	}
	rbt12 := *in.RBT12

	faixa, ok := simples.FindFaixa(in.Anexo, rbt12)
	if !ok {
		return res
	}

	rate := faixa.EffectiveRate(rbt12)
	res.Faixa = faixa.Number
	res.EffectiveRate = rate
	res.CreditAmount = nonNegative(rev.MonofasicoRevenue.Mul(rate).Mul(faixa.PisCofinsFactor()))
	res.RecalculatedDASDue = nonNegative(rev.TotalRevenue.Sub(rev.MonofasicoRevenue).Mul(rate))
	return res
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
