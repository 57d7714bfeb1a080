package apuracao_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/internal/domain/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/domain/classification"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

func item(ncm, cst, cfop, value string) entity.InvoiceItem {
	return entity.InvoiceItem{NCMCode: ncm, CSTPIS: cst, CFOP: cfop, TotalValue: dec(value)}
}

func classified(date string, items ...entity.InvoiceItem) *entity.Invoice {
	inv := &entity.Invoice{ID: date, IssueDate: date, Items: items}
	return classification.NewClassifier().ClassifyInvoice(inv)
}

// ── Aggregator ────────────────────────────────────────────────────────────────

func TestAggregate_SoloCFOPDeVenta(t *testing.T) {
	invoices := []*entity.Invoice{
		classified("2024-03-15",
			item("33051000", "04", "5405", "10000.00"),
			item("39241000", "01", "5102", "5000.00"),
			item("22030000", "04", "5910", "999.99"), // bonificação: fuera de ambos totales
		),
	}

	revs := apuracao.NewAggregator().Aggregate(invoices)
	require.Len(t, revs, 1)
	assert.Equal(t, "2024-03", revs[0].Month)
	assertDec(t, "15000", revs[0].TotalRevenue, "receita total")
	assertDec(t, "10000", revs[0].MonofasicoRevenue, "receita monofásica")
}

func TestAggregate_OrdenAscendenteYAditivo(t *testing.T) {
	invoices := []*entity.Invoice{
		classified("2024-05-01", item("22021000", "04", "6102", "300")),
		classified("2024-02-10", item("39241000", "01", "5102", "100")),
		classified("2024-05-20", item("39241000", "01", "5102", "50")),
		classified("2024-02-28", item("22011000", "01", "5405", "25")),
	}

	revs := apuracao.NewAggregator().Aggregate(invoices)
	require.Len(t, revs, 2)
	assert.Equal(t, "2024-02", revs[0].Month)
	assert.Equal(t, "2024-05", revs[1].Month)

	assertDec(t, "125", revs[0].TotalRevenue, "febrero")
	assertDec(t, "25", revs[0].MonofasicoRevenue, "NCM monofásico cuenta aunque el CST no lo sea")
	assertDec(t, "350", revs[1].TotalRevenue, "mayo")
	assertDec(t, "300", revs[1].MonofasicoRevenue, "mayo monofásico")

	sum := revs[0].TotalRevenue.Add(revs[1].TotalRevenue)
	assertDec(t, "475", sum, "la suma de meses es la suma de ítems de venta")
}

func TestAggregate_MesSinVentasNoAparece(t *testing.T) {
	invoices := []*entity.Invoice{
		classified("2024-01-10", item("33051000", "04", "1102", "700")), // compra
	}
	assert.Empty(t, apuracao.NewAggregator().Aggregate(invoices))
}

func TestAggregate_CFOPsPersonalizados(t *testing.T) {
	invoices := []*entity.Invoice{
		classified("2024-01-10", item("33051000", "04", "5405", "10"), item("33051000", "04", "5656", "5")),
	}
	revs := apuracao.NewAggregator("5656").Aggregate(invoices)
	require.Len(t, revs, 1)
	assertDec(t, "5", revs[0].TotalRevenue, "solo la CFOP configurada")
}

// ── Calculator ────────────────────────────────────────────────────────────────

func TestCalculateMonth_EjemploAnexoI(t *testing.T) {
	rev := entity.MonthlyRevenue{Month: "2024-03", TotalRevenue: dec("15000.00"), MonofasicoRevenue: dec("10000.00")}
	in := entity.MonthlyCalculationInput{Month: "2024-03", RBT12: decPtr("200000.00"), Anexo: simples.Anexo1, DASPaid: dec("900")}

	res := apuracao.NewCalculator().CalculateMonth(rev, in)

	assert.Equal(t, 2, res.Faixa)
	// (200000 × 0.073 − 5940) / 200000 = 0.0433
	assertDec(t, "0.0433", res.EffectiveRate, "alíquota efetiva")
	// 10000 × 0.0433 × (0.1274 + 0.0276)
	assertDec(t, "67.115", res.CreditAmount, "crédito")
	// (15000 − 10000) × 0.0433
	assertDec(t, "216.5", res.RecalculatedDASDue, "DAS recalculado")
	assertDec(t, "900", res.DASPaid, "DAS pago se conserva")
	assertDec(t, "15000", res.TotalRevenue, "receita total")
}

func TestCalculateMonth_ResultadoEnCero(t *testing.T) {
	rev := entity.MonthlyRevenue{Month: "2024-03", TotalRevenue: dec("1000"), MonofasicoRevenue: dec("400")}

	cases := []struct {
		name string
		in   entity.MonthlyCalculationInput
		rev  entity.MonthlyRevenue
	}{
		{"sin anexo", entity.MonthlyCalculationInput{RBT12: decPtr("100000")}, rev},
		{"sin rbt12", entity.MonthlyCalculationInput{Anexo: simples.Anexo1}, rev},
		{"rbt12 cero", entity.MonthlyCalculationInput{Anexo: simples.Anexo1, RBT12: decPtr("0")}, rev},
		{"rbt12 negativo", entity.MonthlyCalculationInput{Anexo: simples.Anexo1, RBT12: decPtr("-5")}, rev},
		{"rbt12 sobre el teto", entity.MonthlyCalculationInput{Anexo: simples.Anexo1, RBT12: decPtr("4800000.01")}, rev},
		{"anexo desconocido", entity.MonthlyCalculationInput{Anexo: "anexo9", RBT12: decPtr("100000")}, rev},
		{"sin receita monofásica", entity.MonthlyCalculationInput{Anexo: simples.Anexo1, RBT12: decPtr("100000")},
			entity.MonthlyRevenue{Month: "2024-03", TotalRevenue: dec("1000"), MonofasicoRevenue: decimal.Zero}},
	}

	calc := apuracao.NewCalculator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.DASPaid = dec("55")
			res := calc.CalculateMonth(tc.rev, tc.in)

			assert.True(t, res.EffectiveRate.IsZero())
			assert.True(t, res.CreditAmount.IsZero())
			assert.True(t, res.RecalculatedDASDue.IsZero())
			assert.Equal(t, 0, res.Faixa)
			assertDec(t, "55", res.DASPaid, "DAS pago se informa igual")
			assert.True(t, tc.rev.TotalRevenue.Equal(res.TotalRevenue), "la receita se informa igual")
		})
	}
}

func TestCalculateMonth_LimitesDeFaixa(t *testing.T) {
	rev := entity.MonthlyRevenue{Month: "2024-01", TotalRevenue: dec("1000"), MonofasicoRevenue: dec("1000")}
	calc := apuracao.NewCalculator()

	atLimit := calc.CalculateMonth(rev, entity.MonthlyCalculationInput{Anexo: simples.Anexo1, RBT12: decPtr("180000")})
	assert.Equal(t, 1, atLimit.Faixa, "el límite superior es inclusivo")
	assertDec(t, "0.04", atLimit.EffectiveRate, "primera faixa: alíquota nominal")

	above := calc.CalculateMonth(rev, entity.MonthlyCalculationInput{Anexo: simples.Anexo1, RBT12: decPtr("180000.01")})
	assert.Equal(t, 2, above.Faixa, "el límite inferior es exclusivo")
}

func TestCalculate_MesSinParametrosYOrden(t *testing.T) {
	revs := []entity.MonthlyRevenue{
		{Month: "2024-02", TotalRevenue: dec("100"), MonofasicoRevenue: dec("100")},
		{Month: "2024-01", TotalRevenue: dec("100"), MonofasicoRevenue: dec("100")},
	}
	inputs := map[string]entity.MonthlyCalculationInput{
		"2024-01": {Month: "2024-01", Anexo: simples.Anexo1, RBT12: decPtr("100000")},
	}

	results := apuracao.NewCalculator().Calculate(revs, inputs)
	require.Len(t, results, 2)
	assert.Equal(t, "2024-01", results[0].CompetenceMonth)
	assertDec(t, "0.62", results[0].CreditAmount, "100 × 0.04 × 0.155")
	assert.True(t, results[1].CreditAmount.IsZero(), "mes sin parámetros queda en cero")
}

func TestCalculate_NoNegativo(t *testing.T) {
	revs := []entity.MonthlyRevenue{{Month: "2024-01", TotalRevenue: dec("100"), MonofasicoRevenue: dec("100")}}
	for _, a := range simples.Anexos() {
		table, _ := simples.Lookup(a)
		for _, f := range table.Faixas {
			in := map[string]entity.MonthlyCalculationInput{"2024-01": {Anexo: a, RBT12: &f.UpperBound}}
			res := apuracao.NewCalculator().Calculate(revs, in)[0]
			assert.False(t, res.CreditAmount.IsNegative(), "%s faixa %d", a, f.Number)
			assert.False(t, res.RecalculatedDASDue.IsNegative(), "%s faixa %d", a, f.Number)
		}
	}
}

// ── Summary ───────────────────────────────────────────────────────────────────

func TestByYearYTotal(t *testing.T) {
	results := []entity.CalculationResult{
		{CompetenceMonth: "2023-12", TotalRevenue: dec("10"), MonofasicoRevenue: dec("5"), DASPaid: dec("1"), RecalculatedDASDue: dec("0.2"), CreditAmount: dec("0.3")},
		{CompetenceMonth: "2024-01", TotalRevenue: dec("20"), MonofasicoRevenue: dec("10"), DASPaid: dec("2"), RecalculatedDASDue: dec("0.4"), CreditAmount: dec("0.6")},
		{CompetenceMonth: "2024-02", TotalRevenue: dec("30"), MonofasicoRevenue: dec("15"), DASPaid: dec("3"), RecalculatedDASDue: dec("0.6"), CreditAmount: dec("0.9")},
	}

	years := apuracao.ByYear(results)
	require.Len(t, years, 2)
	assert.Equal(t, "2023", years[0].Period)
	assert.Equal(t, 1, years[0].Months)
	assert.Equal(t, "2024", years[1].Period)
	assert.Equal(t, 2, years[1].Months)
	assertDec(t, "1.5", years[1].CreditAmount, "crédito 2024")

	total := apuracao.Total(results)
	assert.Equal(t, apuracao.PeriodTotal, total.Period)
	assert.Equal(t, 3, total.Months)
	assertDec(t, "60", total.TotalRevenue, "receita total")
	assertDec(t, "1.8", total.CreditAmount, "crédito total")
	assertDec(t, "6", total.DASPaid, "DAS pago total")
}

func TestTotal_Vacio(t *testing.T) {
	total := apuracao.Total(nil)
	assert.Equal(t, 0, total.Months)
	assert.True(t, total.CreditAmount.IsZero())
}
