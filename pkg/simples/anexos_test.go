package simples_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFindFaixa_LimitesDeFaixa(t *testing.T) {
	cases := []struct {
		name   string
		rbt12  string
		faixa  int
		existe bool
	}{
		{"cero no entra en ninguna faixa", "0", 0, false},
		{"un centavo cae en la primera", "0.01", 1, true},
		{"límite superior inclusivo", "180000", 1, true},
		{"un centavo arriba pasa a la segunda", "180000.01", 2, true},
		{"valor medio", "200000", 2, true},
		{"límite superior de la última", "4800000", 6, true},
		{"encima del teto", "4800000.01", 0, false},
		{"negativo", "-10", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, ok := simples.FindFaixa(simples.Anexo1, dec(tc.rbt12))
			assert.Equal(t, tc.existe, ok)
			if tc.existe {
				assert.Equal(t, tc.faixa, f.Number)
			}
		})
	}
}

func TestFindFaixa_AnexoInexistente(t *testing.T) {
	_, ok := simples.FindFaixa(simples.Anexo("anexo9"), dec("100000"))
	assert.False(t, ok)
	assert.False(t, simples.Anexo("anexo9").IsValid())
	assert.True(t, simples.Anexo3.IsValid())
}

func TestFaixas_Contiguas(t *testing.T) {
	for _, a := range simples.Anexos() {
		table, ok := simples.Lookup(a)
		require.True(t, ok)
		require.Len(t, table.Faixas, 6, "cada Anexo tiene seis faixas")

		assert.True(t, table.Faixas[0].LowerBound.IsZero(), "%s: la primera faixa empieza en cero", a)
		for i := 1; i < len(table.Faixas); i++ {
			assert.True(t, table.Faixas[i].LowerBound.Equal(table.Faixas[i-1].UpperBound),
				"%s: faixa %d debe empezar donde termina la anterior", a, i+1)
		}
	}
}

func TestEffectiveRate_AnexoISegundaFaixa(t *testing.T) {
	f, ok := simples.FindFaixa(simples.Anexo1, dec("200000"))
	require.True(t, ok)

	// (200000 × 0.073 − 5940) / 200000 = 8660 / 200000
	assert.True(t, dec("0.0433").Equal(f.EffectiveRate(dec("200000"))), "got %s", f.EffectiveRate(dec("200000")))
	assert.True(t, dec("0.155").Equal(f.PisCofinsFactor()))
}

func TestEffectiveRate_PrimeraFaixaEsNominal(t *testing.T) {
	f, ok := simples.FindFaixa(simples.Anexo3, dec("100000"))
	require.True(t, ok)
	assert.True(t, dec("0.06").Equal(f.EffectiveRate(dec("100000"))))
}

func TestEffectiveRate_DivisionPeriodica(t *testing.T) {
	f, ok := simples.FindFaixa(simples.Anexo1, dec("210000"))
	require.True(t, ok)
	require.Equal(t, 2, f.Number)

	// (210000 × 0,073 − 5940) / 210000 = 9390 / 210000 = 0,044714285714285714...
	rate := f.EffectiveRate(dec("210000"))
	assert.True(t, dec("0.0447142857142857").Equal(rate), "got %s", rate)
}

func TestEffectiveRate_Rbt12NoPositivo(t *testing.T) {
	table, _ := simples.Lookup(simples.Anexo1)
	assert.True(t, table.Faixas[0].EffectiveRate(decimal.Zero).IsZero())
}

func TestPartilha_AnexoIVPorFaixa(t *testing.T) {
	table, ok := simples.Lookup(simples.Anexo4)
	require.True(t, ok)

	assert.True(t, dec("0.249").Equal(table.Faixas[0].PisCofinsFactor()))
	assert.True(t, dec("0.255").Equal(table.Faixas[2].PisCofinsFactor()))
	assert.True(t, table.Faixas[0].Share(simples.CPP).IsZero(), "Anexo IV no incluye CPP")
}

func TestAnexos_Orden(t *testing.T) {
	assert.Equal(t, []simples.Anexo{simples.Anexo1, simples.Anexo2, simples.Anexo3, simples.Anexo4, simples.Anexo5}, simples.Anexos())
}
