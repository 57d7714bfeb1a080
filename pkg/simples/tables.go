package simples

import "github.com/shopspring/decimal"

// =============================================================================
// Límites superiores de RBT12 (comunes a todos los Anexos).
// La faixa N empieza donde termina la N-1 (exclusivo), la primera en cero.
// =============================================================================

var upperBounds = [6]string{"180000", "360000", "720000", "1800000", "3600000", "4800000"}

type share map[Tributo]string

type faixaSpec struct {
	rate      string
	deduction string
	shares    share
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func build(a Anexo, desc string, specs [6]faixaSpec) Table {
	t := Table{Anexo: a, Description: desc, Faixas: make([]Faixa, 0, len(specs))}
	lower := decimal.Zero
	for i, s := range specs {
		upper := d(upperBounds[i])
		shares := make(map[Tributo]decimal.Decimal, len(s.shares))
		for k, v := range s.shares {
			shares[k] = d(v)
		}
		t.Faixas = append(t.Faixas, Faixa{
			Number:      i + 1,
			LowerBound:  lower,
			UpperBound:  upper,
			NominalRate: d(s.rate),
			Deduction:   d(s.deduction),
			shares:      shares,
		})
		lower = upper
	}
	return t
}

// =============================================================================
// Anexo I - Comércio
// =============================================================================

var partilhaAnexo1 = share{IRPJ: "0.055", CSLL: "0.035", COFINS: "0.1274", PIS: "0.0276", CPP: "0.415", ICMS: "0.34"}

var anexo1 = build(Anexo1, "Anexo I - Comércio", [6]faixaSpec{
	{"0.04", "0", partilhaAnexo1},
	{"0.073", "5940", partilhaAnexo1},
	{"0.095", "13860", partilhaAnexo1},
	{"0.107", "22500", partilhaAnexo1},
	{"0.143", "87300", partilhaAnexo1},
	{"0.19", "378000", partilhaAnexo1},
})

// =============================================================================
// Anexo II - Indústria
// =============================================================================

var partilhaAnexo2 = share{IRPJ: "0.055", CSLL: "0.035", COFINS: "0.1274", PIS: "0.0276", CPP: "0.375", IPI: "0.075", ICMS: "0.3"}

var anexo2 = build(Anexo2, "Anexo II - Indústria", [6]faixaSpec{
	{"0.045", "0", partilhaAnexo2},
	{"0.078", "5940", partilhaAnexo2},
	{"0.10", "13860", partilhaAnexo2},
	{"0.112", "22500", partilhaAnexo2},
	{"0.147", "85500", partilhaAnexo2},
	{"0.30", "720000", partilhaAnexo2},
})

// =============================================================================
// Anexo III - Serviços
// =============================================================================

var partilhaAnexo3 = share{IRPJ: "0.04", CSLL: "0.035", COFINS: "0.1282", PIS: "0.0278", CPP: "0.434", ISS: "0.335"}

var anexo3 = build(Anexo3, "Anexo III - Serviços", [6]faixaSpec{
	{"0.06", "0", partilhaAnexo3},
	{"0.112", "9360", partilhaAnexo3},
	{"0.135", "17640", partilhaAnexo3},
	{"0.16", "35640", partilhaAnexo3},
	{"0.21", "125640", partilhaAnexo3},
	{"0.33", "648000", partilhaAnexo3},
})

// =============================================================================
// Anexo IV - Serviços (CPP recolhida fora do DAS)
// =============================================================================

var anexo4 = build(Anexo4, "Anexo IV - Serviços", [6]faixaSpec{
	{"0.045", "0", share{IRPJ: "0.188", CSLL: "0.155", COFINS: "0.2046", PIS: "0.0444", ISS: "0.408"}},
	{"0.09", "8100", share{IRPJ: "0.198", CSLL: "0.155", COFINS: "0.2046", PIS: "0.0444", ISS: "0.398"}},
	{"0.102", "12420", share{IRPJ: "0.208", CSLL: "0.15", COFINS: "0.2096", PIS: "0.0454", ISS: "0.387"}},
	{"0.14", "39780", share{IRPJ: "0.178", CSLL: "0.15", COFINS: "0.1996", PIS: "0.0434", ISS: "0.429"}},
	{"0.22", "183780", share{IRPJ: "0.188", CSLL: "0.19", COFINS: "0.2046", PIS: "0.0444", ISS: "0.373"}},
	{"0.33", "828000", share{IRPJ: "0.35", CSLL: "0.15", COFINS: "0.1638", PIS: "0.0362", ISS: "0.3"}},
})

// =============================================================================
// Anexo V - Serviços (fator R)
// =============================================================================

var (
	partilhaAnexo5Faixa23 = share{IRPJ: "0.23", CSLL: "0.15", COFINS: "0.1443", PIS: "0.0312", CPP: "0.2785", ISS: "0.166"}
	partilhaAnexo5Faixa45 = share{IRPJ: "0.21", CSLL: "0.125", COFINS: "0.1476", PIS: "0.032", CPP: "0.305", ISS: "0.1804"}
)

var anexo5 = build(Anexo5, "Anexo V - Serviços", [6]faixaSpec{
	{"0.155", "0", share{IRPJ: "0.25", CSLL: "0.15", COFINS: "0.141", PIS: "0.0305", CPP: "0.2885", ISS: "0.135"}},
	{"0.18", "4500", partilhaAnexo5Faixa23},
	{"0.195", "9900", partilhaAnexo5Faixa23},
	{"0.205", "17100", partilhaAnexo5Faixa45},
	{"0.23", "62100", partilhaAnexo5Faixa45},
	{"0.305", "540000", share{IRPJ: "0.35", CSLL: "0.15", COFINS: "0.1638", PIS: "0.0362", CPP: "0.235", ISS: "0.065"}},
})

var tables = map[Anexo]Table{
	Anexo1: anexo1,
	Anexo2: anexo2,
	Anexo3: anexo3,
	Anexo4: anexo4,
	Anexo5: anexo5,
}
