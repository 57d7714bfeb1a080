// Package simples contiene las tablas de faixas del Simples Nacional
// (LC 123/2006, redação LC 155/2016), Anexos I a V, con alíquota nominal,
// parcela a deduzir y partilha de tributos por faixa.
package simples

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Anexo identifica la tabla de tributación de la empresa.
type Anexo string

const (
	Anexo1 Anexo = "anexo1" // Comércio
	Anexo2 Anexo = "anexo2" // Indústria
	Anexo3 Anexo = "anexo3" // Serviços (receitas de locação de bens móveis, etc.)
	Anexo4 Anexo = "anexo4" // Serviços (limpeza, vigilância, obras, advocacia)
	Anexo5 Anexo = "anexo5" // Serviços (fator R < 28%)
)

// Tributo es la clave de la partilha.
type Tributo string

const (
	IRPJ   Tributo = "IRPJ"
	CSLL   Tributo = "CSLL"
	COFINS Tributo = "COFINS"
	PIS    Tributo = "PIS/Pasep"
	CPP    Tributo = "CPP"
	ICMS   Tributo = "ICMS"
	IPI    Tributo = "IPI"
	ISS    Tributo = "ISS"
)

// Faixa es un tramo de receita bruta acumulada en 12 meses (RBT12).
// El límite inferior es exclusivo y el superior inclusivo.
type Faixa struct {
	Number      int
	LowerBound  decimal.Decimal
	UpperBound  decimal.Decimal
	NominalRate decimal.Decimal
	Deduction   decimal.Decimal
	shares      map[Tributo]decimal.Decimal
}

// Share devuelve la fracción del tributo en la partilha (cero si el tributo no participa).
func (f Faixa) Share(t Tributo) decimal.Decimal {
	return f.shares[t]
}

// Contains indica si rbt12 cae en la faixa: LowerBound < rbt12 <= UpperBound.
func (f Faixa) Contains(rbt12 decimal.Decimal) bool {
	return rbt12.GreaterThan(f.LowerBound) && rbt12.LessThanOrEqual(f.UpperBound)
}

// rateScale decimales de la alíquota efectiva cuando la división no es exacta.
const rateScale = 16

// EffectiveRate calcula (rbt12 × alíquota nominal − parcela a deduzir) / rbt12.
// El cociente se redondea a 16 decimales (solo afecta divisiones periódicas).
// Devuelve cero si rbt12 no es positivo.
func (f Faixa) EffectiveRate(rbt12 decimal.Decimal) decimal.Decimal {
	if !rbt12.IsPositive() {
		return decimal.Zero
	}
	return rbt12.Mul(f.NominalRate).Sub(f.Deduction).DivRound(rbt12, rateScale)
}

// PisCofinsFactor es la suma de las fracciones de COFINS y PIS/Pasep en la partilha.
func (f Faixa) PisCofinsFactor() decimal.Decimal {
	return f.Share(COFINS).Add(f.Share(PIS))
}

// Table agrupa las faixas de un Anexo, ordenadas por límite superior.
type Table struct {
	Anexo       Anexo
	Description string
	Faixas      []Faixa
}

// Find devuelve la faixa que contiene rbt12. ok=false si rbt12 está fuera de toda faixa.
func (t Table) Find(rbt12 decimal.Decimal) (Faixa, bool) {
	for _, f := range t.Faixas {
		if f.Contains(rbt12) {
			return f, true
		}
	}
	return Faixa{}, false
}

// Lookup devuelve la tabla del Anexo.
func Lookup(a Anexo) (Table, bool) {
	t, ok := tables[a]
	return t, ok
}

// FindFaixa combina Lookup y Find.
func FindFaixa(a Anexo, rbt12 decimal.Decimal) (Faixa, bool) {
	t, ok := Lookup(a)
	if !ok {
		return Faixa{}, false
	}
	return t.Find(rbt12)
}

// IsValid indica si el Anexo existe en las tablas.
func (a Anexo) IsValid() bool {
	_, ok := tables[a]
	return ok
}

// Anexos devuelve los Anexos disponibles en orden.
func Anexos() []Anexo {
	out := make([]Anexo, 0, len(tables))
	for a := range tables {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
