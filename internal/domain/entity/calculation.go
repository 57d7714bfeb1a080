package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// MonthlyCalculationInput parámetros informados por el operador para un mes de competencia.
// RBT12 nil o no positivo y Anexo vacío producen un resultado en cero.
type MonthlyCalculationInput struct {
	Month   string // YYYY-MM
	RBT12   *decimal.Decimal
	Anexo   simples.Anexo
	DASPaid decimal.Decimal
}

// MonthlyRevenue receita de venta agregada por mes de competencia.
type MonthlyRevenue struct {
	Month             string
	TotalRevenue      decimal.Decimal
	MonofasicoRevenue decimal.Decimal
}

// CalculationResult resultado derivado para un mes; nunca se persiste como fuente de verdad.
type CalculationResult struct {
	CompetenceMonth    string
	Anexo              simples.Anexo
	Faixa              int // 0 si no se resolvió faixa
	TotalRevenue       decimal.Decimal
	MonofasicoRevenue  decimal.Decimal
	DASPaid            decimal.Decimal
	EffectiveRate      decimal.Decimal
	RecalculatedDASDue decimal.Decimal
	CreditAmount       decimal.Decimal
}

// PeriodSummary acumulado de resultados (año o período completo).
type PeriodSummary struct {
	Period             string // YYYY, o "TOTAL"
	Months             int
	TotalRevenue       decimal.Decimal
	MonofasicoRevenue  decimal.Decimal
	DASPaid            decimal.Decimal
	RecalculatedDASDue decimal.Decimal
	CreditAmount       decimal.Decimal
}
