package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// AnexoResponse tabla de un Anexo del Simples Nacional.
type AnexoResponse struct {
	Anexo       string          `json:"anexo"`
	Description string          `json:"description"`
	Faixas      []FaixaResponse `json:"faixas"`
}

// FaixaResponse faixa con partilha PIS/COFINS.
type FaixaResponse struct {
	Number          int             `json:"number"`
	LowerBound      decimal.Decimal `json:"lower_bound"`
	UpperBound      decimal.Decimal `json:"upper_bound"`
	NominalRate     decimal.Decimal `json:"nominal_rate"`
	Deduction       decimal.Decimal `json:"deduction"`
	PisShare        decimal.Decimal `json:"pis_share"`
	CofinsShare     decimal.Decimal `json:"cofins_share"`
	PisCofinsFactor decimal.Decimal `json:"pis_cofins_factor"`
}

// ToAnexoResponse mapea una tabla.
func ToAnexoResponse(t simples.Table) AnexoResponse {
	faixas := make([]FaixaResponse, 0, len(t.Faixas))
	for _, f := range t.Faixas {
		faixas = append(faixas, FaixaResponse{
			Number:          f.Number,
			LowerBound:      f.LowerBound,
			UpperBound:      f.UpperBound,
			NominalRate:     f.NominalRate,
			Deduction:       f.Deduction,
			PisShare:        f.Share(simples.PIS),
			CofinsShare:     f.Share(simples.COFINS),
			PisCofinsFactor: f.PisCofinsFactor(),
		})
	}
	return AnexoResponse{Anexo: string(t.Anexo), Description: t.Description, Faixas: faixas}
}
