// Package apuracao agrega la receita de venta por mes de competencia y calcula el crédito
// de PIS/COFINS monofásico con las tablas del Simples Nacional.
package apuracao

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	pkgnfe "github.com/jhoicas/recupera-monofasico/pkg/nfe"
)

// Aggregator suma los ítems con CFOP de venta por mes (YYYY-MM de la fecha de emisión).
type Aggregator struct {
	salesCFOPs map[string]bool
}

// NewAggregator crea el agregador. Sin CFOPs usa pkgnfe.SalesCFOPs (5102, 5405, 6102).
func NewAggregator(salesCFOPs ...string) *Aggregator {
	if len(salesCFOPs) == 0 {
		return &Aggregator{salesCFOPs: pkgnfe.SalesCFOPs}
	}
	set := make(map[string]bool, len(salesCFOPs))
	for _, c := range salesCFOPs {
		set[c] = true
	}
	return &Aggregator{salesCFOPs: set}
}

// IsSale indica si la CFOP cuenta como venta.
func (a *Aggregator) IsSale(cfop string) bool {
	return a.salesCFOPs[cfop]
}

// Aggregate devuelve un registro por mes con al menos un ítem de venta, en orden ascendente.
// Ítems con otras CFOP se excluyen de ambos totales.
func (a *Aggregator) Aggregate(invoices []*entity.Invoice) []entity.MonthlyRevenue {
	byMonth := make(map[string]*entity.MonthlyRevenue)
	for _, inv := range invoices {
		month := inv.CompetenceMonth()
		if month == "" {
			continue
		}
		for _, it := range inv.Items {
			if !a.IsSale(it.CFOP) {
				continue
			}
			rev, ok := byMonth[month]
			if !ok {
				rev = &entity.MonthlyRevenue{Month: month, TotalRevenue: decimal.Zero, MonofasicoRevenue: decimal.Zero}
				byMonth[month] = rev
			}
			rev.TotalRevenue = rev.TotalRevenue.Add(it.TotalValue)
			if it.IsMonofasico {
				rev.MonofasicoRevenue = rev.MonofasicoRevenue.Add(it.TotalValue)
			}
		}
	}

	out := make([]entity.MonthlyRevenue, 0, len(byMonth))
	for _, rev := range byMonth {
		out = append(out, *rev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
