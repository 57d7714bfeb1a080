package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

// monthInput fila del archivo de parámetros. Los montos se leen como texto para no pasar por float.
type monthInput struct {
	Month   string `mapstructure:"month"`
	Anexo   string `mapstructure:"anexo"`
	RBT12   string `mapstructure:"rbt12"`
	DASPaid string `mapstructure:"das_paid"`
}

// loadInputs lee los parámetros mensuales de un archivo YAML o JSON:
//
//	months:
//	  - month: "2024-03"
//	    anexo: anexo1
//	    rbt12: "200000.00"
//	    das_paid: "900.00"
func loadInputs(path string) ([]entity.MonthlyCalculationInput, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}

	var rows []monthInput
	if err := v.UnmarshalKey("months", &rows); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}

	out := make([]entity.MonthlyCalculationInput, 0, len(rows))
	for _, r := range rows {
		in := entity.MonthlyCalculationInput{Month: r.Month, Anexo: simples.Anexo(r.Anexo)}
		if r.RBT12 != "" {
			d, err := decimal.NewFromString(r.RBT12)
			if err != nil {
				return nil, fmt.Errorf("mes %s: rbt12 %q inválido", r.Month, r.RBT12)
			}
			in.RBT12 = &d
		}
		if r.DASPaid != "" {
			d, err := decimal.NewFromString(r.DASPaid)
			if err != nil {
				return nil, fmt.Errorf("mes %s: das_paid %q inválido", r.Month, r.DASPaid)
			}
			in.DASPaid = d
		}
		out = append(out, in)
	}
	return out, nil
}
