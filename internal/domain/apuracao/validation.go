package apuracao

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// ValidateInput valida el formato de los parámetros informados por el operador.
// RBT12 fuera de faixa o ausente no es un error: el cálculo devuelve cero para ese mes.
func ValidateInput(in entity.MonthlyCalculationInput) error {
	var errs []error

	if _, err := time.Parse("2006-01", in.Month); err != nil || len(in.Month) != 7 {
		errs = append(errs, fmt.Errorf("mes %q: formato esperado YYYY-MM", in.Month))
	}
	if in.Anexo != "" && !in.Anexo.IsValid() {
		errs = append(errs, fmt.Errorf("mes %s: anexo desconocido %q", in.Month, in.Anexo))
	}
	if in.DASPaid.IsNegative() {
		errs = append(errs, fmt.Errorf("mes %s: DAS pago no puede ser negativo", in.Month))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrInvalidInput}, errs...)...)
	}
	return nil
}
