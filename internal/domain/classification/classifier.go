// Package classification etiqueta ítems de NF-e como monofásicos a partir de dos señales
// independientes: la tabla de NCM (autoritativa) y el conjunto de CST de PIS.
package classification

import (
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	pkgnfe "github.com/jhoicas/recupera-monofasico/pkg/nfe"
)

// Classifier aplica las tablas de referencia de pkg/nfe.
type Classifier struct {
	isMonofasicoNCM func(string) bool
	monofasicoCST   map[string]bool
}

// NewClassifier crea el clasificador con los catálogos por defecto.
func NewClassifier() *Classifier {
	return &Classifier{isMonofasicoNCM: pkgnfe.IsMonofasicoNCM, monofasicoCST: pkgnfe.MonofasicoCST}
}

// ClassifyItem devuelve una copia del ítem con IsMonofasico, ClassificationRule y NeedsHumanReview.
// IsMonofasico refleja solo la señal de NCM; la revisión se pide cuando las dos señales difieren.
func (c *Classifier) ClassifyItem(item entity.InvoiceItem) entity.InvoiceItem {
	ncmSignal := c.isMonofasicoNCM(item.NCMCode)
	cstSignal := c.monofasicoCST[item.CSTPIS]

	item.IsMonofasico = ncmSignal
	item.NeedsHumanReview = ncmSignal != cstSignal
	item.ClassificationRule = rule(ncmSignal, cstSignal)
	return item
}

// ClassifyInvoice devuelve una copia de la nota con todos los ítems clasificados.
func (c *Classifier) ClassifyInvoice(inv *entity.Invoice) *entity.Invoice {
	out := inv.Clone()
	for i := range out.Items {
		out.Items[i] = c.ClassifyItem(out.Items[i])
	}
	return out
}

func rule(ncmSignal, cstSignal bool) string {
	switch {
	case ncmSignal && cstSignal:
		return pkgnfe.RuleOK
	case ncmSignal:
		return pkgnfe.RuleReviewNCMOnly
	case cstSignal:
		return pkgnfe.RuleReviewCSTOnly
	default:
		return pkgnfe.RuleNotMonofasico
	}
}
