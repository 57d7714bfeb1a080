// Package review aplica las correcciones de la revisión humana sobre los ítems clasificados.
package review

import (
	"sort"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// Result resultado de aplicar un lote de correcciones.
type Result struct {
	Invoices     []*entity.Invoice    // todas las notas; las modificadas son copias nuevas
	UpdatedItems []entity.InvoiceItem // ítems corregidos, en el orden de las notas
	UnknownIDs   []string             // IDs de ítem que no existen en ninguna nota
}

// Apply fusiona cada corrección parcial sobre su ítem y limpia NeedsHumanReview.
// Las notas de entrada no se modifican. La regla de clasificación original se conserva.
func Apply(invoices []*entity.Invoice, corrections map[string]entity.ItemCorrection) Result {
	pending := make(map[string]entity.ItemCorrection, len(corrections))
	for id, c := range corrections {
		pending[id] = c
	}

	res := Result{Invoices: make([]*entity.Invoice, 0, len(invoices))}
	for _, inv := range invoices {
		var copied *entity.Invoice
		for idx, it := range inv.Items {
			c, ok := pending[it.ID]
			if !ok {
				continue
			}
			delete(pending, it.ID)
			if copied == nil {
				copied = inv.Clone()
			}
			fixed := ApplyItem(it, c)
			copied.Items[idx] = fixed
			res.UpdatedItems = append(res.UpdatedItems, fixed)
		}
		if copied != nil {
			res.Invoices = append(res.Invoices, copied)
		} else {
			res.Invoices = append(res.Invoices, inv)
		}
	}

	for id := range pending {
		res.UnknownIDs = append(res.UnknownIDs, id)
	}
	sort.Strings(res.UnknownIDs)
	return res
}

// ApplyItem aplica una corrección a un ítem y lo marca como revisado.
func ApplyItem(it entity.InvoiceItem, c entity.ItemCorrection) entity.InvoiceItem {
	if c.Description != nil {
		it.Description = *c.Description
	}
	if c.NCMCode != nil {
		it.NCMCode = *c.NCMCode
	}
	if c.IsMonofasico != nil {
		it.IsMonofasico = *c.IsMonofasico
	}
	it.NeedsHumanReview = false
	return it
}

// Pending devuelve copias de las notas que aún tienen ítems para revisar, solo con esos ítems.
func Pending(invoices []*entity.Invoice) []*entity.Invoice {
	var out []*entity.Invoice
	for _, inv := range invoices {
		items := inv.PendingReview()
		if len(items) == 0 {
			continue
		}
		c := *inv
		c.Items = items
		out = append(out, &c)
	}
	return out
}
