package review_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/review"
	pkgnfe "github.com/jhoicas/recupera-monofasico/pkg/nfe"
)

func ptr[T any](v T) *T { return &v }

func sampleInvoices() []*entity.Invoice {
	return []*entity.Invoice{
		{
			ID: "inv-1", IssueDate: "2024-03-01",
			Items: []entity.InvoiceItem{
				{ID: "a", NCMCode: "22030000", CSTPIS: "01", IsMonofasico: true, NeedsHumanReview: true, ClassificationRule: pkgnfe.RuleReviewNCMOnly, TotalValue: decimal.NewFromInt(10)},
				{ID: "b", NCMCode: "33051000", CSTPIS: "04", IsMonofasico: true, ClassificationRule: pkgnfe.RuleOK},
			},
		},
		{
			ID: "inv-2", IssueDate: "2024-03-02",
			Items: []entity.InvoiceItem{
				{ID: "c", NCMCode: "39241000", CSTPIS: "06", NeedsHumanReview: true, ClassificationRule: pkgnfe.RuleReviewCSTOnly, Description: "CAIXA"},
			},
		},
	}
}

func TestApply_FusionParcialYLimpiaRevision(t *testing.T) {
	invoices := sampleInvoices()

	res := review.Apply(invoices, map[string]entity.ItemCorrection{
		"a": {IsMonofasico: ptr(false)},
		"c": {Description: ptr("CAIXA PLASTICA"), NCMCode: ptr("39241090")},
	})

	require.Len(t, res.Invoices, 2)
	require.Len(t, res.UpdatedItems, 2)
	assert.Empty(t, res.UnknownIDs)

	a := res.Invoices[0].Items[0]
	assert.False(t, a.IsMonofasico, "el operador puede anular la señal de NCM")
	assert.False(t, a.NeedsHumanReview)
	assert.Equal(t, "22030000", a.NCMCode, "campos sin corrección se conservan")
	assert.Equal(t, pkgnfe.RuleReviewNCMOnly, a.ClassificationRule, "la regla original se conserva")

	c := res.Invoices[1].Items[0]
	assert.Equal(t, "CAIXA PLASTICA", c.Description)
	assert.Equal(t, "39241090", c.NCMCode)
	assert.False(t, c.IsMonofasico, "sin override el flag no cambia")
	assert.False(t, c.NeedsHumanReview)
}

func TestApply_CopyOnWrite(t *testing.T) {
	invoices := sampleInvoices()

	res := review.Apply(invoices, map[string]entity.ItemCorrection{"a": {IsMonofasico: ptr(false)}})

	assert.True(t, invoices[0].Items[0].IsMonofasico, "la nota original no cambia")
	assert.True(t, invoices[0].Items[0].NeedsHumanReview)
	assert.NotSame(t, invoices[0], res.Invoices[0], "la nota modificada es una copia")
	assert.Same(t, invoices[1], res.Invoices[1], "la nota sin cambios se reutiliza")
}

func TestApply_IDsDesconocidos(t *testing.T) {
	res := review.Apply(sampleInvoices(), map[string]entity.ItemCorrection{
		"zzz": {Description: ptr("x")},
		"b":   {},
	})
	assert.Equal(t, []string{"zzz"}, res.UnknownIDs)
	require.Len(t, res.UpdatedItems, 1)
	assert.Equal(t, "b", res.UpdatedItems[0].ID)
}

func TestPending_SoloItemsPendientes(t *testing.T) {
	pending := review.Pending(sampleInvoices())
	require.Len(t, pending, 2)
	require.Len(t, pending[0].Items, 1)
	assert.Equal(t, "a", pending[0].Items[0].ID)

	res := review.Apply(sampleInvoices(), map[string]entity.ItemCorrection{"a": {}, "c": {}})
	assert.Empty(t, review.Pending(res.Invoices), "tras revisar no queda nada pendiente")
}
