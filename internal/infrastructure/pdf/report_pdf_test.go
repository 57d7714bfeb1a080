package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/pdf"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

func TestMarotoReportRenderer_GeneraPDF(t *testing.T) {
	credit := decimal.RequireFromString("67.115")
	rep := &apuracao.Report{
		Monthly: []entity.CalculationResult{{CompetenceMonth: "2024-03", Anexo: simples.Anexo1, Faixa: 2, CreditAmount: credit}},
		Yearly:  []entity.PeriodSummary{{Period: "2024", Months: 1, CreditAmount: credit}},
		Total:   entity.PeriodSummary{Period: "TOTAL", Months: 1, CreditAmount: credit},
	}

	data, err := pdf.NewMarotoReportRenderer().Render(context.Background(), rep, report.Meta{
		CompanyName: "Farmácia Central", GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un documento PDF")
}

func TestMarotoReportRenderer_SinMeses(t *testing.T) {
	data, err := pdf.NewMarotoReportRenderer().Render(context.Background(), &apuracao.Report{}, report.Meta{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
