package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/excel"
	"github.com/jhoicas/recupera-monofasico/pkg/simples"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleReport() *apuracao.Report {
	month := entity.CalculationResult{
		CompetenceMonth: "2024-03", Anexo: simples.Anexo1, Faixa: 2,
		TotalRevenue: dec("15000"), MonofasicoRevenue: dec("10000"),
		EffectiveRate: dec("0.0433"), RecalculatedDASDue: dec("649.5"), CreditAmount: dec("67.115"),
	}
	total := entity.PeriodSummary{Period: "TOTAL", Months: 1, TotalRevenue: dec("15000"), MonofasicoRevenue: dec("10000"), CreditAmount: dec("67.115")}
	year := total
	year.Period = "2024"
	return &apuracao.Report{
		Monthly: []entity.CalculationResult{month},
		Yearly:  []entity.PeriodSummary{year},
		Total:   total,
		MonofasicoItems: []apuracao.MonofasicoItem{{
			AccessKey: "35240312345678000199550010000001231000001234", IssueDate: "2024-03-05",
			Item: entity.InvoiceItem{Description: "SHAMPOO", NCMCode: "33051000", CFOP: "5405", TotalValue: dec("10000"), ClassificationRule: "OK"},
		}},
	}
}

func TestWorkbookRenderer_Hojas(t *testing.T) {
	data, err := excel.NewWorkbookRenderer().Render(context.Background(), sampleReport(), report.Meta{
		CompanyName: "Farmácia Central", GeneratedAt: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excel.SheetSummary, excel.SheetMonthly, excel.SheetItems}, f.GetSheetList())

	title, err := f.GetCellValue(excel.SheetSummary, "A1")
	require.NoError(t, err)
	assert.Contains(t, title, "Farmácia Central")

	rows, err := f.GetRows(excel.SheetMonthly, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Competência", rows[0][0])
	assert.Equal(t, "2024-03", rows[1][0])
	assert.Equal(t, "anexo1", rows[1][1])
	assert.Equal(t, "67.12", rows[1][8])

	items, err := f.GetRows(excel.SheetItems, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "33051000", items[1][3])
}

func TestWorkbookRenderer_ReporteVacio(t *testing.T) {
	data, err := excel.NewWorkbookRenderer().Render(context.Background(), &apuracao.Report{Total: entity.PeriodSummary{Period: "TOTAL"}}, report.Meta{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excel.SheetMonthly)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "solo cabecera")
}
