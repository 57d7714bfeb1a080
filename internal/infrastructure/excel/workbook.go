// Package excel implementa report.Renderer generando una planilla .xlsx con excelize.
//
// Hojas:
//
//	Sumário Total      crédito total y acumulado por año
//	Apuração Mensal    un renglón por mes de competencia
//	Itens Monofásicos  detalle de ítems monofásicos por nota
package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
)

// Nombres de hoja.
const (
	SheetSummary = "Sumário Total"
	SheetMonthly = "Apuração Mensal"
	SheetItems   = "Itens Monofásicos"
)

var _ report.Renderer = (*WorkbookRenderer)(nil)

// WorkbookRenderer genera el reporte en formato Excel.
type WorkbookRenderer struct{}

// NewWorkbookRenderer construye el renderer.
func NewWorkbookRenderer() *WorkbookRenderer { return &WorkbookRenderer{} }

type styles struct {
	header int
	money  int
	rate   int
}

// Render arma las tres hojas y devuelve los bytes del .xlsx.
func (r *WorkbookRenderer) Render(_ context.Context, rep *apuracao.Report, meta report.Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetMonthly, SheetItems} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("excel: crear hoja %s: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeSummary(f, st, rep, meta); err != nil {
		return nil, err
	}
	if err := writeMonthly(f, st, rep); err != nil {
		return nil, err
	}
	if err := writeItems(f, st, rep); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	}); err != nil {
		return st, fmt.Errorf("excel: estilo: %w", err)
	}
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil { // #,##0.00
		return st, fmt.Errorf("excel: estilo: %w", err)
	}
	if st.rate, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil { // 0.00%
		return st, fmt.Errorf("excel: estilo: %w", err)
	}
	return st, nil
}

func writeSummary(f *excelize.File, st styles, rep *apuracao.Report, meta report.Meta) error {
	title := "Apuração PIS/COFINS Monofásico"
	if meta.CompanyName != "" {
		title += " - " + meta.CompanyName
	}
	rows := [][]interface{}{
		{title},
		{"Gerado em", meta.GeneratedAt.Format("02/01/2006 15:04")},
		{"Meses apurados", rep.Total.Months},
		{"Crédito total", num(rep.Total.CreditAmount)},
		{},
		{"Ano", "Meses", "Receita total", "Receita monofásica", "DAS pago", "DAS recalculado", "Crédito"},
	}
	for _, y := range rep.Yearly {
		rows = append(rows, []interface{}{
			y.Period, y.Months, num(y.TotalRevenue), num(y.MonofasicoRevenue),
			num(y.DASPaid), num(y.RecalculatedDASDue), num(y.CreditAmount),
		})
	}
	if err := setRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A6", "G6", st.header); err != nil {
		return fmt.Errorf("excel: estilo: %w", err)
	}
	if err := f.SetCellStyle(SheetSummary, "B4", "B4", st.money); err != nil {
		return fmt.Errorf("excel: estilo: %w", err)
	}
	if len(rep.Yearly) > 0 {
		last := fmt.Sprintf("G%d", 6+len(rep.Yearly))
		if err := f.SetCellStyle(SheetSummary, "C7", last, st.money); err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
	}
	return f.SetColWidth(SheetSummary, "A", "G", 20)
}

func writeMonthly(f *excelize.File, st styles, rep *apuracao.Report) error {
	rows := [][]interface{}{
		{"Competência", "Anexo", "Faixa", "Receita total", "Receita monofásica", "DAS pago", "Alíquota efetiva", "DAS recalculado", "Crédito"},
	}
	for _, m := range rep.Monthly {
		rows = append(rows, []interface{}{
			m.CompetenceMonth, string(m.Anexo), m.Faixa, num(m.TotalRevenue), num(m.MonofasicoRevenue),
			num(m.DASPaid), m.EffectiveRate.Round(6).InexactFloat64(), num(m.RecalculatedDASDue), num(m.CreditAmount),
		})
	}
	if err := setRows(f, SheetMonthly, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetMonthly, "A1", "I1", st.header); err != nil {
		return fmt.Errorf("excel: estilo: %w", err)
	}
	if n := len(rep.Monthly); n > 0 {
		if err := f.SetCellStyle(SheetMonthly, "D2", fmt.Sprintf("F%d", n+1), st.money); err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
		if err := f.SetCellStyle(SheetMonthly, "G2", fmt.Sprintf("G%d", n+1), st.rate); err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
		if err := f.SetCellStyle(SheetMonthly, "H2", fmt.Sprintf("I%d", n+1), st.money); err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
	}
	return f.SetColWidth(SheetMonthly, "A", "I", 18)
}

func writeItems(f *excelize.File, st styles, rep *apuracao.Report) error {
	rows := [][]interface{}{
		{"Chave de acesso", "Emissão", "Descrição", "NCM", "CFOP", "Valor", "Regra", "Revisão"},
	}
	for _, it := range rep.MonofasicoItems {
		review := ""
		if it.Item.NeedsHumanReview {
			review = "PENDENTE"
		}
		rows = append(rows, []interface{}{
			it.AccessKey, it.IssueDate, it.Item.Description, it.Item.NCMCode, it.Item.CFOP,
			num(it.Item.TotalValue), it.Item.ClassificationRule, review,
		})
	}
	if err := setRows(f, SheetItems, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetItems, "A1", "H1", st.header); err != nil {
		return fmt.Errorf("excel: estilo: %w", err)
	}
	if n := len(rep.MonofasicoItems); n > 0 {
		if err := f.SetCellStyle(SheetItems, "F2", fmt.Sprintf("F%d", n+1), st.money); err != nil {
			return fmt.Errorf("excel: estilo: %w", err)
		}
	}
	if err := f.SetColWidth(SheetItems, "A", "A", 48); err != nil {
		return err
	}
	return f.SetColWidth(SheetItems, "C", "C", 40)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("excel: hoja %s fila %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// num redondea a centavos para la celda; el valor exacto queda en la apuración.
func num(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
