// Package pdf implementa report.Renderer con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + título    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CRÉDITO TOTAL + meses apurados                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Competência | Anexo | Faixa | Receitas | Crédito    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACUMULADO POR AÑO                                          │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.Renderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer genera el resumen de la apuración en PDF.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(_ context.Context, rep *apuracao.Report, meta report.Meta) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Apuração PIS/COFINS Monofásico", true).
		WithAuthor(nonEmpty(meta.CompanyName, "Recupera Monofásico"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalRow(rep.Total))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(monthlyRows(rep.Monthly)...)

	if len(rep.Yearly) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionRow("ACUMULADO POR ANO"))
		m.AddRows(yearlyRows(rep.Yearly)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(meta report.Meta) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(meta.CompanyName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recuperação de PIS/COFINS sobre produtos monofásicos (Simples Nacional)", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("RELATÓRIO DE APURAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Gerado em: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func totalRow(total entity.PeriodSummary) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New("CRÉDITO TOTAL ESTIMADO", props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
			text.New(fmt.Sprintf("%d meses apurados", total.Months), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(brl(total.CreditAmount), props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right, Color: colorPrimary, Top: 3,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Competência", 2, align.Left),
		h("Anexo", 1, align.Center),
		h("Faixa", 1, align.Center),
		h("Receita total", 2, align.Right),
		h("Receita monof.", 2, align.Right),
		h("Alíq. efetiva", 2, align.Right),
		h("Crédito", 2, align.Right),
	)
}

func monthlyRows(results []entity.CalculationResult) []core.Row {
	out := make([]core.Row, 0, len(results))
	for _, r := range results {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		faixa := "-"
		if r.Faixa > 0 {
			faixa = fmt.Sprintf("%dª", r.Faixa)
		}
		out = append(out, row.New(6).Add(
			cell(r.CompetenceMonth, 2, align.Left),
			cell(nonEmpty(strings.TrimPrefix(string(r.Anexo), "anexo"), "-"), 1, align.Center),
			cell(faixa, 1, align.Center),
			cell(brl(r.TotalRevenue), 2, align.Right),
			cell(brl(r.MonofasicoRevenue), 2, align.Right),
			cell(percent(r.EffectiveRate), 2, align.Right),
			cell(brl(r.CreditAmount), 2, align.Right),
		))
	}
	return out
}

func yearlyRows(years []entity.PeriodSummary) []core.Row {
	out := make([]core.Row, 0, len(years))
	for _, y := range years {
		out = append(out, row.New(6).Add(
			col.New(4).Add(text.New(fmt.Sprintf("%s (%d meses)", y.Period, y.Months), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New("Receita monof.: "+brl(y.MonofasicoRevenue), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New(brl(y.CreditAmount), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Valores estimados a partir das NF-e importadas e dos parâmetros informados (RBT12, Anexo, DAS pago). "+
				"O crédito corresponde à parcela de PIS/COFINS do DAS recalculado sobre a receita monofásica.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// brl formatea en reales: 1234567.891 → "R$ 1.234.567,89".
func brl(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// percent formatea una fracción como porcentaje con dos decimales: 0.0433 → "4,33%".
func percent(d decimal.Decimal) string {
	return strings.Replace(d.Shift(2).StringFixed(2), ".", ",", 1) + "%"
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
