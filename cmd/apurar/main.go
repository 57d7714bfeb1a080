// apurar ejecuta la apuración completa sin base de datos ni servidor HTTP.
//
// Uso:
//
//	go run ./cmd/apurar -dir ./notas -inputs parametros.yaml [-excel apuracao.xlsx] [-pdf apuracao.pdf]
//
// Lee todos los .xml y .zip de -dir, procesa y clasifica las notas, aplica los parámetros
// mensuales e imprime la tabla mensual.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/application/ingestion"
	"github.com/jhoicas/recupera-monofasico/internal/application/report"
	calc "github.com/jhoicas/recupera-monofasico/internal/domain/apuracao"
	"github.com/jhoicas/recupera-monofasico/internal/domain/classification"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	"github.com/jhoicas/recupera-monofasico/internal/domain/nfe"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/excel"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/memory"
	"github.com/jhoicas/recupera-monofasico/internal/infrastructure/pdf"
	"github.com/jhoicas/recupera-monofasico/pkg/config"
	"github.com/jhoicas/recupera-monofasico/pkg/logger"
)

func main() {
	dir := flag.String("dir", ".", "directorio con archivos .xml y .zip")
	inputsPath := flag.String("inputs", "", "archivo YAML/JSON con RBT12, Anexo y DAS pago por mes")
	excelPath := flag.String("excel", "", "ruta de salida del reporte Excel (opcional)")
	pdfPath := flag.String("pdf", "", "ruta de salida del reporte PDF (opcional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	if err := run(context.Background(), cfg, log, *dir, *inputsPath, *excelPath, *pdfPath, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("apuración")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, dir, inputsPath, excelPath, pdfPath string, out io.Writer) error {
	files, err := readDocuments(dir)
	if err != nil {
		return err
	}

	store := memory.NewStore()
	ingest := ingestion.NewService(store.Uploads(), store, nfe.NewParser(), classification.NewClassifier(), cfg.Ingest.Workers, log)
	apura := apuracao.NewService(store.Invoices(), store.Inputs(), calc.NewAggregator(cfg.Ingest.SalesCFOPs...), calc.NewCalculator(), log)

	if _, err := ingest.Upload(ctx, files); err != nil {
		return err
	}
	summary, err := ingest.ProcessPending(ctx)
	if err != nil {
		return err
	}
	for _, u := range summary.Uploads {
		if u.Status == entity.UploadStatusFailed {
			log.Warn().Str("file", u.FileName).Str("error", u.ErrorMessage).Msg("archivo no procesado")
		}
	}
	fmt.Fprintf(out, "Notas importadas: %d  Duplicadas: %d  Archivos con falla: %d  Ítems para revisar: %d\n\n",
		summary.Invoices, summary.Duplicates, summary.Failed, summary.ItemsToReview)

	if inputsPath != "" {
		inputs, err := loadInputs(inputsPath)
		if err != nil {
			return err
		}
		if err := apura.SaveInputs(ctx, inputs); err != nil {
			return err
		}
	}

	rep, err := apura.Report(ctx)
	if err != nil {
		return err
	}
	printReport(out, rep)

	reports := report.NewUseCase(apura, excel.NewWorkbookRenderer(), pdf.NewMarotoReportRenderer(), cfg.App.CompanyName)
	if excelPath != "" {
		data, _, err := reports.Excel(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(excelPath, data, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", excelPath, err)
		}
		log.Info().Str("path", excelPath).Msg("reporte Excel generado")
	}
	if pdfPath != "" {
		data, _, err := reports.PDF(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", pdfPath, err)
		}
		log.Info().Str("path", pdfPath).Msg("reporte PDF generado")
	}
	return nil
}

// readDocuments lee los .xml y .zip del directorio (no recursivo).
func readDocuments(dir string) ([]ingestion.FileInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("leer directorio %s: %w", dir, err)
	}
	var files []ingestion.FileInput
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".xml" && ext != ".zip" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		files = append(files, ingestion.FileInput{Name: e.Name(), Content: content})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("ningún .xml o .zip en %s", dir)
	}
	return files, nil
}

func printReport(out io.Writer, rep *apuracao.Report) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Competência\tAnexo\tFaixa\tReceita total\tReceita monofásica\tAlíq. efetiva\tDAS recalculado\tCrédito\t")
	for _, m := range rep.Monthly {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			m.CompetenceMonth, m.Anexo, m.Faixa,
			m.TotalRevenue.StringFixed(2), m.MonofasicoRevenue.StringFixed(2),
			m.EffectiveRate.StringFixed(4), m.RecalculatedDASDue.StringFixed(2), m.CreditAmount.StringFixed(2))
	}
	for _, y := range rep.Yearly {
		fmt.Fprintf(tw, "%s\t\t%d meses\t%s\t%s\t\t%s\t%s\t\n",
			y.Period, y.Months, y.TotalRevenue.StringFixed(2), y.MonofasicoRevenue.StringFixed(2),
			y.RecalculatedDASDue.StringFixed(2), y.CreditAmount.StringFixed(2))
	}
	fmt.Fprintf(tw, "%s\t\t%d meses\t%s\t%s\t\t%s\t%s\t\n",
		rep.Total.Period, rep.Total.Months, rep.Total.TotalRevenue.StringFixed(2), rep.Total.MonofasicoRevenue.StringFixed(2),
		rep.Total.RecalculatedDASDue.StringFixed(2), rep.Total.CreditAmount.StringFixed(2))
	_ = tw.Flush()
}
