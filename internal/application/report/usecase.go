// Package report genera los reportes descargables (Excel y PDF) de la apuración.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/recupera-monofasico/internal/application/apuracao"
)

// Meta datos de cabecera comunes a todos los formatos.
type Meta struct {
	CompanyName string
	GeneratedAt time.Time
}

// Renderer convierte el reporte en un documento binario.
type Renderer interface {
	Render(ctx context.Context, rep *apuracao.Report, meta Meta) ([]byte, error)
}

// Source provee el reporte consolidado (implementado por apuracao.Service).
type Source interface {
	Report(ctx context.Context) (*apuracao.Report, error)
}

// UseCase arma el reporte y lo entrega al renderer del formato pedido.
type UseCase struct {
	source      Source
	excel       Renderer
	pdf         Renderer
	companyName string
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(source Source, excel, pdf Renderer, companyName string) *UseCase {
	return &UseCase{source: source, excel: excel, pdf: pdf, companyName: companyName, now: time.Now}
}

// Excel devuelve la planilla y su nombre de archivo.
func (uc *UseCase) Excel(ctx context.Context) ([]byte, string, error) {
	return uc.render(ctx, uc.excel, "xlsx")
}

// PDF devuelve el documento PDF y su nombre de archivo.
func (uc *UseCase) PDF(ctx context.Context) ([]byte, string, error) {
	return uc.render(ctx, uc.pdf, "pdf")
}

func (uc *UseCase) render(ctx context.Context, r Renderer, ext string) ([]byte, string, error) {
	rep, err := uc.source.Report(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	now := uc.now()
	data, err := r.Render(ctx, rep, Meta{CompanyName: uc.companyName, GeneratedAt: now})
	if err != nil {
		return nil, "", fmt.Errorf("reporte %s: %w", ext, err)
	}
	return data, fmt.Sprintf("apuracao_monofasico_%s.%s", now.Format("20060102"), ext), nil
}
