// Package nfe convierte el XML de una NF-e (modelo 55) en una Invoice normalizada.
package nfe

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/recupera-monofasico/internal/domain"
	"github.com/jhoicas/recupera-monofasico/internal/domain/entity"
	pkgnfe "github.com/jhoicas/recupera-monofasico/pkg/nfe"
)

// Option configura el Parser.
type Option func(*Parser)

// WithIDGenerator reemplaza el generador de IDs (uuid por defecto).
func WithIDGenerator(fn func() string) Option {
	return func(p *Parser) { p.newID = fn }
}

// Parser lee documentos NF-e. Es seguro para uso concurrente: no guarda estado entre llamadas.
type Parser struct {
	newID func() string
}

// NewParser crea el parser de NF-e.
func NewParser(opts ...Option) *Parser {
	p := &Parser{newID: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse convierte el contenido XML en una Invoice con ítems sin clasificar.
// Errores: domain.ErrMalformedDocument (XML inválido o fecha ilegible) y
// domain.ErrIncompleteDocument (falta infNFe, ide, ICMSTot, det o la fecha de emisión).
func (p *Parser) Parse(data []byte) (*entity.Invoice, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = CharsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	root := wrap(doc.Root())
	if root == nil {
		return nil, fmt.Errorf("%w: documento vacío", domain.ErrMalformedDocument)
	}

	var infNFe *node
	switch root.name() {
	case "nfeProc":
		infNFe = root.path("NFe", "infNFe")
	case "NFe":
		infNFe = root.child("infNFe")
	}
	if infNFe == nil {
		return nil, fmt.Errorf("%w: infNFe no encontrado (raíz %q)", domain.ErrIncompleteDocument, root.name())
	}

	ide := infNFe.child("ide")
	if ide == nil {
		return nil, fmt.Errorf("%w: falta ide", domain.ErrIncompleteDocument)
	}
	icmsTot := infNFe.path("total", "ICMSTot")
	if icmsTot == nil {
		return nil, fmt.Errorf("%w: falta total/ICMSTot", domain.ErrIncompleteDocument)
	}
	dets := infNFe.all("det")
	if len(dets) == 0 {
		return nil, fmt.Errorf("%w: la nota no tiene ítems (det)", domain.ErrIncompleteDocument)
	}

	issueDate, err := issueDateOf(ide)
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:         p.newID(),
		AccessKey:  accessKeyOf(infNFe),
		IssueDate:  issueDate,
		TotalValue: amount(icmsTot.text("vNF")),
		Items:      make([]entity.InvoiceItem, 0, len(dets)),
	}
	if inv.AccessKey == "" {
		inv.AccessKey = entity.SyntheticKeyPrefix + p.newID()
	}

	for _, det := range dets {
		prod := det.child("prod")
		imposto := det.child("imposto")
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ID:                 p.newID(),
			InvoiceID:          inv.ID,
			ProductCode:        prod.text("cProd"),
			NCMCode:            prod.text("NCM"),
			CFOP:               prod.text("CFOP"),
			Description:        prod.text("xProd"),
			TotalValue:         amount(prod.text("vProd")),
			CSTPIS:             imposto.child("PIS").first().text("CST"),
			CSTCOFINS:          imposto.child("COFINS").first().text("CST"),
			IsMonofasico:       false,
			ClassificationRule: pkgnfe.RuleNotClassified,
			NeedsHumanReview:   false,
		})
	}
	return inv, nil
}

func accessKeyOf(infNFe *node) string {
	return strings.TrimPrefix(infNFe.attr("Id"), "NFe")
}

// issueDateOf toma dhEmi (layout 4.00) o dEmi (layout 3.10) y devuelve la fecha
// calendario escrita en el documento, sin convertir a UTC.
func issueDateOf(ide *node) (string, error) {
	raw := ide.text("dhEmi")
	if raw == "" {
		raw = ide.text("dEmi")
	}
	if raw == "" {
		return "", fmt.Errorf("%w: falta dhEmi/dEmi", domain.ErrIncompleteDocument)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: fecha de emisión inválida %q", domain.ErrMalformedDocument, raw)
}

// amount interpreta un valor monetario; vacío, ilegible o negativo queda en cero.
func amount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// CharsetReader soporta los encodings que aparecen en XML de emisores legados.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("encoding no soportado: %s", label)
	}
}
