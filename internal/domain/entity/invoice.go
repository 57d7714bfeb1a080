package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SyntheticKeyPrefix prefijo de la clave generada cuando el documento no trae Id.
const SyntheticKeyPrefix = "INV_"

// Invoice representa una NF-e normalizada (cabecera + ítems).
type Invoice struct {
	ID          string
	UploadID    string
	AccessKey   string // chave de acesso (44 dígitos) sin el prefijo "NFe"
	IssueDate   string // YYYY-MM-DD, fecha calendario tal como figura en el documento
	TotalValue  decimal.Decimal
	Fingerprint string // SHA-256 del XML canónico; detecta re-importaciones
	Items       []InvoiceItem
	CreatedAt   time.Time
}

// InvoiceItem representa un ítem (det) de la NF-e.
type InvoiceItem struct {
	ID                 string
	InvoiceID          string
	ProductCode        string
	NCMCode            string
	CFOP               string
	CSTPIS             string
	CSTCOFINS          string
	Description        string
	TotalValue         decimal.Decimal
	IsMonofasico       bool   // refleja solo la tabla de NCM
	ClassificationRule string
	NeedsHumanReview   bool // señal NCM distinta de señal CST
}

// CompetenceMonth devuelve el mes de competencia (YYYY-MM) de la nota.
func (i *Invoice) CompetenceMonth() string {
	if len(i.IssueDate) < 7 {
		return ""
	}
	return i.IssueDate[:7]
}

// HasAccessKey indica si la nota trae una chave de acesso propia (no sintética).
// Dos documentos con la misma chave son la misma NF-e aunque el XML difiera.
func (i *Invoice) HasAccessKey() bool {
	return i.AccessKey != "" && !strings.HasPrefix(i.AccessKey, SyntheticKeyPrefix)
}

// Clone copia la nota y sus ítems; las modificaciones sobre la copia no afectan al original.
func (i *Invoice) Clone() *Invoice {
	c := *i
	c.Items = make([]InvoiceItem, len(i.Items))
	copy(c.Items, i.Items)
	return &c
}

// MonofasicoTotal suma el valor de los ítems monofásicos (todas las CFOP).
func (i *Invoice) MonofasicoTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range i.Items {
		if it.IsMonofasico {
			total = total.Add(it.TotalValue)
		}
	}
	return total
}

// PendingReview devuelve los ítems marcados para revisión humana.
func (i *Invoice) PendingReview() []InvoiceItem {
	var out []InvoiceItem
	for _, it := range i.Items {
		if it.NeedsHumanReview {
			out = append(out, it)
		}
	}
	return out
}
