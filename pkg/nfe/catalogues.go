// Package nfe contiene catálogos de la Nota Fiscal Eletrônica (modelo 55)
// usados para clasificar ítems en el régimen monofásico de PIS/COFINS.
package nfe

import "strings"

// =============================================================================
// NCM sujetos a incidencia monofásica (Tabela 4.3.10, subconjunto operativo).
// La clave es el NCM de 8 dígitos sin puntos.
// =============================================================================

var MonofasicoNCM = map[string]string{
	// Combustíveis
	"27101259": "Gasolina",
	"27101922": "Diesel",
	"27111910": "GLP",
	"27112100": "Gás natural",
	"27101932": "Óleos lubrificantes",

	// Farmacêuticos
	"30039056": "Medicamentos",
	"30049039": "Medicamentos",
	"30049069": "Medicamentos",

	// Perfumaria e higiene pessoal
	"33030010": "Perfumes",
	"33030000": "Perfumes (NCM antigo)",
	"33049990": "Cremes e protetor solar",
	"33051000": "Xampus",
	"34011190": "Sabões de toucador",

	// Autopeças
	"40111000": "Pneus novos para automóveis",
	"87089990": "Partes e acessórios de veículos",

	// Bebidas frias
	"22011000": "Águas minerais",
	"22021000": "Refrigerantes",
	"22030000": "Cervejas",
}

// IsMonofasicoNCM indica si el NCM pertenece a la tabla. Acepta "3305.10.00".
func IsMonofasicoNCM(ncm string) bool {
	_, ok := MonofasicoNCM[NormalizeNCM(ncm)]
	return ok
}

// NormalizeNCM elimina puntos y espacios del código NCM.
func NormalizeNCM(ncm string) string {
	return strings.NewReplacer(".", "", " ", "").Replace(strings.TrimSpace(ncm))
}

// =============================================================================
// CST de PIS/COFINS que indican tributación monofásica o sin débito en la reventa.
// =============================================================================

const (
	CSTMonofasicaRevenda = "04" // Operação tributável monofásica - revenda a alíquota zero
	CSTAliquotaZero      = "06" // Operação tributável a alíquota zero
	CSTIsenta            = "07" // Operação isenta da contribuição
	CSTSemIncidencia     = "08" // Operação sem incidência da contribuição
	CSTSuspensao         = "09" // Operação com suspensão da contribuição
)

// MonofasicoCST conjunto de CST que la clasificación trata como señal monofásica.
var MonofasicoCST = map[string]bool{
	CSTMonofasicaRevenda: true,
	CSTAliquotaZero:      true,
	CSTIsenta:            true,
	CSTSemIncidencia:     true,
	CSTSuspensao:         true,
}

// =============================================================================
// CFOP de venta considerados en la apuración.
// =============================================================================

const (
	CFOPVendaMercadoriaInterna       = "5102" // Venda de mercadoria adquirida de terceiros
	CFOPVendaSubstituicaoTributaria  = "5405" // Venda de mercadoria com ST (substituído)
	CFOPVendaMercadoriaInterestadual = "6102" // Venda interestadual de mercadoria de terceiros
)

// SalesCFOPs conjunto por defecto de CFOP de venta.
var SalesCFOPs = map[string]bool{
	CFOPVendaMercadoriaInterna:       true,
	CFOPVendaSubstituicaoTributaria:  true,
	CFOPVendaMercadoriaInterestadual: true,
}

// =============================================================================
// Reglas de clasificación (texto mostrado al operador).
// =============================================================================

const (
	RuleNotClassified = "N/A"
	RuleOK            = "OK: NCM E CST MONOFÁSICOS"
	RuleReviewNCMOnly = "REVISAR: NCM MONOFÁSICO, CST NÃO"
	RuleReviewCSTOnly = "REVISAR: NCM NÃO MONOFÁSICO, CST SIM"
	RuleNotMonofasico = "NÃO MONOFÁSICO"
)
