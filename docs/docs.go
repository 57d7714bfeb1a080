// Package docs registra el documento OpenAPI de la API en swag.
// Swagger UI lo sirve desde ./docs/swagger.json (ver cmd/api).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos exportados del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Recupera Monofásico API",
	Description:      "Importación de NF-e, clasificación PIS/COFINS monofásico y apuración del crédito en el Simples Nacional.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
