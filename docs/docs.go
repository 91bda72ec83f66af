// Package docs registra la especificación OpenAPI de la API en swag.
// El archivo swagger.json es la fuente; también lo sirve el middleware de Swagger UI.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos exportados para que otros paquetes puedan ajustarlos.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Dulcería API",
	Description:      "Inventario de dulcería: movimientos, stock, reconciliación y reportes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
