package inventory

import "fmt"

// FormatSKU devuelve el código SKU-NNN (mínimo tres dígitos). Se usa tanto para el SKU
// almacenado (desde product_seq) como para el correlativo visible sin huecos.
func FormatSKU(n int64) string {
	return fmt.Sprintf("SKU-%03d", n)
}
