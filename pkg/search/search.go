// Package search normaliza términos de búsqueda libres antes de enviarlos a la base de datos.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen largo máximo del término; el resto se descarta.
const MaxLen = 100

// Normalize compone a NFC (ñ, tildes escritas como dos code points), elimina caracteres
// de control y colapsa espacios.
func Normalize(q string) string {
	q = norm.NFC.String(q)
	q = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, q)
	q = strings.Join(strings.Fields(q), " ")
	if r := []rune(q); len(r) > MaxLen {
		q = string(r[:MaxLen])
	}
	return q
}

// Fold quita diacríticos y pasa a minúsculas ("Chocolátes Ñuñoa" -> "chocolates nunoa").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// LikePattern escapa comodines de LIKE y envuelve el término en %...%.
func LikePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
