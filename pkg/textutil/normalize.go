package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName normaliza un nombre para comparación: recorta espacios, pasa a
// minúsculas y elimina acentos ("Lácteos S.A. " -> "lacteos s.a.").
// Los nombres se guardan tal cual el usuario los escribió; esta forma solo se
// usa para búsquedas y detección de duplicados.
func NormalizeName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return out
}
