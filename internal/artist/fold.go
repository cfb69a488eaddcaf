// AngelaMos | 2026
// fold.go

package artist

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ has no decomposition, so it is mapped by hand.
var strokeReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// FoldDiacritics strips combining marks, so "Sơn Tùng" becomes "Son Tung".
func FoldDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strokeReplacer.Replace(folded)
}
