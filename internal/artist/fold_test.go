// AngelaMos | 2026
// fold_test.go

package artist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldDiacritics(t *testing.T) {
	tests := map[string]string{
		"Sơn Tùng M-TP": "Son Tung M-TP",
		"Đen Vâu":       "Den Vau",
		"Mỹ Tâm":        "My Tam",
		"Beyoncé":       "Beyonce",
		"plain":         "plain",
		"":              "",
	}

	for in, want := range tests {
		assert.Equal(t, want, FoldDiacritics(in), in)
	}
}
