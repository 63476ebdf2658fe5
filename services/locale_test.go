package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLocales(t *testing.T) {
	supported := []string{"en_US", "de_DE", "fr_CA", "fr_FR"}

	tests := []struct {
		name string
		code string
		want []string
	}{
		{name: "leerer Code liefert nichts", code: "", want: nil},
		{name: "Groß-/Kleinschreibung egal", code: "En", want: []string{"en_US"}},
		{name: "kleingeschrieben", code: "de", want: []string{"de_DE"}},
		{name: "mehrere Treffer in Reihenfolge", code: "Fr", want: []string{"fr_CA", "fr_FR"}},
		{name: "nicht unterstützte Sprache", code: "Zh", want: nil},
		{name: "Code matcht nur als Präfix vor dem Unterstrich", code: "e", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLocales(tt.code, supported))
		})
	}
}

func TestResolveLocalesEscapesCode(t *testing.T) {
	// Ein Code mit Regex-Metazeichen darf nie matchen statt zu panicen.
	assert.Empty(t, ResolveLocales(".*", []string{"en_US"}))
}
