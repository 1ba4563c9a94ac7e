package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept   string
		expected language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"de-DE,de;q=0.9", language.German},
		{"fr-FR", language.English}, // Fallback
		{"", language.English},      // Empty
	}

	for _, tt := range tests {
		got := MatchLanguage(tt.accept)
		base, _ := got.Base()
		exp, _ := tt.expected.Base()
		assert.Equal(t, exp, base, "Accept: %s", tt.accept)
	}
}

func TestLocaleTag(t *testing.T) {
	tests := map[string]language.Tag{
		"":            language.English,
		"C":           language.English,
		"POSIX":       language.English,
		"en_US.UTF-8": language.English,
		"de_DE.UTF-8": language.German,
		"de_AT@euro":  language.German,
		"ja_JP":       language.English,
	}
	for locale, want := range tests {
		base, _ := LocaleTag(locale).Base()
		exp, _ := want.Base()
		assert.Equal(t, exp, base, "locale %q", locale)
	}
}

func TestNewPrinter(t *testing.T) {
	assert.Equal(t, "1,234", NewPrinter(language.English).Sprintf("%d", 1234))
	assert.Equal(t, "1.234", NewPrinter(language.German).Sprintf("%d", 1234))
}

func TestNewCLIPrinter(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	p := NewCLIPrinter()
	assert.Equal(t, "1.234", p.Sprintf("%d", 1234))
}
