package services

import "regexp"

// Metapress verwendet zweibuchstabige Sprachcodes (En, Fr, ...); die
// Zeitschrift unterstützt voll qualifizierte Locales (en_US, fr_CA, ...).

// ResolveLocales liefert alle unterstützten Locales, die zum zweibuchstabigen
// Sprachcode passen. Ein leerer Code wird vom Aufrufer auf die primäre Locale
// abgebildet und landet nie hier. Mehrere Treffer sind zulässig: derselbe Wert
// wird dann in jede passende Locale geschrieben; null Treffer bedeuten eine
// nicht unterstützte Sprache.
func ResolveLocales(code string, supported []string) []string {
	if code == "" {
		return nil
	}
	pattern := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(code) + `_\w{2}$`)

	var matches []string
	for _, locale := range supported {
		if pattern.MatchString(locale) {
			matches = append(matches, locale)
		}
	}
	return matches
}
