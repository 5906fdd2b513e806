package locale

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	LanguagePortuguese = "pt"
	LanguageEnglish    = "en"
	LanguageSpanish    = "es"

	Default = LanguagePortuguese
)

// Supported lists the closed locale set in its canonical order.
var Supported = []string{LanguagePortuguese, LanguageEnglish, LanguageSpanish}

type Preference struct {
	Locale   string
	HTMLLang string
	OGLocale string
}

// IsValid reports whether code is exactly one of the supported locale codes.
func IsValid(code string) bool {
	for _, candidate := range Supported {
		if candidate == code {
			return true
		}
	}
	return false
}

// Normalize maps raw language input such as "pt-BR" or "EN_us" to a supported
// locale code, or "" when the language is not served.
func Normalize(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	base := trimmed
	if idx := strings.Index(trimmed, "-"); idx >= 0 {
		base = trimmed[:idx]
	}
	if IsValid(base) {
		return base
	}
	return ""
}

// FromAcceptLanguage returns the first supported language of the header in
// quality order.
func FromAcceptLanguage(header string) string {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(trimmed)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if code := Normalize(base.String()); code != "" {
			return code
		}
	}
	return ""
}

// PreferenceFor resolves the HTML and Open Graph locale strings for code.
// Unsupported input resolves to the default locale.
func PreferenceFor(code string) Preference {
	switch Normalize(code) {
	case LanguageEnglish:
		return Preference{Locale: LanguageEnglish, HTMLLang: "en-US", OGLocale: "en_US"}
	case LanguageSpanish:
		return Preference{Locale: LanguageSpanish, HTMLLang: "es-ES", OGLocale: "es_ES"}
	default:
		return Preference{Locale: LanguagePortuguese, HTMLLang: "pt-BR", OGLocale: "pt_BR"}
	}
}

// FallbackHierarchy returns the order in which locales are tried for a
// request in preferred. The preferred locale always comes first; the rest
// keep their configured relative order.
func FallbackHierarchy(preferred string, order []string, enabled bool) []string {
	if !enabled {
		return []string{preferred}
	}
	hierarchy := make([]string, 0, len(order)+1)
	hierarchy = append(hierarchy, preferred)
	for _, code := range order {
		if code == preferred {
			continue
		}
		hierarchy = append(hierarchy, code)
	}
	return hierarchy
}
