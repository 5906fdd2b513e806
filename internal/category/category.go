// Package category turns free-text post categories into URL slugs and
// resolves their localized display names.
package category

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/gn1blog/internal/locale"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowedPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	hyphenRunPattern  = regexp.MustCompile(`-+`)
	wordSplitPattern  = regexp.MustCompile(`[-\s]+`)
)

var displayNames = map[string]map[string]string{
	"books": {
		locale.LanguagePortuguese: "Livros",
		locale.LanguageEnglish:    "Books",
		locale.LanguageSpanish:    "Libros",
	},
	"indexers": {
		locale.LanguagePortuguese: "Indexadores",
		locale.LanguageEnglish:    "Indexers",
		locale.LanguageSpanish:    "Indexadores",
	},
	"systems": {
		locale.LanguagePortuguese: "Sistemas",
		locale.LanguageEnglish:    "Systems",
		locale.LanguageSpanish:    "Sistemas",
	},
	"review-and-standardization": {
		locale.LanguagePortuguese: "Revisão e normalização",
		locale.LanguageEnglish:    "Review and Standardization",
		locale.LanguageSpanish:    "Revisión y normalización",
	},
}

// canonicalSlugs maps the slug of every localized display name back to its
// table key, so "revisao-e-normalizacao" resolves to
// "review-and-standardization".
var canonicalSlugs = buildCanonicalSlugs()

func buildCanonicalSlugs() map[string]string {
	index := make(map[string]string)
	for key, names := range displayNames {
		index[key] = key
		for _, name := range names {
			index[NormalizeSlug(name)] = key
		}
	}
	return index
}

// CanonicalSlug is the slug categories are compared and counted by. Known
// categories written in any locale share their table key; anything else
// keeps its normalized slug.
func CanonicalSlug(input string) string {
	slug := NormalizeSlug(input)
	if key, ok := canonicalSlugs[slug]; ok {
		return key
	}
	return slug
}

// NormalizeSlug converts arbitrary category text into its slug:
// lower case, no diacritics, only [a-z0-9-], single hyphens, no hyphen at
// either end. Applying it twice yields the same result.
func NormalizeSlug(input string) string {
	lowered := strings.TrimSpace(strings.ToLower(input))
	stripped := stripDiacritics(lowered)
	stripped = disallowedPattern.ReplaceAllString(stripped, "")
	stripped = whitespacePattern.ReplaceAllString(stripped, "-")
	stripped = hyphenRunPattern.ReplaceAllString(stripped, "-")
	return strings.Trim(stripped, "-")
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ToURLSlug is the slug used in category URLs.
func ToURLSlug(category string) string {
	return NormalizeSlug(category)
}

// DisplayName returns the localized name of a known category, or the input
// title-cased word by word when the category is not in the table.
func DisplayName(input, code string) string {
	if names, ok := displayNames[CanonicalSlug(input)]; ok {
		if name := names[code]; name != "" {
			return name
		}
	}
	return titleCase(input, code)
}

func titleCase(input, code string) string {
	words := wordSplitPattern.Split(strings.TrimSpace(input), -1)
	caser := cases.Title(languageTag(code))
	out := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		out = append(out, caser.String(word))
	}
	return strings.Join(out, " ")
}

func languageTag(code string) language.Tag {
	switch code {
	case locale.LanguageEnglish:
		return language.English
	case locale.LanguageSpanish:
		return language.Spanish
	default:
		return language.Portuguese
	}
}

// AllSlugs lists the categories that have registered display names.
func AllSlugs() []string {
	slugs := make([]string, 0, len(displayNames))
	for slug := range displayNames {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// MapToSlugs maps each trimmed, non-blank category to its slug.
func MapToSlugs(categories []string) map[string]string {
	mapped := make(map[string]string, len(categories))
	for _, raw := range categories {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		mapped[trimmed] = NormalizeSlug(trimmed)
	}
	return mapped
}
