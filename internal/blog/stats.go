package blog

import (
	"strings"

	"github.com/gn1blog/internal/category"
)

// LocaleStats is the per-locale breakdown of Stats.
type LocaleStats struct {
	Posts      int      `json:"posts"`
	Categories []string `json:"categories"`
	Authors    []string `json:"authors"`
}

// Stats summarizes a corpus.
type Stats struct {
	TotalPosts          int                        `json:"totalPosts"`
	TotalCategories     int                        `json:"totalCategories"`
	TotalAuthors        int                        `json:"totalAuthors"`
	PostsPerCategory    map[string]int             `json:"postsPerCategory"`
	PostsPerAuthor      map[string]int             `json:"postsPerAuthor"`
	LastUpdated         string                     `json:"lastUpdated"`
	PostsPerLocale      map[string]int             `json:"postsPerLocale"`
	Locales             map[string]*LocaleStats    `json:"locales"`
	TranslationCoverage map[string]map[string]bool `json:"translationCoverage"`
}

// Stats aggregates counts over posts. Categories are keyed by slug.
func (e *Engine) Stats(posts []Post) Stats {
	stats := Stats{
		PostsPerCategory:    make(map[string]int),
		PostsPerAuthor:      make(map[string]int),
		PostsPerLocale:      make(map[string]int),
		Locales:             make(map[string]*LocaleStats),
		TranslationCoverage: make(map[string]map[string]bool),
	}
	for _, code := range e.cfg.SupportedLocales {
		stats.PostsPerLocale[code] = 0
		stats.Locales[code] = &LocaleStats{Categories: []string{}, Authors: []string{}}
	}

	for _, p := range posts {
		slug := category.CanonicalSlug(p.Category)
		author := strings.TrimSpace(p.Author)

		if slug != "" {
			stats.PostsPerCategory[slug]++
		}
		if author != "" {
			stats.PostsPerAuthor[author]++
		}

		if perLocale, ok := stats.Locales[p.Locale]; ok {
			stats.PostsPerLocale[p.Locale]++
			perLocale.Posts++
			if slug != "" && !contains(perLocale.Categories, slug) {
				perLocale.Categories = append(perLocale.Categories, slug)
			}
			if author != "" && !contains(perLocale.Authors, author) {
				perLocale.Authors = append(perLocale.Authors, author)
			}
		}

		coverage, ok := stats.TranslationCoverage[p.Slug]
		if !ok {
			coverage = make(map[string]bool)
			stats.TranslationCoverage[p.Slug] = coverage
		}
		coverage[p.Locale] = true
	}

	stats.TotalPosts = len(posts)
	stats.TotalCategories = len(stats.PostsPerCategory)
	stats.TotalAuthors = len(stats.PostsPerAuthor)
	if sorted := SortByDate(posts, false); len(sorted) > 0 {
		stats.LastUpdated = sorted[0].Date
	}
	return stats
}

// MissingTranslation lists the locales a slug has not been translated to.
type MissingTranslation struct {
	Slug           string   `json:"slug"`
	OriginalLocale string   `json:"originalLocale"`
	MissingLocales []string `json:"missingLocales"`
}

// TranslationStats reports translation progress per slug and per locale.
type TranslationStats struct {
	FullyTranslated              int                  `json:"fullyTranslated"`
	PartiallyTranslated          int                  `json:"partiallyTranslated"`
	Untranslated                 int                  `json:"untranslated"`
	TotalPostsNeedingTranslation int                  `json:"totalPostsNeedingTranslation"`
	MissingTranslations          []MissingTranslation `json:"missingTranslations"`
	Completeness                 map[string]float64   `json:"completeness"`
}

// TranslationStats groups posts by slug. A slug present in every supported
// locale is fully translated, in more than one partially, in exactly one
// untranslated. Completeness is the percentage of slugs present per locale.
func (e *Engine) TranslationStats(posts []Post) TranslationStats {
	type group struct {
		slug    string
		locales []string
	}
	groups := make([]*group, 0)
	index := make(map[string]*group)
	for _, p := range posts {
		g, ok := index[p.Slug]
		if !ok {
			g = &group{slug: p.Slug}
			index[p.Slug] = g
			groups = append(groups, g)
		}
		if !contains(g.locales, p.Locale) {
			g.locales = append(g.locales, p.Locale)
		}
	}

	stats := TranslationStats{
		MissingTranslations:          []MissingTranslation{},
		Completeness:                 make(map[string]float64),
		TotalPostsNeedingTranslation: len(groups),
	}
	present := make(map[string]int)
	supported := len(e.cfg.SupportedLocales)

	for _, g := range groups {
		count := 0
		missing := []string{}
		for _, code := range e.cfg.SupportedLocales {
			if contains(g.locales, code) {
				count++
				present[code]++
			} else {
				missing = append(missing, code)
			}
		}

		switch {
		case count == supported:
			stats.FullyTranslated++
		case count > 1:
			stats.PartiallyTranslated++
		default:
			stats.Untranslated++
		}

		if len(missing) > 0 {
			stats.MissingTranslations = append(stats.MissingTranslations, MissingTranslation{
				Slug:           g.slug,
				OriginalLocale: g.locales[0],
				MissingLocales: missing,
			})
		}
	}

	for _, code := range e.cfg.SupportedLocales {
		if len(groups) == 0 {
			stats.Completeness[code] = 0
			continue
		}
		stats.Completeness[code] = float64(present[code]) / float64(len(groups)) * 100
	}
	return stats
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
