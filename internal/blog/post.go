// Package blog holds the post model and the pure operations run over an
// in-memory corpus: querying, pagination, relatedness, translation
// resolution, statistics and validation.
package blog

import (
	"sort"
	"strings"
	"time"
)

// Post is the metadata of one document. (Slug, Locale) identifies it.
type Post struct {
	Slug         string            `json:"slug"`
	Locale       string            `json:"locale"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Date         string            `json:"date"`
	Author       string            `json:"author"`
	Category     string            `json:"category"`
	CoverImage   string            `json:"coverImage"`
	Tags         []string          `json:"tags,omitempty"`
	Featured     bool              `json:"featured"`
	Published    bool              `json:"published"`
	Translations map[string]string `json:"translations,omitempty"`
}

// PostWithContent is a post together with its rendered body.
type PostWithContent struct {
	Slug                  string   `json:"slug"`
	Locale                string   `json:"locale"`
	Meta                  Post     `json:"meta"`
	ContentHTML           string   `json:"contentHtml"`
	AvailableTranslations []string `json:"availableTranslations"`
}

// TranslationInfo describes the translation links a post declares.
type TranslationInfo struct {
	Slug                  string            `json:"slug"`
	Locale                string            `json:"locale"`
	AvailableTranslations map[string]string `json:"availableTranslations"`
	IsOriginal            bool              `json:"isOriginal"`
	OriginalLocale        string            `json:"originalLocale"`
}

// TranslationInfoFor reports a post as original when it declares no translations.
func TranslationInfoFor(post Post) TranslationInfo {
	available := make(map[string]string, len(post.Translations))
	for code, slug := range post.Translations {
		available[code] = slug
	}
	return TranslationInfo{
		Slug:                  post.Slug,
		Locale:                post.Locale,
		AvailableTranslations: available,
		IsOriginal:            len(post.Translations) == 0,
		OriginalLocale:        post.Locale,
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a front-matter date. Dates without a zone are read as
// UTC. ok is false for empty, unparsable or non-positive timestamps.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if parsed.UnixMilli() <= 0 {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// IsValidDate reports whether raw is a usable post date.
func IsValidDate(raw string) bool {
	_, ok := ParseDate(raw)
	return ok
}

// compareDatesDesc orders newer posts first and returns 0 when either date
// is unusable, so such posts keep their relative order under a stable sort.
func compareDatesDesc(a, b Post) int {
	da, okA := ParseDate(a.Date)
	db, okB := ParseDate(b.Date)
	if !okA || !okB {
		return 0
	}
	switch {
	case da.After(db):
		return -1
	case da.Before(db):
		return 1
	default:
		return 0
	}
}

// SortByDate returns a copy of posts sorted by date, newest first unless
// ascending is set.
func SortByDate(posts []Post, ascending bool) []Post {
	sorted := clonePosts(posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareDatesDesc(sorted[i], sorted[j])
		if ascending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}
