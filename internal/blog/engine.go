package blog

import (
	"math"

	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/locale"
	"github.com/go-playground/validator/v10"
)

// Engine runs the locale-aware operations that depend on blog settings.
type Engine struct {
	cfg      config.BlogConfig
	validate *validator.Validate
}

// NewEngine creates an Engine for cfg.
func NewEngine(cfg config.BlogConfig) *Engine {
	return &Engine{cfg: cfg, validate: newValidator(cfg)}
}

// Config exposes the settings the engine was built with.
func (e *Engine) Config() config.BlogConfig {
	return e.cfg
}

// FallbackHierarchy lists the locales tried for preferred, in order.
func (e *Engine) FallbackHierarchy(preferred string) []string {
	return locale.FallbackHierarchy(preferred, e.cfg.FallbackHierarchy, e.cfg.EnableFallback)
}

// SearchParams enumerates every search stage. Zero values disable a stage.
type SearchParams struct {
	// Locale restricts results to one locale. Empty searches all locales.
	Locale string
	// Category matches on the normalized category slug.
	Category string
	// Author matches case-insensitively by containment.
	Author string
	// Tags matches when any requested tag is part of any post tag.
	Tags []string
	// DateFrom and DateTo bound the post date, inclusive.
	DateFrom string
	DateTo   string
	// IncludeUnpublished keeps posts marked published: false.
	IncludeUnpublished bool
	// CrossLanguage substitutes the fallback locales' posts when Locale has none.
	CrossLanguage bool
	// Offset skips results; Limit caps them. Zero means unbounded.
	Offset int
	Limit  int
}

// Search narrows corpus through the stages of params in a fixed order:
// locale, category, author, tags, date range, visibility, offset, limit.
func (e *Engine) Search(corpus []Post, params SearchParams) []Post {
	results := clonePosts(corpus)

	if params.Locale != "" {
		results = FilterByLocale(corpus, params.Locale)
		if len(results) == 0 && params.CrossLanguage {
			results = e.PostsWithFallback(corpus, params.Locale, true)
		}
	}
	if params.Category != "" {
		results = FilterByCategory(results, params.Category)
	}
	if params.Author != "" {
		results = FilterByAuthor(results, params.Author)
	}
	if len(params.Tags) > 0 {
		results = FilterByTags(results, params.Tags)
	}
	if params.DateFrom != "" || params.DateTo != "" {
		results = FilterByDateRange(results, params.DateFrom, params.DateTo)
	}
	if !params.IncludeUnpublished {
		results = FilterPublished(results)
	}
	if params.Offset > 0 {
		if params.Offset >= len(results) {
			return []Post{}
		}
		results = results[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(results) {
		results = results[:params.Limit]
	}
	return results
}

// PostsWithFallback returns the posts of preferred. When there are none and
// includeCrossLanguage is set, it returns the posts of the first locale in
// the fallback hierarchy that has any.
func (e *Engine) PostsWithFallback(corpus []Post, preferred string, includeCrossLanguage bool) []Post {
	posts := FilterByLocale(corpus, preferred)
	if len(posts) > 0 || !includeCrossLanguage {
		return posts
	}
	for _, code := range e.FallbackHierarchy(preferred) {
		if code == preferred {
			continue
		}
		if fallback := FilterByLocale(corpus, code); len(fallback) > 0 {
			return fallback
		}
	}
	return posts
}

// PaginationOptions selects one page. Page defaults to 1 and Limit to the
// configured page size; a positive Offset overrides the page-derived one.
type PaginationOptions struct {
	Page   int
	Limit  int
	Offset int
	Locale string
	// Corpus is the unfiltered post set used for the cross-language hint.
	// When nil the paginated posts are used.
	Corpus []Post
}

// SearchResult is one page of posts plus its navigation data.
type SearchResult struct {
	Posts                     []Post `json:"posts"`
	TotalCount                int    `json:"totalCount"`
	TotalPages                int    `json:"totalPages"`
	CurrentPage               int    `json:"currentPage"`
	HasNextPage               bool   `json:"hasNextPage"`
	HasPreviousPage           bool   `json:"hasPreviousPage"`
	Locale                    string `json:"locale"`
	AvailableInOtherLanguages int    `json:"availableInOtherLanguages"`
}

// Paginate slices posts into the page described by opts.
func (e *Engine) Paginate(posts []Post, opts PaginationOptions) SearchResult {
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = e.cfg.PostsPerPage
	}
	total := len(posts)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	// Pages past the end start at total; (page-1)*limit may not fit an int.
	offset := total
	if page-1 <= total/limit {
		offset = (page - 1) * limit
	}
	if opts.Offset > 0 {
		offset = opts.Offset
	}

	pagePosts := []Post{}
	if offset < total {
		end := total
		if limit < total-offset {
			end = offset + limit
		}
		pagePosts = clonePosts(posts[offset:end])
	}

	resultLocale := opts.Locale
	if resultLocale == "" {
		resultLocale = e.cfg.DefaultLocale
	}

	corpus := opts.Corpus
	if corpus == nil {
		corpus = posts
	}
	otherLanguages := 0
	if opts.Locale != "" {
		for _, p := range corpus {
			if p.Locale != opts.Locale && e.cfg.IsSupported(p.Locale) {
				otherLanguages++
			}
		}
	}

	return SearchResult{
		Posts:                     pagePosts,
		TotalCount:                total,
		TotalPages:                totalPages,
		CurrentPage:               page,
		HasNextPage:               page < totalPages,
		HasPreviousPage:           page > 1,
		Locale:                    resultLocale,
		AvailableInOtherLanguages: otherLanguages,
	}
}
