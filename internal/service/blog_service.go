package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gn1blog/internal/blog"
	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/content"
	"github.com/rs/zerolog"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidLocale = errors.New("unsupported locale")
)

// MessagePostNotFound is the validation error reported for unknown posts.
const MessagePostNotFound = "post not found"

// BlogService answers page-level questions about the blog. Every call
// reads the content directory again; load failures are logged and turn
// into empty results.
type BlogService struct {
	loader   *content.Loader
	renderer *content.Renderer
	covers   *content.CoverInspector
	engine   *blog.Engine
	cfg      config.BlogConfig
	logger   zerolog.Logger
}

// NewBlogService wires the loader and renderer to the query engine.
// covers may be nil, in which case cover images are not inspected.
func NewBlogService(loader *content.Loader, renderer *content.Renderer, covers *content.CoverInspector, cfg config.BlogConfig, logger zerolog.Logger) *BlogService {
	return &BlogService{
		loader:   loader,
		renderer: renderer,
		covers:   covers,
		engine:   blog.NewEngine(cfg),
		cfg:      cfg,
		logger:   logger.With().Str("component", "blog_service").Logger(),
	}
}

// Engine exposes the query engine used by the service.
func (s *BlogService) Engine() *blog.Engine {
	return s.engine
}

// Config returns the blog settings.
func (s *BlogService) Config() config.BlogConfig {
	return s.cfg
}

// Corpus loads every post, reporting load failures to the caller.
func (s *BlogService) Corpus() ([]blog.Post, error) {
	return s.loader.LoadAll()
}

// AllPosts returns the posts of code, or of every locale when code is
// empty, newest first.
func (s *BlogService) AllPosts(code string) []blog.Post {
	var (
		posts []blog.Post
		err   error
	)
	if code == "" {
		posts, err = s.loader.LoadAll()
	} else {
		posts, err = s.loader.Load(code)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("locale", code).Msg("failed to load posts")
		return []blog.Post{}
	}
	return posts
}

// PostBySlug reads and renders (slug, code). When fallback is allowed and
// the document does not exist in code, the rest of the fallback hierarchy
// is tried in order.
func (s *BlogService) PostBySlug(slug, code string, enableFallback bool) (blog.PostWithContent, error) {
	if !s.cfg.IsSupported(code) {
		return blog.PostWithContent{}, fmt.Errorf("%w: %q", ErrInvalidLocale, code)
	}

	candidates := []string{code}
	if enableFallback && s.cfg.EnableFallback {
		candidates = s.engine.FallbackHierarchy(code)
	}

	var (
		doc content.Document
		err error
	)
	for _, candidate := range candidates {
		doc, err = s.loader.Document(slug, candidate)
		if err == nil {
			break
		}
		if !errors.Is(err, content.ErrDocumentNotFound) {
			return blog.PostWithContent{}, fmt.Errorf("read %s/%s: %w", candidate, slug, err)
		}
	}
	if err != nil {
		return blog.PostWithContent{}, fmt.Errorf("%w: %s/%s", ErrPostNotFound, code, slug)
	}

	html, err := s.renderer.Render(doc.Body)
	if err != nil {
		return blog.PostWithContent{}, fmt.Errorf("render %s/%s: %w", doc.Post.Locale, slug, err)
	}

	translations := s.engine.AvailableTranslations(s.AllPosts(""), slug, doc.Post.Locale)
	available := make([]string, 0, len(translations))
	for _, candidate := range s.cfg.SupportedLocales {
		if _, ok := translations[candidate]; ok {
			available = append(available, candidate)
		}
	}

	return blog.PostWithContent{
		Slug:                  slug,
		Locale:                doc.Post.Locale,
		Meta:                  doc.Post,
		ContentHTML:           html,
		AvailableTranslations: available,
	}, nil
}

// PostsByCategory matches categories by slug. With includeCrossLanguage
// and a locale, an empty locale falls back to the next locale with posts.
func (s *BlogService) PostsByCategory(name, code string, includeCrossLanguage bool) []blog.Post {
	posts := s.AllPosts(code)
	if code != "" && includeCrossLanguage {
		posts = s.engine.PostsWithFallback(s.AllPosts(""), code, true)
	}
	return blog.FilterByCategory(posts, name)
}

func (s *BlogService) PostsByAuthor(author, code string) []blog.Post {
	return blog.FilterByAuthor(s.AllPosts(code), author)
}

func (s *BlogService) PostsByTags(tags []string, code string) []blog.Post {
	return blog.FilterByTags(s.AllPosts(code), tags)
}

func (s *BlogService) Categories(code string) []string {
	return blog.UniqueCategories(s.AllPosts(code), code)
}

func (s *BlogService) Authors(code string) []string {
	return blog.UniqueAuthors(s.AllPosts(code), code)
}

func (s *BlogService) Tags(code string) []string {
	return blog.UniqueTags(s.AllPosts(code), code)
}

// Search runs the search stages over the whole corpus.
func (s *BlogService) Search(params blog.SearchParams) []blog.Post {
	return s.engine.Search(s.AllPosts(""), params)
}

// SearchWithPagination searches without offset and limit, then paginates.
func (s *BlogService) SearchWithPagination(params blog.SearchParams, opts blog.PaginationOptions) blog.SearchResult {
	corpus := s.AllPosts("")
	params.Offset = 0
	params.Limit = 0
	filtered := s.engine.Search(corpus, params)

	opts.Locale = params.Locale
	if opts.Corpus == nil {
		opts.Corpus = corpus
	}
	return s.engine.Paginate(filtered, opts)
}

// SearchCrossLanguage runs params in every locale.
func (s *BlogService) SearchCrossLanguage(params blog.SearchParams) blog.CrossLanguageResult {
	return s.engine.SearchCrossLanguage(s.AllPosts(""), params)
}

// RecentPosts returns up to limit of the newest posts of code. An empty
// locale borrows from the fallback hierarchy when enableFallback is set.
func (s *BlogService) RecentPosts(code string, limit int, enableFallback bool) []blog.Post {
	if limit <= 0 {
		limit = s.cfg.RecentPostsCount
	}
	posts := s.AllPosts(code)
	if len(posts) == 0 && enableFallback && code != "" {
		posts = s.engine.PostsWithFallback(s.AllPosts(""), code, true)
	}
	return head(posts, limit)
}

// RelatedPostsForSlug ranks the corpus in one pass against (slug, code),
// resolving the current post through the fallback hierarchy if needed.
func (s *BlogService) RelatedPostsForSlug(slug, code string, maxResults int, preferSameLanguage bool) []blog.Post {
	corpus := s.AllPosts("")
	current, ok := s.currentPost(corpus, slug, code)
	if !ok {
		return []blog.Post{}
	}
	return s.engine.RelatedPosts(current, corpus, maxResults, preferSameLanguage)
}

// RelatedPostsTiered is the two-pool selection shown next to a post read
// in code.
func (s *BlogService) RelatedPostsTiered(slug, code string, maxResults int, preferSameLanguage bool) []blog.Post {
	corpus := s.AllPosts("")
	current, ok := s.currentPost(corpus, slug, code)
	if !ok {
		return []blog.Post{}
	}
	return s.engine.RelatedPostsTiered(current, corpus, code, maxResults, preferSameLanguage)
}

func (s *BlogService) currentPost(corpus []blog.Post, slug, code string) (blog.Post, bool) {
	if current, ok := blog.FindPost(corpus, slug, code); ok {
		return current, true
	}
	return s.engine.PostWithFallback(corpus, slug, code)
}

// Statistics aggregates the whole corpus.
func (s *BlogService) Statistics() blog.Stats {
	return s.engine.Stats(s.AllPosts(""))
}

// TranslationStatistics reports translation progress over the whole corpus.
func (s *BlogService) TranslationStatistics() blog.TranslationStats {
	return s.engine.TranslationStats(s.AllPosts(""))
}

func (s *BlogService) PostsCount(code string) int {
	return len(s.AllPosts(code))
}

// PostExists reports whether a document file exists for (slug, code).
func (s *BlogService) PostExists(slug, code string) bool {
	_, ok := s.loader.Find(slug, code)
	return ok
}

// PostMeta returns the metadata of (slug, code) without rendering.
func (s *BlogService) PostMeta(slug, code string) (blog.Post, error) {
	for _, p := range s.AllPosts(code) {
		if p.Slug == slug {
			return p, nil
		}
	}
	return blog.Post{}, fmt.Errorf("%w: %s/%s", ErrPostNotFound, code, slug)
}

// ValidatePostBySlug validates (slug, code). Cover image findings are
// added to the warnings when covers are inspected.
func (s *BlogService) ValidatePostBySlug(slug, code string) blog.ValidationResult {
	post, err := s.PostMeta(slug, code)
	if err != nil {
		return blog.ValidationResult{
			IsValid:             false,
			Errors:              []string{MessagePostNotFound},
			Warnings:            []string{},
			Locale:              code,
			MissingTranslations: []string{},
		}
	}
	result := s.engine.Validate(post)
	if s.covers != nil {
		result.Warnings = append(result.Warnings, s.covers.Warnings(post.CoverImage)...)
	}
	return result
}

// Translations resolves slug into every other locale.
func (s *BlogService) Translations(slug, code string) map[string]blog.Post {
	return s.engine.AvailableTranslations(s.AllPosts(""), slug, code)
}

func (s *BlogService) HasTranslations(slug, code string) bool {
	return len(s.Translations(slug, code)) > 0
}

// FeaturedPosts returns up to limit featured posts, newest first.
func (s *BlogService) FeaturedPosts(code string, limit int) []blog.Post {
	if limit <= 0 {
		limit = s.cfg.FeaturedPostsCount
	}
	featured := blog.FilterFeatured(s.AllPosts(code))
	return head(blog.SortByDate(featured, false), limit)
}

// StaticParam is one (locale, slug) page to prebuild.
type StaticParam struct {
	Locale string `json:"locale"`
	Slug   string `json:"slug"`
}

// CategoryParam is one (locale, category) listing to prebuild.
type CategoryParam struct {
	Locale   string `json:"locale"`
	Category string `json:"category"`
}

// StaticParams pairs every known slug with every supported locale. When
// the corpus cannot be read it returns the fallback slug per locale.
func (s *BlogService) StaticParams() []StaticParam {
	corpus, err := s.Corpus()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build static params")
		params := make([]StaticParam, 0, len(s.cfg.SupportedLocales))
		for _, code := range s.cfg.SupportedLocales {
			params = append(params, StaticParam{Locale: code, Slug: s.cfg.FallbackSlug})
		}
		return params
	}

	var slugs []string
	seen := make(map[string]bool)
	for _, p := range corpus {
		if !seen[p.Slug] {
			seen[p.Slug] = true
			slugs = append(slugs, p.Slug)
		}
	}

	params := make([]StaticParam, 0, len(slugs)*len(s.cfg.SupportedLocales))
	for _, slug := range slugs {
		for _, code := range s.cfg.SupportedLocales {
			params = append(params, StaticParam{Locale: code, Slug: slug})
		}
	}
	return params
}

// CategoryStaticParams lists each locale's categories, URL-escaped.
func (s *BlogService) CategoryStaticParams() []CategoryParam {
	params := []CategoryParam{}
	for _, code := range s.cfg.SupportedLocales {
		for _, name := range s.Categories(code) {
			params = append(params, CategoryParam{Locale: code, Category: escapeComponent(name)})
		}
	}
	return params
}

func escapeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func head(posts []blog.Post, limit int) []blog.Post {
	if limit >= 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}
