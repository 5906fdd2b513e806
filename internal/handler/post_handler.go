package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/blog"
	"github.com/gn1blog/internal/category"
	"github.com/gn1blog/internal/service"
)

type postQuery struct {
	Category           string   `form:"category"`
	Author             string   `form:"author"`
	Tags               []string `form:"tags"`
	DateFrom           string   `form:"dateFrom"`
	DateTo             string   `form:"dateTo"`
	IncludeUnpublished bool     `form:"includeUnpublished"`
	CrossLanguage      bool     `form:"crossLanguage"`
	Page               int      `form:"page"`
	Limit              int      `form:"limit"`
	Offset             int      `form:"offset"`
}

func (a *API) bindPostQuery(c *gin.Context) (postQuery, bool) {
	var query postQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters")
		return postQuery{}, false
	}
	if query.Page < 0 || query.Limit < 0 || query.Offset < 0 {
		respondError(c, http.StatusBadRequest, "page, limit and offset must not be negative")
		return postQuery{}, false
	}
	// Drafts stay private unless an admin asks for them.
	if query.IncludeUnpublished && !a.isAdmin(c) {
		query.IncludeUnpublished = false
	}
	query.Tags = splitQueryList(query.Tags)
	return query, true
}

func (q postQuery) searchParams(code string) blog.SearchParams {
	return blog.SearchParams{
		Locale:             code,
		Category:           strings.TrimSpace(q.Category),
		Author:             strings.TrimSpace(q.Author),
		Tags:               q.Tags,
		DateFrom:           strings.TrimSpace(q.DateFrom),
		DateTo:             strings.TrimSpace(q.DateTo),
		IncludeUnpublished: q.IncludeUnpublished,
		CrossLanguage:      q.CrossLanguage,
	}
}

// ListPosts serves one page of the locale's posts, filtered by the query.
func (a *API) ListPosts(c *gin.Context) {
	query, ok := a.bindPostQuery(c)
	if !ok {
		return
	}
	result := a.blog.SearchWithPagination(query.searchParams(c.Param("locale")), blog.PaginationOptions{
		Page:   query.Page,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	c.JSON(http.StatusOK, result)
}

// SearchAllLanguages runs the query in every locale.
func (a *API) SearchAllLanguages(c *gin.Context) {
	query, ok := a.bindPostQuery(c)
	if !ok {
		return
	}
	params := query.searchParams("")
	params.Limit = query.Limit
	params.Offset = query.Offset
	c.JSON(http.StatusOK, a.blog.SearchCrossLanguage(params))
}

// GetPost serves the rendered post. Fallback to other locales is on
// unless ?fallback=false.
func (a *API) GetPost(c *gin.Context) {
	code := c.Param("locale")
	slug := c.Param("slug")
	post, err := a.blog.PostBySlug(slug, code, queryBool(c, "fallback", true))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) || errors.Is(err, service.ErrInvalidLocale) {
			a.localizedError(c, http.StatusNotFound, msgPostNotFound)
			return
		}
		a.logger.Error().Err(err).Str("slug", slug).Str("locale", code).Msg("failed to load post")
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":                post,
		"translation":         blog.TranslationInfoFor(post.Meta),
		"categoryDisplayName": category.DisplayName(post.Meta.Category, code),
	})
}

// RelatedPosts serves the posts shown next to a post. ?strategy=single
// switches from the two-pool selection to one global ranking.
func (a *API) RelatedPosts(c *gin.Context) {
	code := c.Param("locale")
	slug := c.Param("slug")
	maxResults, ok := queryInt(c, "max", a.blog.Config().RelatedPostsCount)
	if !ok {
		return
	}
	preferSame := queryBool(c, "preferSameLanguage", true)

	var posts []blog.Post
	if c.Query("strategy") == "single" {
		posts = a.blog.RelatedPostsForSlug(slug, code, maxResults, preferSame)
	} else {
		posts = a.blog.RelatedPostsTiered(slug, code, maxResults, preferSame)
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// PostTranslations lists the locales the post can be read in.
func (a *API) PostTranslations(c *gin.Context) {
	code := c.Param("locale")
	slug := c.Param("slug")
	translations := a.blog.Translations(slug, code)
	c.JSON(http.StatusOK, gin.H{
		"slug":            slug,
		"locale":          code,
		"hasTranslations": len(translations) > 0,
		"translations":    translations,
	})
}

type categoryView struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
}

// ListCategories lists the locale's categories with display names.
func (a *API) ListCategories(c *gin.Context) {
	code := c.Param("locale")
	posts := a.blog.AllPosts(code)

	counts := make(map[string]int)
	for _, p := range posts {
		if slug := category.CanonicalSlug(p.Category); slug != "" {
			counts[slug]++
		}
	}

	names := blog.UniqueCategories(posts, code)
	views := make([]categoryView, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		slug := category.CanonicalSlug(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		views = append(views, categoryView{
			Name:        name,
			Slug:        slug,
			DisplayName: category.DisplayName(name, code),
			Count:       counts[slug],
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

// ListCategoryPosts lists posts of one category, matched by slug.
func (a *API) ListCategoryPosts(c *gin.Context) {
	code := c.Param("locale")
	name := c.Param("category")
	posts := a.blog.PostsByCategory(name, code, queryBool(c, "crossLanguage", false))
	c.JSON(http.StatusOK, gin.H{
		"category":    category.ToURLSlug(name),
		"displayName": category.DisplayName(name, code),
		"posts":       posts,
	})
}

func (a *API) ListAuthors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authors": a.blog.Authors(c.Param("locale"))})
}

func (a *API) ListTags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": a.blog.Tags(c.Param("locale"))})
}

func (a *API) FeaturedPosts(c *gin.Context) {
	limit, ok := queryInt(c, "limit", a.blog.Config().FeaturedPostsCount)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": a.blog.FeaturedPosts(c.Param("locale"), limit)})
}

func (a *API) RecentPosts(c *gin.Context) {
	limit, ok := queryInt(c, "limit", a.blog.Config().RecentPostsCount)
	if !ok {
		return
	}
	posts := a.blog.RecentPosts(c.Param("locale"), limit, queryBool(c, "fallback", true))
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
