package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gn1blog/internal/blog"
	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/content"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, code, name, body string) {
	t.Helper()
	dir := filepath.Join(root, code)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func seedBlog(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, "pt", "livro-novo.md", `---
title: Livro novo
description: Resenha
date: 2024-03-10
author: Ana
category: Livros
featured: true
tags: [leitura]
translations:
  en: new-book
---
Texto **importante**.
`)
	writeDoc(t, root, "pt", "sistemas-antigos.md", `---
title: Sistemas antigos
date: 2023-06-01
author: Rui
category: Sistemas
---
Corpo.
`)
	writeDoc(t, root, "en", "new-book.md", `---
title: New book
date: 2024-03-11
author: Ana
category: Livros
featured: true
translations:
  pt: livro-novo
---
Body.
`)
	writeDoc(t, root, "en", "only-english.md", `---
title: Only English
date: 2024-03-09
author: Ana
category: Livros
tags: [leitura]
---
English only.
`)
	return root
}

func newTestBlogService(root string) *BlogService {
	cfg := config.DefaultBlogConfig()
	logger := zerolog.Nop()
	loader := content.NewLoader(root, cfg, false, logger)
	return NewBlogService(loader, content.NewRenderer(cfg.BaseURL), nil, cfg, logger)
}

func TestBlogService_PostBySlug(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	post, err := svc.PostBySlug("livro-novo", "pt", true)
	require.NoError(t, err)
	assert.Equal(t, "pt", post.Locale)
	assert.Equal(t, "Livro novo", post.Meta.Title)
	assert.Contains(t, post.ContentHTML, "<strong>importante</strong>")
	assert.Equal(t, []string{"en"}, post.AvailableTranslations)
}

func TestBlogService_PostBySlugFallback(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	post, err := svc.PostBySlug("only-english", "es", true)
	require.NoError(t, err)
	assert.Equal(t, "en", post.Locale)
	assert.Equal(t, "en", post.Meta.Locale)

	_, err = svc.PostBySlug("only-english", "es", false)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.PostBySlug("missing", "pt", true)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.PostBySlug("livro-novo", "fr", true)
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func TestBlogService_ListingsAndLookups(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	assert.Equal(t, 4, svc.PostsCount(""))
	assert.Equal(t, 2, svc.PostsCount("pt"))
	assert.Equal(t, []string{"Livros", "Sistemas"}, svc.Categories("pt"))
	assert.Equal(t, []string{"Ana"}, svc.Authors("en"))
	assert.Equal(t, []string{"leitura"}, svc.Tags(""))
	assert.Len(t, svc.PostsByCategory("livros", "", false), 3)
	assert.Len(t, svc.PostsByCategory("livros", "es", true), 1, "es is empty and borrows from pt")
	assert.Len(t, svc.PostsByAuthor("rui", "pt"), 1)
	assert.Len(t, svc.PostsByTags([]string{"leit"}, ""), 2)

	assert.True(t, svc.PostExists("new-book", "en"))
	assert.False(t, svc.PostExists("new-book", "pt"))

	meta, err := svc.PostMeta("sistemas-antigos", "pt")
	require.NoError(t, err)
	assert.Equal(t, "Rui", meta.Author)
	_, err = svc.PostMeta("sistemas-antigos", "en")
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.True(t, svc.HasTranslations("livro-novo", "pt"))
	assert.False(t, svc.HasTranslations("only-english", "en"))
}

func TestBlogService_RecentAndFeatured(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	recent := svc.RecentPosts("en", 0, true)
	require.Len(t, recent, 2)
	assert.Equal(t, "new-book", recent[0].Slug)

	fallback := svc.RecentPosts("es", 1, true)
	require.Len(t, fallback, 1)
	assert.Equal(t, "pt", fallback[0].Locale)
	assert.Empty(t, svc.RecentPosts("es", 1, false))

	featured := svc.FeaturedPosts("", 0)
	require.Len(t, featured, 2)
	assert.Equal(t, "new-book", featured[0].Slug)
}

func TestBlogService_RelatedPosts(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	tiered := svc.RelatedPostsTiered("livro-novo", "pt", 2, true)
	require.Len(t, tiered, 2)
	assert.Equal(t, "sistemas-antigos", tiered[0].Slug, "the only other pt post comes first")
	assert.Equal(t, "only-english", tiered[1].Slug)

	single := svc.RelatedPostsForSlug("livro-novo", "pt", 1, true)
	require.Len(t, single, 1)
	assert.Equal(t, "only-english", single[0].Slug)

	viaFallback := svc.RelatedPostsForSlug("only-english", "es", 2, true)
	assert.Len(t, viaFallback, 2)
	assert.Empty(t, svc.RelatedPostsForSlug("missing", "pt", 2, true))
}

func TestBlogService_SearchWithPagination(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	result := svc.SearchWithPagination(blog.SearchParams{Locale: "en", Limit: 1, Offset: 1}, blog.PaginationOptions{Page: 1, Limit: 1})
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.True(t, result.HasNextPage)
	assert.Equal(t, "en", result.Locale)
	assert.Equal(t, 2, result.AvailableInOtherLanguages)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "new-book", result.Posts[0].Slug)
}

func TestBlogService_StatisticsAndValidation(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	stats := svc.Statistics()
	assert.Equal(t, 4, stats.TotalPosts)
	assert.Equal(t, "2024-03-11", stats.LastUpdated)

	translations := svc.TranslationStatistics()
	assert.Equal(t, 4, translations.TotalPostsNeedingTranslation)
	assert.Equal(t, 4, translations.Untranslated)

	result := svc.ValidatePostBySlug("sistemas-antigos", "pt")
	assert.True(t, result.IsValid)
	assert.Contains(t, result.Warnings, "description is missing")

	missing := svc.ValidatePostBySlug("nope", "pt")
	assert.False(t, missing.IsValid)
	assert.Equal(t, []string{"post not found"}, missing.Errors)
}

func TestBlogService_StaticParams(t *testing.T) {
	svc := newTestBlogService(seedBlog(t))

	params := svc.StaticParams()
	assert.Len(t, params, 12)
	assert.Contains(t, params, StaticParam{Locale: "es", Slug: "new-book"})

	categories := svc.CategoryStaticParams()
	assert.Contains(t, categories, CategoryParam{Locale: "pt", Category: "Livros"})
	assert.NotContains(t, categories, CategoryParam{Locale: "es", Category: "Livros"})

	spaced := escapeComponent("Revisão e normalização")
	assert.Equal(t, "Revis%C3%A3o%20e%20normaliza%C3%A7%C3%A3o", spaced)
}

func TestBlogService_DegradesWhenContentUnreadable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	svc := newTestBlogService(file)

	assert.Empty(t, svc.AllPosts(""))
	assert.Equal(t, 0, svc.Statistics().TotalPosts)

	_, err := svc.Corpus()
	assert.ErrorIs(t, err, content.ErrContentUnreadable)

	params := svc.StaticParams()
	assert.Equal(t, []StaticParam{
		{Locale: "pt", Slug: "sem-conteudo"},
		{Locale: "en", Slug: "sem-conteudo"},
		{Locale: "es", Slug: "sem-conteudo"},
	}, params)
}
