package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/content"
	"github.com/gn1blog/internal/db"
	"github.com/gn1blog/internal/handler"
	"github.com/gn1blog/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminToken = "router-admin-token"

func writePost(t *testing.T, root, code, name, body string) {
	t.Helper()
	dir := filepath.Join(root, code)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create locale dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write post: %v", err)
	}
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	writePost(t, root, "pt", "ola-mundo.md", `---
title: Olá Mundo
description: Primeiro post
date: 2024-01-10
author: Ana
category: Livros
tags: [go, web]
translations:
  en: hello-world
---
# Olá

Conteúdo em português.
`)
	writePost(t, root, "pt", "segundo.md", `---
title: Segundo
date: 2024-02-01
author: Ana
category: livros
tags: [go]
---
Mais texto.
`)
	writePost(t, root, "en", "hello-world.md", `---
title: Hello World
date: 2024-01-12
author: Ana
category: books
tags: [go]
---
English body.
`)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminToken), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash admin token: %v", err)
	}

	cfg := config.DefaultBlogConfig()
	log := zerolog.Nop()
	blogService := service.NewBlogService(content.NewLoader(root, cfg, false, log), content.NewRenderer(cfg.BaseURL), nil, cfg, log)
	api := handler.NewAPI(blogService, service.NewReportService(gdb), string(hash), log)
	return SetupRouter(api, "test-secret", log)
}

func doRequest(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode body %q: %v", rr.Body.String(), err)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}

	const clientID = "7f1d2c3e-4b5a-4c6d-8e9f-0a1b2c3d4e5f"
	rr = doRequest(r, http.MethodGet, "/health", map[string]string{"X-Request-ID": clientID})
	if got := rr.Header().Get("X-Request-ID"); got != clientID {
		t.Fatalf("expected request id %q to be reused, got %q", clientID, got)
	}

	rr = doRequest(r, http.MethodGet, "/health", map[string]string{"X-Request-ID": "not-a-uuid"})
	if got := rr.Header().Get("X-Request-ID"); got == "not-a-uuid" {
		t.Fatalf("expected invalid request id to be replaced")
	}
}

func TestListPostsPaginates(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/blog/pt/posts?limit=1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Language"); got != "pt-BR" {
		t.Fatalf("expected Content-Language pt-BR, got %q", got)
	}

	var page struct {
		Posts []struct {
			Slug string `json:"slug"`
		} `json:"posts"`
		TotalCount                int  `json:"totalCount"`
		TotalPages                int  `json:"totalPages"`
		HasNextPage               bool `json:"hasNextPage"`
		AvailableInOtherLanguages int  `json:"availableInOtherLanguages"`
	}
	decodeBody(t, rr, &page)

	if page.TotalCount != 2 || page.TotalPages != 2 || !page.HasNextPage {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	if len(page.Posts) != 1 || page.Posts[0].Slug != "segundo" {
		t.Fatalf("expected newest post first, got %+v", page.Posts)
	}
	if page.AvailableInOtherLanguages != 1 {
		t.Fatalf("expected one post in other languages, got %d", page.AvailableInOtherLanguages)
	}
}

func TestCategoryFilterUsesNormalizedSlug(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/blog/pt/posts?category=LIVROS", nil)
	var page struct {
		TotalCount int `json:"totalCount"`
	}
	decodeBody(t, rr, &page)
	if page.TotalCount != 2 {
		t.Fatalf("expected both posts to match, got %d", page.TotalCount)
	}

	rr = doRequest(r, http.MethodGet, "/api/v1/blog/pt/posts?category=Books", nil)
	decodeBody(t, rr, &page)
	if page.TotalCount != 2 {
		t.Fatalf("expected the english category name to match Livros, got %d", page.TotalCount)
	}
}

func TestListPostsFarPageIsEmpty(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/blog/pt/posts?page=4611686018427387905&limit=2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var page struct {
		Posts      []json.RawMessage `json:"posts"`
		TotalCount int               `json:"totalCount"`
	}
	decodeBody(t, rr, &page)
	if len(page.Posts) != 0 || page.TotalCount != 2 {
		t.Fatalf("unexpected page: %d posts of %d", len(page.Posts), page.TotalCount)
	}
}

func TestGetPost(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/blog/pt/posts/ola-mundo", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var body struct {
		Post struct {
			Locale      string `json:"locale"`
			ContentHTML string `json:"contentHtml"`
		} `json:"post"`
		Translation struct {
			AvailableTranslations map[string]string `json:"availableTranslations"`
		} `json:"translation"`
		CategoryDisplayName string `json:"categoryDisplayName"`
	}
	decodeBody(t, rr, &body)
	if body.Post.Locale != "pt" || body.Post.ContentHTML == "" {
		t.Fatalf("unexpected post: %+v", body.Post)
	}
	if body.Translation.AvailableTranslations["en"] != "hello-world" {
		t.Fatalf("expected en translation, got %+v", body.Translation.AvailableTranslations)
	}
	if body.CategoryDisplayName != "Livros" {
		t.Fatalf("expected display name Livros, got %q", body.CategoryDisplayName)
	}
}

func TestGetPostFallsBackAcrossLocales(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/blog/es/posts/segundo", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected fallback to succeed, got %d", rr.Code)
	}
	var body struct {
		Post struct {
			Locale string `json:"locale"`
		} `json:"post"`
	}
	decodeBody(t, rr, &body)
	if body.Post.Locale != "pt" {
		t.Fatalf("expected pt fallback, got %q", body.Post.Locale)
	}

	rr = doRequest(r, http.MethodGet, "/api/v1/blog/es/posts/segundo?fallback=false", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d without fallback, got %d", http.StatusNotFound, rr.Code)
	}
	var notFound struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	decodeBody(t, rr, &notFound)
	if notFound.Error != "post_not_found" || notFound.Message != "Publicación no encontrada" {
		t.Fatalf("unexpected error body: %+v", notFound)
	}
}

func TestUnsupportedLocaleIsNotFound(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/blog/fr/posts", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestStaticParams(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/static-params", nil)
	var body struct {
		Params []service.StaticParam `json:"params"`
	}
	decodeBody(t, rr, &body)
	// 3 distinct slugs for each of the 3 locales
	if len(body.Params) != 9 {
		t.Fatalf("expected 9 params, got %d", len(body.Params))
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := setupTestRouter(t)

	rr := doRequest(r, http.MethodGet, "/api/v1/admin/snapshots", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}

	auth := map[string]string{"Authorization": "Bearer " + testAdminToken}
	rr = doRequest(r, http.MethodPost, "/api/v1/admin/snapshots", auth)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr = doRequest(r, http.MethodGet, "/api/v1/admin/snapshots", auth)
	var list struct {
		Snapshots []db.StatsSnapshot `json:"snapshots"`
	}
	decodeBody(t, rr, &list)
	if len(list.Snapshots) != 1 || list.Snapshots[0].TotalPosts != 3 {
		t.Fatalf("unexpected snapshots: %+v", list.Snapshots)
	}

	rr = doRequest(r, http.MethodGet, "/api/v1/admin/validation/pt/missing", auth)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d for unknown post, got %d", http.StatusNotFound, rr.Code)
	}
}
