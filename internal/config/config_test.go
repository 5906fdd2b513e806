package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "CONTENT_DIR", "APP_ENV", "DATABASE_PATH", "SITE_BASE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.ContentDir != "content/blog" {
		t.Fatalf("expected content dir content/blog, got %q", cfg.ContentDir)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development environment by default")
	}
	if cfg.SiteBaseURL != DefaultBaseURL {
		t.Fatalf("expected base url %q, got %q", DefaultBaseURL, cfg.SiteBaseURL)
	}
}

func TestLoadProductionFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", " Production ")
	t.Setenv("PORT", "9000")
	t.Setenv("SITE_BASE_URL", "https://example.com/")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production environment, got %q", cfg.Environment)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr :9000, got %q", cfg.ListenAddr)
	}
	if cfg.SiteBaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SiteBaseURL)
	}
}

func TestLoadBlogConfigWithoutFile(t *testing.T) {
	cfg, err := LoadBlogConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultLocale != "pt" || cfg.PostsPerPage != 10 || cfg.RelatedPostsCount != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadBlogConfigOverridesFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.toml")
	body := `default_locale = "EN"
fallback_hierarchy = ["en", "pt", "es"]
posts_per_page = 5
show_cross_language_posts = false
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadBlogConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected default locale en, got %q", cfg.DefaultLocale)
	}
	if cfg.PostsPerPage != 5 {
		t.Fatalf("expected 5 posts per page, got %d", cfg.PostsPerPage)
	}
	if cfg.ShowCrossLanguagePosts {
		t.Fatalf("expected cross-language posts disabled")
	}
	if cfg.RecentPostsCount != 3 {
		t.Fatalf("expected untouched default 3, got %d", cfg.RecentPostsCount)
	}
}

func TestLoadBlogConfigRejectsInconsistentLocales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.toml")
	if err := os.WriteFile(path, []byte(`fallback_hierarchy = ["pt", "pt", "es"]`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadBlogConfig(path)
	if !errors.Is(err, ErrInvalidBlogConfig) {
		t.Fatalf("expected ErrInvalidBlogConfig, got %v", err)
	}
}
