package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const DefaultBaseURL = "https://gn1world.com"

var ErrInvalidBlogConfig = errors.New("invalid blog config")

// BlogConfig holds the content settings shared by the loader, the query
// engine and the HTTP surface.
type BlogConfig struct {
	SupportedLocales        []string `toml:"supported_locales"`
	DefaultLocale           string   `toml:"default_locale"`
	FallbackHierarchy       []string `toml:"fallback_hierarchy"`
	EnableFallback          bool     `toml:"enable_fallback"`
	ShowCrossLanguagePosts  bool     `toml:"show_cross_language_posts"`
	PostsPerPage            int      `toml:"posts_per_page"`
	RelatedPostsCount       int      `toml:"related_posts_count"`
	RecentPostsCount        int      `toml:"recent_posts_count"`
	FeaturedPostsCount      int      `toml:"featured_posts_count"`
	Extensions              []string `toml:"extensions"`
	FallbackSlug            string   `toml:"fallback_slug"`
	FallbackCategory        string   `toml:"fallback_category"`
	MaxTitleLength          int      `toml:"max_title_length"`
	MaxDescriptionLength    int      `toml:"max_description_length"`
	MinCategoryLength       int      `toml:"min_category_length"`
	SameLanguageBonus       float64  `toml:"same_language_bonus"`
	TieredSameLanguageBonus float64  `toml:"tiered_same_language_bonus"`
	BaseURL                 string   `toml:"base_url"`
}

// DefaultBlogConfig returns the settings the site ships with.
func DefaultBlogConfig() BlogConfig {
	return BlogConfig{
		SupportedLocales:        []string{"pt", "en", "es"},
		DefaultLocale:           "pt",
		FallbackHierarchy:       []string{"pt", "en", "es"},
		EnableFallback:          true,
		ShowCrossLanguagePosts:  true,
		PostsPerPage:            10,
		RelatedPostsCount:       2,
		RecentPostsCount:        3,
		FeaturedPostsCount:      3,
		Extensions:              []string{".md", ".mdx"},
		FallbackSlug:            "sem-conteudo",
		FallbackCategory:        "sem-categoria",
		MaxTitleLength:          100,
		MaxDescriptionLength:    500,
		MinCategoryLength:       1,
		SameLanguageBonus:       2,
		TieredSameLanguageBonus: 3,
		BaseURL:                 DefaultBaseURL,
	}
}

// LoadBlogConfig starts from the defaults and applies the TOML file at path,
// when one is given. Keys missing from the file keep their default value.
func LoadBlogConfig(path string) (BlogConfig, error) {
	cfg := DefaultBlogConfig()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return BlogConfig{}, fmt.Errorf("decode blog config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return BlogConfig{}, err
	}
	return cfg, nil
}

func (c *BlogConfig) normalize() {
	for i, code := range c.SupportedLocales {
		c.SupportedLocales[i] = strings.ToLower(strings.TrimSpace(code))
	}
	for i, code := range c.FallbackHierarchy {
		c.FallbackHierarchy[i] = strings.ToLower(strings.TrimSpace(code))
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	c.DefaultLocale = strings.ToLower(strings.TrimSpace(c.DefaultLocale))
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// Validate checks that the locale settings are consistent with each other.
func (c BlogConfig) Validate() error {
	if len(c.SupportedLocales) == 0 {
		return fmt.Errorf("%w: no supported locales", ErrInvalidBlogConfig)
	}
	if !c.IsSupported(c.DefaultLocale) {
		return fmt.Errorf("%w: default locale %q is not supported", ErrInvalidBlogConfig, c.DefaultLocale)
	}
	if len(c.FallbackHierarchy) != len(c.SupportedLocales) {
		return fmt.Errorf("%w: fallback hierarchy must list every supported locale once", ErrInvalidBlogConfig)
	}
	seen := make(map[string]bool, len(c.FallbackHierarchy))
	for _, code := range c.FallbackHierarchy {
		if !c.IsSupported(code) || seen[code] {
			return fmt.Errorf("%w: fallback hierarchy must list every supported locale once", ErrInvalidBlogConfig)
		}
		seen[code] = true
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: no content extensions", ErrInvalidBlogConfig)
	}
	if c.PostsPerPage <= 0 || c.RelatedPostsCount <= 0 || c.RecentPostsCount <= 0 || c.FeaturedPostsCount <= 0 {
		return fmt.Errorf("%w: page and list sizes must be positive", ErrInvalidBlogConfig)
	}
	return nil
}

// IsSupported reports whether code is one of the configured locales.
func (c BlogConfig) IsSupported(code string) bool {
	for _, candidate := range c.SupportedLocales {
		if candidate == code {
			return true
		}
	}
	return false
}
