// Package content reads locale-partitioned Markdown documents from disk.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gn1blog/internal/blog"
	"github.com/gn1blog/internal/config"
	"github.com/rs/zerolog"
)

var (
	ErrContentUnreadable = errors.New("content directory unreadable")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidLocale     = errors.New("unsupported locale")
)

// Document is a parsed file: its metadata and raw Markdown body.
type Document struct {
	Post blog.Post
	Body string
	Path string
}

// Loader scans {root}/{locale}/{slug}.{ext}. It keeps no state between
// calls; every load reads the filesystem again.
type Loader struct {
	root       string
	cfg        config.BlogConfig
	production bool
	engine     *blog.Engine
	logger     zerolog.Logger
}

// NewLoader creates a Loader. In production mode documents marked
// published: false are left out.
func NewLoader(root string, cfg config.BlogConfig, production bool, logger zerolog.Logger) *Loader {
	return &Loader{
		root:       root,
		cfg:        cfg,
		production: production,
		engine:     blog.NewEngine(cfg),
		logger:     logger.With().Str("component", "content").Logger(),
	}
}

// Root returns the content directory.
func (l *Loader) Root() string {
	return l.root
}

// Load returns the posts of one locale, newest first. A missing directory
// yields no posts; any other listing failure wraps ErrContentUnreadable.
// Malformed documents are skipped.
func (l *Loader) Load(code string) ([]blog.Post, error) {
	if !l.cfg.IsSupported(code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, code)
	}
	posts, err := l.loadLocale(code)
	if err != nil {
		return nil, err
	}
	return blog.SortByDate(posts, false), nil
}

// LoadAll returns the posts of every supported locale, newest first.
func (l *Loader) LoadAll() ([]blog.Post, error) {
	var all []blog.Post
	for _, code := range l.cfg.SupportedLocales {
		posts, err := l.loadLocale(code)
		if err != nil {
			return nil, err
		}
		all = append(all, posts...)
	}
	return blog.SortByDate(all, false), nil
}

func (l *Loader) loadLocale(code string) ([]blog.Post, error) {
	dir := filepath.Join(l.root, code)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug().Str("locale", code).Str("dir", dir).Msg("content directory missing")
			return []blog.Post{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrContentUnreadable, dir, err)
	}

	posts := make([]blog.Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.hasContentExtension(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := l.readDocument(path, code)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("skipping malformed document")
			continue
		}
		if l.production && !doc.Post.Published {
			continue
		}
		l.logValidation(doc.Post, path)
		posts = append(posts, doc.Post)
	}
	return posts, nil
}

func (l *Loader) logValidation(post blog.Post, path string) {
	result := l.engine.Validate(post)
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		return
	}
	l.logger.Debug().
		Str("path", path).
		Strs("errors", result.Errors).
		Strs("warnings", result.Warnings).
		Msg("document has validation issues")
}

func (l *Loader) hasContentExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range l.cfg.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (l *Loader) readDocument(path, code string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	fm, body, err := parseDocument(raw)
	if err != nil {
		return Document{}, fmt.Errorf("parse front matter: %w", err)
	}
	name := filepath.Base(path)
	slug := strings.TrimSuffix(name, filepath.Ext(name))
	return Document{Post: fm.toPost(slug, code), Body: body, Path: path}, nil
}

// Find returns the path of (slug, code), trying extensions in order.
func (l *Loader) Find(slug, code string) (string, bool) {
	if !l.cfg.IsSupported(code) || !isSafeSlug(slug) {
		return "", false
	}
	for _, ext := range l.cfg.Extensions {
		path := filepath.Join(l.root, code, slug+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Document reads (slug, code) including its body. Unpublished documents
// are reported as missing in production mode.
func (l *Loader) Document(slug, code string) (Document, error) {
	path, ok := l.Find(slug, code)
	if !ok {
		return Document{}, fmt.Errorf("%w: %s/%s", ErrDocumentNotFound, code, slug)
	}
	doc, err := l.readDocument(path, code)
	if err != nil {
		return Document{}, err
	}
	if l.production && !doc.Post.Published {
		return Document{}, fmt.Errorf("%w: %s/%s", ErrDocumentNotFound, code, slug)
	}
	return doc, nil
}

func isSafeSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}
