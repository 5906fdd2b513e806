package blog

// FindPost returns the post stored under (slug, code).
func FindPost(corpus []Post, slug, code string) (Post, bool) {
	for _, p := range corpus {
		if p.Slug == slug && p.Locale == code {
			return p, true
		}
	}
	return Post{}, false
}

// FindTranslation resolves slug into target. A direct (slug, target) post
// wins; otherwise the first post with slug in any locale is asked for its
// declared translation into target, whose slug may differ.
func FindTranslation(corpus []Post, slug, target string) (Post, bool) {
	if direct, ok := FindPost(corpus, slug, target); ok {
		return direct, true
	}
	for _, p := range corpus {
		if p.Slug != slug {
			continue
		}
		translated, ok := p.Translations[target]
		if !ok || translated == "" {
			return Post{}, false
		}
		return FindPost(corpus, translated, target)
	}
	return Post{}, false
}

// AvailableTranslations resolves slug into every supported locale other
// than current, keeping only the ones that exist.
func (e *Engine) AvailableTranslations(corpus []Post, slug, current string) map[string]Post {
	found := make(map[string]Post)
	for _, code := range e.cfg.SupportedLocales {
		if code == current {
			continue
		}
		if p, ok := FindTranslation(corpus, slug, code); ok {
			found[code] = p
		}
	}
	return found
}

// PostWithFallback walks the fallback hierarchy of preferred and returns
// the first locale's resolution of slug.
func (e *Engine) PostWithFallback(corpus []Post, slug, preferred string) (Post, bool) {
	for _, code := range e.FallbackHierarchy(preferred) {
		if p, ok := FindTranslation(corpus, slug, code); ok {
			return p, true
		}
	}
	return Post{}, false
}
