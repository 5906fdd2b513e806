package blog

// CrossLanguageResult is a search run once per supported locale.
type CrossLanguageResult struct {
	Posts                 []Post            `json:"posts"`
	GroupedByLanguage     map[string][]Post `json:"groupedByLanguage"`
	TotalByLanguage       map[string]int    `json:"totalByLanguage"`
	SuggestedTranslations []Post            `json:"suggestedTranslations"`
}

// SearchCrossLanguage runs params in every supported locale, ignoring
// params.Locale. SuggestedTranslations holds the results whose slug was
// found in more than one locale.
func (e *Engine) SearchCrossLanguage(corpus []Post, params SearchParams) CrossLanguageResult {
	result := CrossLanguageResult{
		GroupedByLanguage: make(map[string][]Post, len(e.cfg.SupportedLocales)),
		TotalByLanguage:   make(map[string]int, len(e.cfg.SupportedLocales)),
	}

	var all []Post
	for _, code := range e.cfg.SupportedLocales {
		localeParams := params
		localeParams.Locale = code
		posts := e.Search(corpus, localeParams)
		result.GroupedByLanguage[code] = posts
		result.TotalByLanguage[code] = len(posts)
		all = append(all, posts...)
	}

	suggested := []Post{}
	seen := make(map[string]bool)
	for _, p := range all {
		if seen[p.Slug] {
			continue
		}
		seen[p.Slug] = true
		var translations []Post
		for _, other := range all {
			if other.Slug == p.Slug && other.Locale != p.Locale {
				translations = append(translations, other)
			}
		}
		if len(translations) > 0 {
			suggested = append(suggested, p)
			suggested = append(suggested, translations...)
		}
	}

	result.Posts = SortByDate(all, false)
	result.SuggestedTranslations = SortByDate(suggested, false)
	return result
}
