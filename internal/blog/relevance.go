package blog

import (
	"math"
	"sort"

	"github.com/gn1blog/internal/category"
)

const (
	categoryWeight     = 3.0
	authorWeight       = 1.0
	tagWeight          = 0.5
	proximityWindowDay = 30

	defaultSameLanguageBonus = 2.0
)

// RelevanceScore scores candidate b against source a. The locale bonus is
// added when b shares a's locale and is supplied by the caller, so the
// same pair can score differently depending on the strategy in use. Each
// distinct tag shared by both posts counts once.
func RelevanceScore(a, b Post, sameLocaleBonus float64) float64 {
	score := 0.0

	if catA := category.CanonicalSlug(a.Category); catA != "" && catA == category.CanonicalSlug(b.Category) {
		score += categoryWeight
	}

	if dateA, okA := ParseDate(a.Date); okA {
		if dateB, okB := ParseDate(b.Date); okB {
			diff := math.Abs(float64(dateA.Sub(dateB).Milliseconds()))
			days := math.Ceil(diff / float64(24*60*60*1000))
			if days < proximityWindowDay {
				score += 1 - days/proximityWindowDay
			}
		}
	}

	if a.Author != "" && a.Author == b.Author {
		score += authorWeight
	}

	if len(a.Tags) > 0 && len(b.Tags) > 0 {
		candidateTags := make(map[string]struct{}, len(b.Tags))
		for _, tag := range b.Tags {
			candidateTags[tag] = struct{}{}
		}
		counted := make(map[string]struct{}, len(a.Tags))
		for _, tag := range a.Tags {
			if _, dup := counted[tag]; dup {
				continue
			}
			counted[tag] = struct{}{}
			if _, ok := candidateTags[tag]; ok {
				score += tagWeight
			}
		}
	}

	if a.Locale == b.Locale {
		score += sameLocaleBonus
	}

	return score
}

type scoredPost struct {
	post  Post
	score float64
}

func scorePosts(current Post, candidates []Post, bonus float64) []scoredPost {
	scored := make([]scoredPost, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, scoredPost{post: candidate, score: RelevanceScore(current, candidate, bonus)})
	}
	return scored
}

// rank orders by score, then by date with newer first. Posts with unusable
// dates tie and keep their order.
func rank(scored []scoredPost) []Post {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return compareDatesDesc(scored[i].post, scored[j].post) < 0
	})
	posts := make([]Post, len(scored))
	for i, item := range scored {
		posts[i] = item.post
	}
	return posts
}

func truncate(posts []Post, max int) []Post {
	if max < 0 {
		max = 0
	}
	if len(posts) > max {
		return posts[:max]
	}
	return posts
}

// RelatedPosts ranks every post with a different slug than current in one
// pass. The same-locale bonus is 2 when preferSameLanguage is set, else 0.
func RelatedPosts(current Post, corpus []Post, maxResults int, preferSameLanguage bool) []Post {
	return relatedPosts(current, corpus, maxResults, preferSameLanguage, defaultSameLanguageBonus)
}

// RelatedPosts is the single-pass ranking with the configured bonus.
func (e *Engine) RelatedPosts(current Post, corpus []Post, maxResults int, preferSameLanguage bool) []Post {
	if maxResults <= 0 {
		maxResults = e.cfg.RelatedPostsCount
	}
	return relatedPosts(current, corpus, maxResults, preferSameLanguage, e.cfg.SameLanguageBonus)
}

func relatedPosts(current Post, corpus []Post, maxResults int, preferSameLanguage bool, sameLanguageBonus float64) []Post {
	bonus := 0.0
	if preferSameLanguage {
		bonus = sameLanguageBonus
	}
	candidates := filter(corpus, func(p Post) bool { return p.Slug != current.Slug })
	return truncate(rank(scorePosts(current, candidates, bonus)), maxResults)
}

// TieredOptions configures RelatedPostsTiered.
type TieredOptions struct {
	// Locale is the reader's locale; it splits candidates into two pools.
	Locale             string
	MaxResults         int
	PreferSameLanguage bool
	ShowCrossLanguage  bool
	// SameLanguageBonus is the locale bonus used inside the same-locale pool.
	SameLanguageBonus float64
}

// RelatedPostsTiered picks related posts from two pools. Same-locale
// candidates are scored with the same-language bonus, other-locale ones
// with none. With PreferSameLanguage the ranked same-locale pool fills the
// result first and the ranked other pool only backfills free slots;
// otherwise both pools are ranked together.
func RelatedPostsTiered(current Post, corpus []Post, opts TieredOptions) []Post {
	if opts.MaxResults <= 0 {
		return []Post{}
	}

	samePool := filter(corpus, func(p Post) bool {
		return p.Slug != current.Slug && p.Locale == opts.Locale
	})
	otherPool := []Post{}
	if opts.ShowCrossLanguage {
		otherPool = filter(corpus, func(p Post) bool {
			return p.Slug != current.Slug && p.Locale != opts.Locale
		})
	}

	sameScored := scorePosts(current, samePool, opts.SameLanguageBonus)
	otherScored := scorePosts(current, otherPool, 0)

	if !opts.PreferSameLanguage {
		return truncate(rank(append(sameScored, otherScored...)), opts.MaxResults)
	}

	result := truncate(rank(sameScored), opts.MaxResults)
	if remaining := opts.MaxResults - len(result); remaining > 0 && opts.ShowCrossLanguage {
		result = append(result, truncate(rank(otherScored), remaining)...)
	}
	return result
}

// RelatedPostsTiered runs the two-pool strategy with the configured
// same-language bonus and cross-language setting.
func (e *Engine) RelatedPostsTiered(current Post, corpus []Post, targetLocale string, maxResults int, preferSameLanguage bool) []Post {
	if maxResults <= 0 {
		maxResults = e.cfg.RelatedPostsCount
	}
	if targetLocale == "" {
		targetLocale = current.Locale
	}
	return RelatedPostsTiered(current, corpus, TieredOptions{
		Locale:             targetLocale,
		MaxResults:         maxResults,
		PreferSameLanguage: preferSameLanguage,
		ShowCrossLanguage:  e.cfg.ShowCrossLanguagePosts,
		SameLanguageBonus:  e.cfg.TieredSameLanguageBonus,
	})
}
