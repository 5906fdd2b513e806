package blog

import (
	"sort"
	"strings"

	"github.com/gn1blog/internal/category"
)

// FilterByLocale keeps posts whose locale equals code exactly.
func FilterByLocale(posts []Post, code string) []Post {
	return filter(posts, func(p Post) bool { return p.Locale == code })
}

// FilterByCategory keeps posts whose category has the same canonical slug
// as the requested one, so "Revisão e Normalização" matches
// "review-and-standardization".
func FilterByCategory(posts []Post, name string) []Post {
	want := category.CanonicalSlug(name)
	if want == "" {
		return nil
	}
	return filter(posts, func(p Post) bool {
		return category.CanonicalSlug(p.Category) == want
	})
}

// FilterByAuthor keeps posts whose author contains name, ignoring case.
func FilterByAuthor(posts []Post, name string) []Post {
	needle := strings.ToLower(strings.TrimSpace(name))
	return filter(posts, func(p Post) bool {
		return strings.Contains(strings.ToLower(p.Author), needle)
	})
}

// FilterByTags keeps posts where any requested tag is a case-insensitive
// substring of any of the post's tags.
func FilterByTags(posts []Post, tags []string) []Post {
	needles := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.ToLower(strings.TrimSpace(tag)); trimmed != "" {
			needles = append(needles, trimmed)
		}
	}
	if len(needles) == 0 {
		return clonePosts(posts)
	}
	return filter(posts, func(p Post) bool {
		for _, postTag := range p.Tags {
			lowered := strings.ToLower(postTag)
			for _, needle := range needles {
				if strings.Contains(lowered, needle) {
					return true
				}
			}
		}
		return false
	})
}

// FilterByDateRange keeps posts dated within [from, to]. Empty or invalid
// bounds are ignored; posts with invalid dates are dropped.
func FilterByDateRange(posts []Post, from, to string) []Post {
	start, hasStart := ParseDate(from)
	end, hasEnd := ParseDate(to)
	return filter(posts, func(p Post) bool {
		date, ok := ParseDate(p.Date)
		if !ok {
			return false
		}
		if hasStart && date.Before(start) {
			return false
		}
		if hasEnd && date.After(end) {
			return false
		}
		return true
	})
}

// FilterPublished drops posts explicitly marked unpublished.
func FilterPublished(posts []Post) []Post {
	return filter(posts, func(p Post) bool { return p.Published })
}

// FilterFeatured keeps featured posts.
func FilterFeatured(posts []Post) []Post {
	return filter(posts, func(p Post) bool { return p.Featured })
}

func filter(posts []Post, keep func(Post) bool) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// UniqueCategories lists the distinct trimmed categories, sorted. An empty
// code means every locale.
func UniqueCategories(posts []Post, code string) []string {
	return uniqueValues(posts, code, func(p Post) []string { return []string{p.Category} })
}

// UniqueCategorySlugs lists the distinct canonical category slugs, sorted.
func UniqueCategorySlugs(posts []Post, code string) []string {
	return uniqueValues(posts, code, func(p Post) []string {
		return []string{category.CanonicalSlug(p.Category)}
	})
}

// UniqueAuthors lists the distinct trimmed authors, sorted.
func UniqueAuthors(posts []Post, code string) []string {
	return uniqueValues(posts, code, func(p Post) []string { return []string{p.Author} })
}

// UniqueTags lists the distinct trimmed tags, sorted.
func UniqueTags(posts []Post, code string) []string {
	return uniqueValues(posts, code, func(p Post) []string { return p.Tags })
}

func uniqueValues(posts []Post, code string, values func(Post) []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range posts {
		if code != "" && p.Locale != code {
			continue
		}
		for _, raw := range values(p) {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				continue
			}
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
			out = append(out, trimmed)
		}
	}
	sort.Strings(out)
	return out
}
