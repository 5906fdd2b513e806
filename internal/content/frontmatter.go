package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/gn1blog/internal/blog"
	"github.com/gn1blog/internal/locale"
)

// frontMatter is the document header as written by authors. Every field is
// optional; toPost applies the defaults.
type frontMatter struct {
	Title        string            `yaml:"title" toml:"title" json:"title"`
	Description  string            `yaml:"description" toml:"description" json:"description"`
	Date         dateValue         `yaml:"date" toml:"date" json:"date"`
	Author       string            `yaml:"author" toml:"author" json:"author"`
	Category     string            `yaml:"category" toml:"category" json:"category"`
	CoverImage   string            `yaml:"coverImage" toml:"coverImage" json:"coverImage"`
	Tags         stringList        `yaml:"tags" toml:"tags" json:"tags"`
	Featured     bool              `yaml:"featured" toml:"featured" json:"featured"`
	Published    *bool             `yaml:"published" toml:"published" json:"published"`
	Translations map[string]string `yaml:"translations" toml:"translations" json:"translations"`
}

// dateValue accepts both quoted strings and native TOML/YAML dates.
type dateValue string

func (d *dateValue) set(raw interface{}) error {
	switch v := raw.(type) {
	case nil:
		*d = ""
	case string:
		*d = dateValue(strings.TrimSpace(v))
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			*d = dateValue(v.Format("2006-01-02"))
		} else {
			*d = dateValue(v.Format(time.RFC3339))
		}
	default:
		*d = dateValue(fmt.Sprint(v))
	}
	return nil
}

func (d *dateValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *dateValue) UnmarshalTOML(raw interface{}) error {
	return d.set(raw)
}

func (d *dateValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.set(raw)
}

// stringList accepts a list or a single comma separated string.
type stringList []string

func (l *stringList) set(raw interface{}) error {
	switch v := raw.(type) {
	case nil:
		*l = nil
	case string:
		*l = splitList(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, strings.TrimSpace(fmt.Sprint(item)))
		}
		*l = out
	default:
		return fmt.Errorf("unsupported list value %T", raw)
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (l *stringList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return l.set(raw)
}

func (l *stringList) UnmarshalTOML(raw interface{}) error {
	return l.set(raw)
}

func (l *stringList) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return l.set(raw)
}

// parseDocument splits raw into its header and markdown body.
func parseDocument(raw []byte) (frontMatter, string, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return frontMatter{}, "", err
	}
	return fm, string(body), nil
}

func (fm frontMatter) toPost(slug, code string) blog.Post {
	post := blog.Post{
		Slug:        slug,
		Locale:      code,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        string(fm.Date),
		Author:      fm.Author,
		Category:    fm.Category,
		CoverImage:  fm.CoverImage,
		Featured:    fm.Featured,
		Published:   fm.Published == nil || *fm.Published,
	}
	if fm.Tags != nil {
		post.Tags = []string(fm.Tags)
	}
	for target, translated := range fm.Translations {
		target = locale.Normalize(target)
		translated = strings.TrimSpace(translated)
		if target == "" || translated == "" {
			continue
		}
		if post.Translations == nil {
			post.Translations = make(map[string]string)
		}
		post.Translations[target] = translated
	}
	return post
}
