package content

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*]\((<[^>]+>|[^)\s]+)([^)]*)\)`)
	embedSrcPattern      = regexp.MustCompile(`^https://(?:www\.)?(?:youtube\.com/embed/|youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
)

// Renderer turns a Markdown body into sanitized HTML. Site-relative image
// paths are made absolute against the base URL.
type Renderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	baseURL   string
}

// NewRenderer creates a Renderer for the site at baseURL.
func NewRenderer(baseURL string) *Renderer {
	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
		),
		sanitizer: buildContentSanitizer(),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowElements("iframe")
	policy.AllowAttrs("src").Matching(embedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy", "width", "height").OnElements("iframe")
	policy.AllowAttrs("class", "data-video-platform", "data-video-source").OnElements("div")
	return policy
}

// Render converts body to HTML. A paragraph holding only a YouTube or
// Vimeo link becomes an embedded player.
func (r *Renderer) Render(body string) (string, error) {
	var buf bytes.Buffer
	source := expandVideoLinks(r.absoluteImageURLs(body))
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return string(r.sanitizer.SanitizeBytes(buf.Bytes())), nil
}

func (r *Renderer) absoluteImageURLs(body string) string {
	if r.baseURL == "" || !markdownImagePattern.MatchString(body) {
		return body
	}
	return markdownImagePattern.ReplaceAllStringFunc(body, func(match string) string {
		groups := markdownImagePattern.FindStringSubmatch(match)
		if len(groups) < 3 {
			return match
		}
		original := groups[1]
		target := strings.TrimSuffix(strings.TrimPrefix(original, "<"), ">")
		if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
			return match
		}
		replacement := r.baseURL + target
		if strings.HasPrefix(original, "<") {
			replacement = "<" + replacement + ">"
		}
		return strings.Replace(match, original, replacement, 1)
	})
}

// AbsoluteURL resolves a site-relative path such as a cover image.
func (r *Renderer) AbsoluteURL(path string) string {
	if r.baseURL == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	return r.baseURL + path
}
