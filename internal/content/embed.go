package content

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	embedLinePattern  = regexp.MustCompile(`^\s*<?((?:https?://)?[^\s<>]+)>?\s*$`)
	orderedListPrefix = regexp.MustCompile(`^\d+\.\s+`)
	youtubeTimePart   = regexp.MustCompile(`(?i)(\d+)(h|m|s)`) // t=1h2m3s
)

type videoEmbed struct {
	platform string
	source   string
	embedURL string
}

// expandVideoLinks replaces paragraphs that consist of a single YouTube or
// Vimeo link with an iframe player. Code blocks, quotes and list items are
// left alone.
func expandVideoLinks(body string) string {
	if strings.TrimSpace(body) == "" {
		return body
	}

	lines := strings.Split(body, "\n")
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(trimmed, fence):
				fence = ""
			}
			continue
		}
		if fence != "" || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") || skipEmbedLine(trimmed) {
			continue
		}

		match := embedLinePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		if embed, ok := parseVideoLink(match[1]); ok {
			lines[i] = embed.html()
		}
	}
	return strings.Join(lines, "\n")
}

func fenceMarker(line string) string {
	switch {
	case strings.HasPrefix(line, "```"):
		return "```"
	case strings.HasPrefix(line, "~~~"):
		return "~~~"
	}
	return ""
}

func skipEmbedLine(line string) bool {
	if line == "" || strings.HasPrefix(line, ">") {
		return true
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	return orderedListPrefix.MatchString(line)
}

func parseVideoLink(raw string) (videoEmbed, bool) {
	source := strings.TrimSpace(raw)
	lower := strings.ToLower(source)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		source = "https://" + source
	}
	u, err := url.Parse(source)
	if err != nil || u.Hostname() == "" {
		return videoEmbed{}, false
	}
	if embed, ok := youtubeEmbed(u, source); ok {
		return embed, true
	}
	return vimeoEmbed(u, source)
}

func youtubeEmbed(u *url.URL, source string) (videoEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")

	var id string
	switch {
	case host == "youtu.be":
		id = path
	case isHostOrSubdomain(host, "youtube.com"):
		if path == "watch" {
			id = u.Query().Get("v")
		}
		for _, prefix := range []string{"shorts/", "embed/", "live/"} {
			if strings.HasPrefix(path, prefix) {
				id = strings.TrimPrefix(path, prefix)
			}
		}
	default:
		return videoEmbed{}, false
	}
	id, _, _ = strings.Cut(id, "/")
	if id == "" {
		return videoEmbed{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("playsinline", "1")
	start := u.Query().Get("start")
	if start == "" {
		start = u.Query().Get("t")
	}
	if seconds := parseStartTime(start); seconds > 0 {
		values.Set("start", strconv.Itoa(seconds))
	}

	return videoEmbed{
		platform: "youtube",
		source:   source,
		embedURL: "https://www.youtube.com/embed/" + url.PathEscape(id) + "?" + values.Encode(),
	}, true
}

func vimeoEmbed(u *url.URL, source string) (videoEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "vimeo.com") {
		return videoEmbed{}, false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if !onlyDigits(id) {
		return videoEmbed{}, false
	}
	return videoEmbed{
		platform: "vimeo",
		source:   source,
		embedURL: "https://player.vimeo.com/video/" + id,
	}, true
}

// parseStartTime accepts plain seconds or the 1h2m3s form.
func parseStartTime(value string) int {
	value = strings.TrimSpace(strings.TrimSuffix(value, "s"))
	if value == "" {
		return 0
	}
	if onlyDigits(value) {
		seconds, _ := strconv.Atoi(value)
		return seconds
	}
	total := 0
	for _, match := range youtubeTimePart.FindAllStringSubmatch(value+"s", -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func (e videoEmbed) html() string {
	title := "YouTube video player"
	if e.platform == "vimeo" {
		title = "Vimeo video player"
	}
	return fmt.Sprintf(
		`<div class="video-embed" data-video-platform="%s" data-video-source="%s">`+
			`<iframe src="%s" title="%s" loading="lazy" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		e.platform,
		html.EscapeString(e.source),
		html.EscapeString(e.embedURL),
		title,
	)
}

func onlyDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
