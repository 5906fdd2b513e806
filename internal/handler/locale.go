package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/locale"
)

const (
	localeContextKey   = "__request_locale"
	languageSessionKey = "lang"
)

// LocaleMiddleware resolves the request locale and sets headers for
// downstream caching. The order is path, ?lang, session, Accept-Language
// and finally the configured default.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		appendVaryHeader(c, "Accept-Language", "Cookie")
		c.Next()
	}
}

// RequireLocale rejects paths whose :locale segment is not served.
func RequireLocale() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !locale.IsValid(c.Param("locale")) {
			abortWithError(c, http.StatusNotFound, "unsupported locale")
			return
		}
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	code, persist := a.resolveLanguage(c)
	pref := locale.PreferenceFor(code)
	if persist {
		persistLanguage(c, pref.Locale)
	}
	c.Set(localeContextKey, pref)
	return pref
}

func (a *API) resolveLanguage(c *gin.Context) (string, bool) {
	if fromPath := c.Param("locale"); locale.IsValid(fromPath) {
		return fromPath, false
	}
	if override := locale.Normalize(c.Query("lang")); override != "" {
		return override, true
	}
	if stored := readSessionLanguage(c); stored != "" {
		return stored, false
	}
	if fromHeader := locale.FromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		return fromHeader, false
	}
	return a.blog.Config().DefaultLocale, false
}

func readSessionLanguage(c *gin.Context) string {
	session := sessionOrNil(c)
	if session == nil {
		return ""
	}
	value, _ := session.Get(languageSessionKey).(string)
	return locale.Normalize(value)
}

func persistLanguage(c *gin.Context, code string) {
	session := sessionOrNil(c)
	if session == nil {
		return
	}
	session.Set(languageSessionKey, code)
	_ = session.Save()
}

// sessionOrNil tolerates engines built without the sessions middleware.
func sessionOrNil(c *gin.Context) sessions.Session {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil
	}
	return sessions.Default(c)
}

func appendVaryHeader(c *gin.Context, values ...string) {
	existing := c.Writer.Header().Values("Vary")
	seen := make(map[string]bool)
	for _, header := range existing {
		for _, part := range strings.Split(header, ",") {
			seen[strings.ToLower(strings.TrimSpace(part))] = true
		}
	}
	for _, value := range values {
		if seen[strings.ToLower(value)] {
			continue
		}
		c.Writer.Header().Add("Vary", value)
		seen[strings.ToLower(value)] = true
	}
}

// RequestLocale returns the locale resolved for c.
func (a *API) RequestLocale(c *gin.Context) string {
	return a.requestLocale(c).Locale
}
