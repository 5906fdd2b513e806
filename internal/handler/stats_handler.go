package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Statistics serves corpus-wide counts.
func (a *API) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, a.blog.Statistics())
}

// TranslationStatistics serves translation progress per slug and locale.
func (a *API) TranslationStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, a.blog.TranslationStatistics())
}

// StaticParams lists every (locale, slug) pair to prebuild.
func (a *API) StaticParams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"params": a.blog.StaticParams()})
}

// CategoryStaticParams lists every (locale, category) pair to prebuild.
func (a *API) CategoryStaticParams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"params": a.blog.CategoryStaticParams()})
}

// Health reports whether the content directory can be read.
func (a *API) Health(c *gin.Context) {
	if _, err := a.blog.Corpus(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
