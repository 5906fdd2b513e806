package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const adminContextKey = "__is_admin"

// isAdmin checks the bearer token against the configured bcrypt hash.
func (a *API) isAdmin(c *gin.Context) bool {
	if cached, exists := c.Get(adminContextKey); exists {
		if ok, isBool := cached.(bool); isBool {
			return ok
		}
	}
	ok := a.checkAdminToken(c.GetHeader("Authorization"))
	c.Set(adminContextKey, ok)
	return ok
}

func (a *API) checkAdminToken(header string) bool {
	if a.adminTokenHash == "" {
		return false
	}
	token, found := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.adminTokenHash), []byte(token)) == nil
}

// AuthRequired rejects requests without a valid admin token.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.isAdmin(c) {
			a.localizedError(c, http.StatusUnauthorized, msgAdminTokenRequired)
			return
		}
		c.Next()
	}
}

// ValidatePost reports validation errors and warnings for one post.
func (a *API) ValidatePost(c *gin.Context) {
	result := a.blog.ValidatePostBySlug(c.Param("slug"), c.Param("locale"))
	status := http.StatusOK
	if len(result.Errors) == 1 && result.Errors[0] == service.MessagePostNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}

// CreateSnapshot stores the current statistics.
func (a *API) CreateSnapshot(c *gin.Context) {
	if a.reports == nil {
		respondError(c, http.StatusServiceUnavailable, "snapshot storage is not configured")
		return
	}
	snapshot, err := a.reports.Record("api", a.blog.Statistics(), a.blog.TranslationStatistics())
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to record stats snapshot")
		respondError(c, http.StatusInternalServerError, "failed to record snapshot")
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// ListSnapshots returns stored statistics, newest first.
func (a *API) ListSnapshots(c *gin.Context) {
	if a.reports == nil {
		respondError(c, http.StatusServiceUnavailable, "snapshot storage is not configured")
		return
	}
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}
	snapshots, err := a.reports.List(limit)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to list stats snapshots")
		respondError(c, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}
