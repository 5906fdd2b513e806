package router

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/handler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(logger))

	// 配置会话中间件，用于记住读者的语言偏好
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("gn1blog_session", store))

	r.GET("/health", api.Health)

	v1 := r.Group("/api/v1")
	v1.Use(api.LocaleMiddleware())
	{
		v1.GET("/search", api.SearchAllLanguages)
		v1.GET("/stats", api.Statistics)
		v1.GET("/stats/translations", api.TranslationStatistics)
		v1.GET("/static-params", api.StaticParams)
		v1.GET("/static-params/categories", api.CategoryStaticParams)

		localized := v1.Group("/blog/:locale")
		localized.Use(handler.RequireLocale())
		{
			localized.GET("/posts", api.ListPosts)
			localized.GET("/posts/:slug", api.GetPost)
			localized.GET("/posts/:slug/related", api.RelatedPosts)
			localized.GET("/posts/:slug/translations", api.PostTranslations)
			localized.GET("/categories", api.ListCategories)
			localized.GET("/categories/:category", api.ListCategoryPosts)
			localized.GET("/authors", api.ListAuthors)
			localized.GET("/tags", api.ListTags)
			localized.GET("/featured", api.FeaturedPosts)
			localized.GET("/recent", api.RecentPosts)
		}

		// 需要管理员令牌的路由
		admin := v1.Group("/admin")
		admin.Use(api.AuthRequired())
		{
			admin.GET("/snapshots", api.ListSnapshots)
			admin.POST("/snapshots", api.CreateSnapshot)
			admin.GET("/validation/:locale/:slug", handler.RequireLocale(), api.ValidatePost)
		}
	}

	return r
}

// RequestID 为每个请求分配唯一 ID，并沿用客户端传入的值。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog 使用 zerolog 输出访问日志。
func AccessLog(logger zerolog.Logger) gin.HandlerFunc {
	accessLogger := logger.With().Str("component", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := accessLogger.Info()
		if c.Writer.Status() >= 500 {
			event = accessLogger.Error()
		}
		event.
			Str("request_id", c.GetString(requestIDHeader)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}
