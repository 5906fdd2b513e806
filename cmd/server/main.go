package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/content"
	"github.com/gn1blog/internal/db"
	"github.com/gn1blog/internal/handler"
	"github.com/gn1blog/internal/router"
	"github.com/gn1blog/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env 文件是可选的
	_ = godotenv.Load()

	appCfg := config.Load()
	logger := newLogger(appCfg.LogLevel)
	gin.SetMode(appCfg.GinMode)

	blogCfg, err := config.LoadBlogConfig(appCfg.BlogConfigFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load blog config")
	}
	if appCfg.SiteBaseURL != config.DefaultBaseURL {
		blogCfg.BaseURL = appCfg.SiteBaseURL
	}

	// 初始化数据库，失败时快照功能不可用，但博客照常提供服务
	var reports *service.ReportService
	if err := db.Init(appCfg.DatabasePath); err != nil {
		logger.Error().Err(err).Str("path", appCfg.DatabasePath).Msg("failed to initialize database, snapshots disabled")
	} else {
		reports = service.NewReportService(db.DB)
	}

	var covers *content.CoverInspector
	if appCfg.AssetDir != "" {
		covers = content.NewCoverInspector(appCfg.AssetDir)
	}

	loader := content.NewLoader(appCfg.ContentDir, blogCfg, appCfg.IsProduction(), logger)
	blogService := service.NewBlogService(loader, content.NewRenderer(blogCfg.BaseURL), covers, blogCfg, logger)
	api := handler.NewAPI(blogService, reports, appCfg.AdminTokenHash, logger)

	srv := &http.Server{
		Addr:              appCfg.ListenAddr,
		Handler:           router.SetupRouter(api, appCfg.SessionSecret, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("content", appCfg.ContentDir).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("gracefully shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("error shutting down the server")
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}
