package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	ContentDir     string
	AssetDir       string
	Environment    string
	DatabasePath   string
	SessionSecret  string
	GinMode        string
	SiteBaseURL    string
	AdminTokenHash string
	LogLevel       string
	BlogConfigFile string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	contentDir := strings.TrimSpace(os.Getenv("CONTENT_DIR"))
	if contentDir == "" {
		contentDir = "content/blog"
	}

	environment := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if environment == "" {
		environment = "development"
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "gn1blog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "gn1blog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = DefaultBaseURL
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		ContentDir:     contentDir,
		AssetDir:       strings.TrimSpace(os.Getenv("ASSET_DIR")),
		Environment:    environment,
		DatabasePath:   databasePath,
		SessionSecret:  sessionSecret,
		GinMode:        ginMode,
		SiteBaseURL:    strings.TrimRight(siteBaseURL, "/"),
		AdminTokenHash: strings.TrimSpace(os.Getenv("ADMIN_TOKEN_HASH")),
		LogLevel:       logLevel,
		BlogConfigFile: strings.TrimSpace(os.Getenv("BLOG_CONFIG_FILE")),
	}
}

// IsProduction 表示是否过滤未发布的文章。
func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
