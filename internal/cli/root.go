// Package cli implements blogctl, the command line companion of the blog
// server for content authors.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gn1blog/internal/config"
	"github.com/gn1blog/internal/content"
	"github.com/gn1blog/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	contentDir string
	configFile string
	assetDir   string
	production bool
	logLevel   string
}

// app is shared by every subcommand once PersistentPreRunE has run.
type app struct {
	opts   rootOptions
	appCfg config.AppConfig
	cfg    config.BlogConfig
	loader *content.Loader
	blog   *service.BlogService
	logger zerolog.Logger
}

// NewRootCommand builds the blogctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Inspect and validate the multilingual blog content",
		Long: `blogctl reads the same content directory as the server and reports
statistics, translation progress and validation problems.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.contentDir, "content", "", "content directory (default $CONTENT_DIR or content/blog)")
	flags.StringVar(&a.opts.configFile, "config", "", "blog TOML config file (default $BLOG_CONFIG_FILE)")
	flags.StringVar(&a.opts.assetDir, "assets", "", "static asset directory used to check cover images")
	flags.BoolVar(&a.opts.production, "production", false, "hide unpublished posts")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level (default $LOG_LEVEL or warn)")

	root.AddCommand(
		newStatsCommand(a),
		newTranslationsCommand(a),
		newValidateCommand(a),
		newSearchCommand(a),
		newSnapshotCommand(a),
	)
	return root
}

// Execute runs blogctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initialize(cmd *cobra.Command) error {
	_ = godotenv.Load()
	a.appCfg = config.Load()

	level := a.opts.logLevel
	if level == "" && os.Getenv("LOG_LEVEL") != "" {
		level = a.appCfg.LogLevel
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		parsed = zerolog.WarnLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(parsed).With().Timestamp().Logger()

	configFile := a.opts.configFile
	if configFile == "" {
		configFile = a.appCfg.BlogConfigFile
	}
	a.cfg, err = config.LoadBlogConfig(configFile)
	if err != nil {
		return err
	}

	contentDir := a.opts.contentDir
	if contentDir == "" {
		contentDir = a.appCfg.ContentDir
	}
	assetDir := a.opts.assetDir
	if assetDir == "" {
		assetDir = a.appCfg.AssetDir
	}
	var covers *content.CoverInspector
	if assetDir != "" {
		covers = content.NewCoverInspector(assetDir)
	}

	production := a.opts.production || a.appCfg.IsProduction()
	a.loader = content.NewLoader(contentDir, a.cfg, production, a.logger)
	a.blog = service.NewBlogService(a.loader, content.NewRenderer(a.cfg.BaseURL), covers, a.cfg, a.logger)
	return nil
}

// locales returns the requested locale, or every supported one when empty.
func (a *app) locales(code string) ([]string, error) {
	if code == "" {
		return a.cfg.SupportedLocales, nil
	}
	if !a.cfg.IsSupported(code) {
		return nil, fmt.Errorf("unsupported locale %q", code)
	}
	return []string{code}, nil
}
