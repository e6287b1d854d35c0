package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/content"
	"folio/internal/logger"
	"folio/internal/metrics"
	"folio/internal/ogimage"
	"folio/internal/render"
)

// app carries what every subcommand needs once the root pre-run has loaded
// configuration.
type app struct {
	cfgFile     string
	contentRoot string
	logLevel    string

	fs      afero.Fs
	cfg     *config.Config
	log     logger.Logger
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{fs: afero.NewOsFs()}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Markdown blog content pipeline",
		Long: `folio reads a directory of markdown (.md and .mdx) posts with YAML front
matter and publishes them.

Configuration comes from folio.yaml, .env files and FOLIO_* environment
variables, e.g. FOLIO_CONTENT_ROOT=posts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	flags.StringVar(&a.contentRoot, "content", "", "content directory (overrides content.root)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newListCmd(a),
		newSlugsCmd(a),
		newShowCmd(a),
		newCheckCmd(a),
		newSitemapCmd(a),
		newOGCmd(a),
		newBuildCmd(a),
		newServeCmd(a),
		newBrowseCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.contentRoot != "" {
		cfg.Content.Root = a.contentRoot
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.metrics = metrics.New()
	return nil
}

// loadRepo builds the post collection from the configured content root.
func (a *app) loadRepo(ctx context.Context) (*content.Repository, error) {
	repo, err := content.Load(ctx, content.Options{
		Fs:            a.fs,
		Root:          a.cfg.Content.Root,
		Ignore:        a.cfg.Content.Ignore,
		DefaultAuthor: a.cfg.Site.DefaultAuthor,
		ExcerptLength: a.cfg.Content.ExcerptLength,
		Logger:        a.log,
		Metrics:       a.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return repo, nil
}

func (a *app) pages() (*render.Renderer, error) {
	return render.New(render.Site{
		Name:     a.cfg.Site.Name,
		BaseURL:  a.cfg.Site.BaseURL,
		BlogPath: a.cfg.Site.BlogPath,
	})
}

func (a *app) images() *ogimage.Renderer {
	return ogimage.New(a.cfg.Site.Name)
}
