package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"folio/internal/browse"
	"folio/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Long: `Load the content once and serve it over HTTP until interrupted.

Routes: the blog index and posts under site.blog_path, /sitemap.xml,
/og/<slug>.png, /health and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			pages, err := a.pages()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Addr:     addr,
				BaseURL:  a.cfg.Site.BaseURL,
				BlogPath: a.cfg.Site.BlogPath,
			}, server.Deps{
				Repo:    repo,
				Pages:   pages,
				Images:  a.images(),
				Logger:  a.log,
				Metrics: a.metrics,
			})
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse posts in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			return browse.Run(repo)
		},
	}
}
