package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"folio/internal/export"
	"folio/internal/logger"
	"folio/internal/post"
	"folio/internal/sitemap"
)

func newSitemapCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write the sitemap XML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			entries := sitemap.Entries(repo.ListAll(), a.cfg.Site.BaseURL, a.cfg.Site.BlogPath)
			var buf bytes.Buffer
			if err := sitemap.Write(&buf, entries); err != nil {
				return err
			}
			return a.output(cmd.OutOrStdout(), out, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newOGCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "og <slug>",
		Short: "Render a post's social preview image",
		Long: `Render the 1200x630 PNG preview image for a post. Unknown slugs get the
generic site image, as the server does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			images := a.images()
			if p, ok := repo.GetPreview(post.Slug(args[0])); ok {
				err = images.Render(&buf, p)
			} else {
				a.log.Warn("unknown slug, using fallback image", logger.String("slug", args[0]))
				err = images.Fallback(&buf)
			}
			if err != nil {
				return err
			}
			return a.output(cmd.OutOrStdout(), out, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output PNG file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newBuildCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the blog as a static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = a.cfg.Build.OutputDir
			}
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			pages, err := a.pages()
			if err != nil {
				return err
			}
			bundle, err := export.Generate(repo, pages, a.images(), export.Site{
				BaseURL:  a.cfg.Site.BaseURL,
				BlogPath: a.cfg.Site.BlogPath,
			})
			if err != nil {
				return fmt.Errorf("generate site: %w", err)
			}

			if dir := a.cfg.Build.StaticDir; dir != "" {
				if err := export.CopyStatic(a.fs, dir, out); err != nil {
					return err
				}
			}
			if err := export.Write(a.fs, bundle, out); err != nil {
				return fmt.Errorf("write site: %w", err)
			}

			var size uint64
			for _, p := range bundle.Paths() {
				data, _ := bundle.File(p)
				size += uint64(len(data))
			}
			a.log.Info("site exported",
				logger.String("dir", out),
				logger.Int("files", bundle.Len()),
				logger.Int("posts", repo.Len()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files (%s) to %s\n", bundle.Len(), humanize.Bytes(size), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output directory (overrides build.output_dir)")
	return cmd
}

// output writes data to path, or to w when path is empty.
func (a *app) output(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := afero.WriteFile(a.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
