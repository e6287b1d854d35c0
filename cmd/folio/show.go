package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/post"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Print one post's metadata and rendered HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			p, ok := repo.GetByIdentifier(post.Slug(args[0]))
			if !ok {
				return fmt.Errorf("post %q not found", args[0])
			}

			w := cmd.OutOrStdout()
			md := p.Metadata
			fmt.Fprintf(w, "title:        %s\n", md.Title)
			fmt.Fprintf(w, "date:         %s\n", md.Date)
			if md.Updated != "" {
				fmt.Fprintf(w, "updated:      %s\n", md.Updated)
			}
			fmt.Fprintf(w, "author:       %s\n", md.Author)
			fmt.Fprintf(w, "tags:         %s\n", strings.Join(md.Tags, ", "))
			fmt.Fprintf(w, "reading time: %d min\n", p.ReadingTime)
			fmt.Fprintf(w, "excerpt:      %s\n", md.Excerpt)
			fmt.Fprintf(w, "url:          %s\n", a.cfg.Site.PostURL(string(p.Slug)))
			fmt.Fprintf(w, "source:       %s\n\n", p.SourcePath)
			fmt.Fprintln(w, p.HTML)
			return nil
		},
	}
}
