package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			posts := repo.ListAll()
			if len(posts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No posts found")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Date", "Slug", "Title", "Author", "Read", "Tags"})
			for _, p := range posts {
				t.AppendRow(table.Row{
					p.Metadata.Published.Format("2006-01-02") + " (" + humanize.Time(p.Metadata.Published) + ")",
					p.Slug,
					p.Metadata.Title,
					p.Metadata.Author,
					fmt.Sprintf("%d min", p.ReadingTime),
					strings.Join(p.Metadata.Tags, ", "),
				})
			}
			t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d posts", len(posts))})
			t.Render()
			return nil
		},
	}
}

func newSlugsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "Print every post slug, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			for _, slug := range repo.ListAllIdentifiers() {
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}
}
