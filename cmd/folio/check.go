package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the content and report excluded files",
		Long: `Load every source file and report the ones excluded from the collection:
malformed front matter, missing title or date, and slug collisions.

With --strict, any excluded file makes the command fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.loadRepo(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			warnings := repo.Warnings()
			fmt.Fprintf(w, "%d posts loaded, %d files excluded\n", repo.Len(), len(warnings))
			if len(warnings) == 0 {
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"File", "Kind", "Reason"})
			for _, warn := range warnings {
				t.AppendRow(table.Row{warn.Path, warn.Kind, warn.Reason})
			}
			t.Render()

			if strict {
				return fmt.Errorf("%d files excluded", len(warnings))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any file is excluded")
	return cmd
}
