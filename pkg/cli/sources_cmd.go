package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lakewatch/pkg/render"
)

func newSourcesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List enabled Security Lake log sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources, err := opts.client().Sources(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"sources": sources})
			}

			if len(sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No log sources enabled.")
				return nil
			}

			rows := make([][]string, 0, len(sources))
			for _, s := range sources {
				rows = append(rows, []string{s.AccountID, s.Region, s.SourceName, s.SourceVersion})
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Table(
				[]string{"account", "region", "source", "version"}, rows))
			return nil
		},
	}
}
