package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lakewatch/pkg/render"
)

func newQueriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "queries",
		Short: "List available dashboard queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			queries, err := opts.client().Queries(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"queries": queries})
			}

			rows := make([][]string, 0, len(queries))
			for _, q := range queries {
				rows = append(rows, []string{q.ID, q.Name, q.Description})
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Table([]string{"id", "name", "description"}, rows))
			return nil
		},
	}
}
