package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lakewatch/pkg/render"
)

func newTablesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List Security Lake Glue tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listing, err := opts.client().Tables(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), listing)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", listing.Database)
			if listing.Message != "" {
				fmt.Fprintln(out, listing.Message)
			}
			if len(listing.Tables) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(listing.Tables))
			for _, t := range listing.Tables {
				created := render.Null
				if t.CreateTime != nil {
					created = *t.CreateTime
				}
				rows = append(rows, []string{t.Name, t.TableType, created})
			}
			fmt.Fprint(out, render.Table([]string{"name", "type", "created"}, rows))
			return nil
		},
	}
}
