package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lakewatch/internal/domain"
	"lakewatch/pkg/render"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <query-id>",
		Short: "Run a dashboard query and print its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.client().Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Execution %s: %s\n", result.ExecutionID, colorStatus(result.Status))

			switch result.Status {
			case domain.StatusSucceeded:
				if result.ExecutionTimeMs != nil {
					fmt.Fprintf(out, "  %d rows in %d ms", result.RowCount, *result.ExecutionTimeMs)
					if result.DataScannedBytes != nil {
						fmt.Fprintf(out, ", %s bytes scanned", render.Cell("bytes", strPtr(fmt.Sprintf("%d", *result.DataScannedBytes))))
					}
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, resultTable(result))
			case domain.StatusFailed, domain.StatusCancelled:
				fmt.Fprintln(out, result.Error)
			default:
				if result.Message != "" {
					fmt.Fprintln(out, result.Message)
				}
			}
			return nil
		},
	}
}

func colorStatus(status domain.ExecutionStatus) string {
	switch status {
	case domain.StatusSucceeded:
		return color.GreenString(string(status))
	case domain.StatusFailed, domain.StatusCancelled:
		return color.RedString(string(status))
	default:
		return color.YellowString(string(status))
	}
}

// resultTable renders result rows with the column-heuristic formatter rules.
func resultTable(result *domain.QueryResult) string {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			cells[i] = render.Cell(col, row[col])
		}
		rows = append(rows, cells)
	}
	return render.Table(result.Columns, rows)
}

func strPtr(s string) *string { return &s }
