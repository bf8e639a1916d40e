// Package cli implements the lakewatch command-line client.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]interface{}{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// options holds the resolved persistent flags shared by all commands.
type options struct {
	host   string
	output string
}

func (o *options) client() *Client {
	return NewClient(o.host)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "lakewatch",
		Short:         "Security Lake dashboard CLI",
		Long:          "Command-line client for the Security Lake dashboard API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Precedence: flag > env > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("LAKEWATCH_HOST"); v != "" {
					opts.host = v
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.host, "host", "http://localhost:8080", "API host URL")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(
		newStatusCmd(opts),
		newSourcesCmd(opts),
		newTablesCmd(opts),
		newQueriesCmd(opts),
		newRunCmd(opts),
	)

	return rootCmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
