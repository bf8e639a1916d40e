package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show Security Lake configuration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := opts.client().Status(cmd.Context())
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), status)
			}

			out := cmd.OutOrStdout()
			if !status.Enabled {
				fmt.Fprintf(out, "Security Lake: %s\n", color.RedString("not configured"))
				if status.Message != "" {
					fmt.Fprintln(out, status.Message)
				}
				return nil
			}

			fmt.Fprintf(out, "Security Lake: %s\n", color.GreenString("enabled"))
			fmt.Fprintf(out, "  Create status:  %s\n", status.CreateStatus)
			fmt.Fprintf(out, "  Region:         %s\n", status.Region)
			if status.S3BucketArn != "" {
				fmt.Fprintf(out, "  S3 bucket:      %s\n", status.S3BucketArn)
			}
			if status.RetentionDays != nil {
				fmt.Fprintf(out, "  Retention days: %d\n", *status.RetentionDays)
			}
			fmt.Fprintf(out, "  Encryption:     %s\n", status.EncryptionType)
			return nil
		},
	}
}
