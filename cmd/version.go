package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/weddingflow-assistant/internal/version"
)

func newVersionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text := version.Version
			if verbose {
				text = version.Detailed()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include commit and Go runtime")

	return cmd
}
