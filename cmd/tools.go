package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/weddingflow-assistant/internal/adapters/render/response"
)

func newToolsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the assistant can call",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := app.catalog.List()

			if asJSON {
				encoded, err := json.MarshalIndent(defs, "", "  ")
				if err != nil {
					return fmt.Errorf("encode tools: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return err
			}

			rendered, err := response.RenderCatalog(defs)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
