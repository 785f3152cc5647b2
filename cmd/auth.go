package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the language model API key",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var secretKey string
	var secretValue string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key in the secret store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			value := strings.TrimSpace(secretValue)
			if value == "" {
				return fmt.Errorf("secret value is empty")
			}
			if err := app.secrets.Put(cmd.Context(), secretKey, value); err != nil {
				return fmt.Errorf("store API key: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", secretKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", app.config.LLM.APIKeyRef, "Secret-store key")
	cmd.Flags().StringVar(&secretValue, "secret-value", "", "Secret value")
	_ = cmd.MarkFlagRequired("secret-value")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var secretKey string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secrets.Delete(cmd.Context(), secretKey); err != nil {
				return fmt.Errorf("remove API key: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", secretKey)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", app.config.LLM.APIKeyRef, "Secret-store key")

	return cmd
}
