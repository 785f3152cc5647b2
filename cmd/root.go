package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wf",
		Short:         "WeddingFlow assistant (wf): plan weddings in plain language",
		Long:          "wf drives the WeddingFlow planning assistant: chat with it from the terminal, serve it over HTTP, and inspect the tools it can call. Changes are always previewed and only run after you confirm.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newServeCmd(app),
		newToolsCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
