package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/weddingflow-assistant/internal/adapters/render/response"
	"github.com/bnema/weddingflow-assistant/internal/application"
	"github.com/bnema/weddingflow-assistant/internal/domain"
)

const (
	chatPrompt     = "> "
	resetCommand   = "/reset"
	defaultSession = "default"
)

var quitCommands = map[string]bool{"/quit": true, "/exit": true, "quit": true, "exit": true}

func newChatCmd(app *app) *cobra.Command {
	var companyID string
	var userID string
	var label string
	var plain bool
	var showMeta bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		Long:  "Chat with the assistant. The same --company, --user and --session resume the same conversation. Type /reset to start over and /quit to leave.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity := domain.Identity{CompanyID: strings.TrimSpace(companyID), UserID: strings.TrimSpace(userID)}
			if err := identity.Validate(); err != nil {
				return fmt.Errorf("chat needs --company and --user: %w", err)
			}

			rt, err := app.newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := rt.close(); closeErr != nil {
					app.logger.Warn().Err(closeErr).Msg("close entity store")
				}
			}()

			sessionID := rt.sessions.ResolveSessionID(identity, label)
			if _, err := rt.controller.StartSession(cmd.Context(), identity, sessionID); err != nil {
				return err
			}

			return chatLoop(cmd, app, rt, identity, sessionID, chatOptions{plain: plain, render: response.RenderOptions{ShowMeta: showMeta}})
		},
	}

	cmd.Flags().StringVar(&companyID, "company", app.config.Identity.CompanyID, "Company (tenant) ID")
	cmd.Flags().StringVar(&userID, "user", app.config.Identity.UserID, "User ID")
	cmd.Flags().StringVar(&label, "session", defaultSession, "Conversation label to resume")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the thinking spinner")
	cmd.Flags().BoolVar(&showMeta, "meta", false, "Show tool and action state under each reply")

	return cmd
}

type chatOptions struct {
	plain  bool
	render response.RenderOptions
}

func chatLoop(cmd *cobra.Command, app *app, rt *assistantRuntime, identity domain.Identity, sessionID string, opts chatOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	lang := domain.LanguageEnglish

	for {
		_, _ = fmt.Fprint(out, chatPrompt)
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case quitCommands[strings.ToLower(text)]:
			return nil
		case strings.EqualFold(text, resetCommand):
			if err := rt.controller.EndSession(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
			if _, err := rt.controller.StartSession(ctx, identity, sessionID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "Started a new conversation.")
			continue
		}

		resp, err := handleTurn(ctx, cmd, rt, sessionID, text, lang, opts.plain)
		if err != nil {
			return err
		}
		if resp.Language != "" {
			lang = resp.Language
		}

		rendered, err := app.renderer(resp, opts.render)
		if err != nil {
			return fmt.Errorf("render response: %w", err)
		}
		_, _ = fmt.Fprintln(out, rendered)
	}
}

func handleTurn(ctx context.Context, cmd *cobra.Command, rt *assistantRuntime, sessionID, text string, lang domain.Language, plain bool) (application.AssistantResponse, error) {
	var resp application.AssistantResponse
	work := func(ctx context.Context) error {
		var err error
		resp, err = rt.controller.HandleUserMessage(ctx, sessionID, text)
		return err
	}

	if plain {
		return resp, work(ctx)
	}
	return resp, runThinkingSpinner(ctx, cmd.ErrOrStderr(), lang, work)
}
