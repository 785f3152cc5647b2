package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/weddingflow-assistant/internal/adapters/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := app.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := rt.close(); closeErr != nil {
					app.logger.Warn().Err(closeErr).Msg("close entity store")
				}
			}()

			listener, err := net.Listen("tcp", listen)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", listen, err)
			}

			server := &http.Server{
				Handler:           httpapi.NewRouter(rt.controller, app.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", listener.Addr())
			app.logger.Info().Str("addr", listener.Addr().String()).Str("store", app.config.Store.Driver).Msg("server started")

			return serveUntilDone(ctx, server, listener)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", app.config.Server.Listen, "Address to listen on")

	return cmd
}

func serveUntilDone(ctx context.Context, server *http.Server, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
