package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/timescript/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP compile server",
	Long:  `Starts a stateless HTTP server exposing /compile, /validate, /healthz, /info and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		addr := app.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		handler := httpAdapter.NewHandler(app.Engine,
			httpAdapter.WithMetricsHandler(app.Metrics.Handler()),
			httpAdapter.WithLogger(app.Logger),
		)

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			app.Logger.Info("Starting TimeScript Server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			app.Logger.Info("Start shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				app.Logger.Error("Graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			app.Logger.Info("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides server.addr)")
}
