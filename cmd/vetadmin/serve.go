package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vet-clinic-admin/internal/docs"
	"vet-clinic-admin/internal/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la consola HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

func runServer(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := ":" + a.Config.Port
	docs.SwaggerInfo.Host = "localhost" + addr

	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(a),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2*a.Config.APITimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("starting server", map[string]any{
			"addr":     addr,
			"remote":   a.Config.APIBaseURL,
			"store":    a.Config.Store,
			"strategy": a.Config.MutationStrategy,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
