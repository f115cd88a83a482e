// @title Vet Clinic Admin Console
// @version 1.0
// @description Consola de administración de la clínica veterinaria sobre la API remota.
// @BasePath /
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vet-clinic-admin/internal/app"
	"vet-clinic-admin/internal/config"
	"vet-clinic-admin/internal/platform/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vetadmin",
		Short:         "Consola de administración de la clínica veterinaria",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carga config, logger y dependencias. El caller cierra el App.
func bootstrap(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    os.Stderr,
	})
	return app.New(ctx, cfg, log, app.Options{})
}
