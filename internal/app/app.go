// Package app arma las dependencias de la consola a partir de la config.
// Lo usan tanto el servidor HTTP como los comandos de la CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vet-clinic-admin/internal/adapters/storage/file"
	"vet-clinic-admin/internal/adapters/storage/memory"
	pg "vet-clinic-admin/internal/adapters/storage/postgres"
	"vet-clinic-admin/internal/adapters/vetapi"
	"vet-clinic-admin/internal/config"
	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/domain/console"
	"vet-clinic-admin/internal/domain/images"
	"vet-clinic-admin/internal/domain/mutations"
	"vet-clinic-admin/internal/domain/session"
	"vet-clinic-admin/internal/domain/views"
	"vet-clinic-admin/internal/platform/format"
	"vet-clinic-admin/internal/platform/httpclient"
	"vet-clinic-admin/internal/platform/logger"
	"vet-clinic-admin/internal/platform/report"
	"vet-clinic-admin/internal/ports/kv"
)

type App struct {
	Config *config.Config
	Log    logger.Logger

	Store     kv.Store
	Remote    *vetapi.Client
	Sessions  *session.Service
	Images    *images.Cache
	Workspace *console.Workspace

	db *sql.DB
}

// Options permite inyectar piezas ya construidas (tests).
type Options struct {
	Store kv.Store
	HTTP  *httpclient.Client
}

func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	a := &App{Config: cfg, Log: log}

	store := opts.Store
	if store == nil {
		var err error
		if store, err = a.openStore(ctx); err != nil {
			return nil, err
		}
	}
	a.Store = store

	hc := opts.HTTP
	if hc == nil {
		hc = httpclient.New(cfg.APITimeout)
		if cfg.APIInsecureTLS {
			hc = httpclient.NewWithTransport(cfg.APITimeout, httpclient.InsecureTransport())
			log.Warn("tls verification disabled for remote api", nil)
		}
	}
	hc.BaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	table := vetapi.DefaultTable()
	if cfg.EndpointsFile != "" {
		t, err := vetapi.LoadTable(cfg.EndpointsFile)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("endpoints: %w", err)
		}
		table = t
	}

	strategy, err := mutations.ParseStrategy(cfg.MutationStrategy)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Remote = vetapi.New(hc, table, log)
	a.Sessions = session.NewService(a.Remote, store, log)
	a.Images = images.NewCache(store, cfg.ImageMaxBytes, log)
	a.Workspace = console.NewWorkspace(console.Options{
		Repos:    clinic.NewRepositories(a.Remote, log),
		Images:   a.Images,
		Builder:  views.NewBuilder(format.New(cfg.Locale, cfg.CurrencySymbol)),
		Exporter: report.NewExporter(cfg.AppName),
		Strategy: strategy,
		Log:      log,
	})
	return a, nil
}

func (a *App) openStore(ctx context.Context) (kv.Store, error) {
	switch a.Config.Store {
	case "memory":
		return memory.NewKVStore(), nil
	case "file":
		s, err := file.NewKVStore(a.Config.StateFile)
		if err != nil {
			return nil, fmt.Errorf("state file: %w", err)
		}
		return s, nil
	case "postgres":
		db, err := pg.Open(a.Config.DBDSN)
		if err != nil {
			return nil, err
		}
		s := pg.NewKVStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q", a.Config.Store)
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
