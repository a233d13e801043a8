// Package cliopt resolves the global flags once per command into the pieces
// every command needs: the configuration, a logger and an opened store.
//
// It is separate from internal/cli so per-command code can use it without
// importing the root command.
package cliopt

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/nonibytes/mangiato/internal/config"
	"github.com/nonibytes/mangiato/internal/logging"
	"github.com/nonibytes/mangiato/internal/nutrition"
	"github.com/nonibytes/mangiato/mangiato"
	"github.com/nonibytes/mangiato/mangiato/storage"
	"github.com/nonibytes/mangiato/mangiato/storage/postgres"
	"github.com/nonibytes/mangiato/mangiato/storage/sqlite"
)

// GlobalOptions is the resolved configuration plus the logger built from it.
type GlobalOptions struct {
	Config config.Config
	Logger *slog.Logger
}

// FromFlags loads the configuration with fs overriding the other sources and
// builds a logger writing to logOut.
func FromFlags(fs *pflag.FlagSet, logOut io.Writer) (GlobalOptions, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return GlobalOptions{}, err
	}
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return GlobalOptions{}, err
	}
	return GlobalOptions{Config: cfg, Logger: logger}, nil
}

// Adapter returns the storage adapter for the configured backend.
func (g GlobalOptions) Adapter() storage.Adapter {
	switch g.Config.Backend {
	case "postgres":
		return postgres.New(g.Config.DB, g.Config.Schema)
	default:
		return sqlite.NewWithDriver(g.Config.DB, g.Config.SQLiteDriver)
	}
}

// StoreOptions returns store options with the nutrition estimator attached
// when it is enabled.
func (g GlobalOptions) StoreOptions() (mangiato.Options, error) {
	opts := mangiato.DefaultOptions()
	opts.Logger = g.Logger
	opts.DefaultMaxCalories = g.Config.Defaults.MaxCalories

	if g.Config.Nutrition.Enabled {
		n := g.Config.Nutrition
		client, err := nutrition.New(nutrition.Config{
			BaseURL: n.BaseURL,
			AppID:   n.AppID,
			AppKey:  n.AppKey,
			Timeout: n.Timeout,
			RPS:     n.RPS,
			Logger:  g.Logger,
		})
		if err != nil {
			return mangiato.Options{}, fmt.Errorf("nutrition client: %w", err)
		}
		opts.Estimator = client
	}
	return opts, nil
}

// OpenStore opens the configured store. With create set the tables are
// created first when they are missing.
func (g GlobalOptions) OpenStore(ctx context.Context, create bool) (*mangiato.Store, error) {
	opts, err := g.StoreOptions()
	if err != nil {
		return nil, err
	}
	adapter := g.Adapter()
	if create {
		return mangiato.Create(ctx, adapter, opts)
	}
	return mangiato.Open(ctx, adapter, opts)
}
