package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/config"
	"github.com/vanam-labs/plantation-cli/internal/estimator"
	"github.com/vanam-labs/plantation-cli/internal/planner"
	"github.com/vanam-labs/plantation-cli/internal/species"
	"github.com/vanam-labs/plantation-cli/internal/store"
	"github.com/vanam-labs/plantation-cli/pkg/tambo"
)

// appEnv bundles the wired subsystems a command needs.
type appEnv struct {
	Planner *planner.Planner
	Store   store.Store
	Table   *species.Table
}

// Close releases held resources.
func (e *appEnv) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("closing store", zap.Error(err))
		}
	}
}

// initApp builds the planner and opens the run store from config.
func initApp(ctx context.Context) (*appEnv, error) {
	table, err := loadSpeciesTable()
	if err != nil {
		return nil, err
	}

	est, err := buildEstimator(cfg)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return &appEnv{
		Planner: planner.New(est, cfg.Suitability.Weights, cfg.Suitability.JitterAmplitude, table, cfg.Optimizer),
		Store:   st,
		Table:   table,
	}, nil
}

func loadSpeciesTable() (*species.Table, error) {
	if cfg.Species.RulesPath == "" {
		return species.DefaultTable(), nil
	}
	return species.LoadTable(cfg.Species.RulesPath)
}

func buildEstimator(cfg *config.Config) (estimator.Estimator, error) {
	local := estimator.NewLocal(cfg.Estimator.Local)

	switch cfg.Estimator.Mode {
	case "", "local":
		return local, nil
	case "remote":
		if cfg.Tambo.Key == "" {
			return nil, eris.New("estimator mode is remote but tambo.key is not set")
		}
		client := tambo.NewClient(cfg.Tambo.Key,
			tambo.WithBaseURL(cfg.Tambo.BaseURL),
			tambo.WithRateLimit(cfg.Tambo.RateLimit),
		)
		return estimator.NewRemote(client, local), nil
	default:
		return nil, eris.Errorf("unknown estimator mode %q (expected local or remote)", cfg.Estimator.Mode)
	}
}

func openStore(ctx context.Context, sc config.StoreConfig) (store.Store, error) {
	switch sc.Driver {
	case "", "sqlite":
		return store.NewSQLite(sc.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, sc.DatabaseURL, sc.Pool)
	default:
		return nil, eris.Errorf("unknown store driver %q (expected sqlite or postgres)", sc.Driver)
	}
}
