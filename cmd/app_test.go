package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanam-labs/plantation-cli/internal/config"
	"github.com/vanam-labs/plantation-cli/internal/estimator"
	"github.com/vanam-labs/plantation-cli/internal/suitability"
)

// testConfig returns a config with usable defaults for wiring tests.
func testConfig() *config.Config {
	return &config.Config{
		Estimator: config.EstimatorConfig{
			Mode:  "local",
			Local: estimator.DefaultLocalConfig(),
		},
		Suitability: config.SuitabilityConfig{
			Weights: suitability.DefaultWeights(),
		},
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	st, err := openStore(context.Background(), config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, st.Close())
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.StoreConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}
