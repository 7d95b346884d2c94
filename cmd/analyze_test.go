package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanam-labs/plantation-cli/internal/export"
)

func TestParseFormats(t *testing.T) {
	formats, err := parseFormats([]string{"csv", "GeoJSON", "kml"})
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.FormatCSV, export.FormatGeoJSON, export.FormatKML}, formats)
}

func TestParseFormats_Unknown(t *testing.T) {
	_, err := parseFormats([]string{"csv", "dwg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestBuildEstimator_UnknownMode(t *testing.T) {
	cfgCopy := testConfig()
	cfgCopy.Estimator.Mode = "cloud"
	_, err := buildEstimator(cfgCopy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown estimator mode")
}

func TestBuildEstimator_RemoteNeedsKey(t *testing.T) {
	cfgCopy := testConfig()
	cfgCopy.Estimator.Mode = "remote"
	_, err := buildEstimator(cfgCopy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tambo.key")
}

func TestBuildEstimator_Local(t *testing.T) {
	est, err := buildEstimator(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, est)
}
