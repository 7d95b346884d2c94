package species

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_ExcellentConditions(t *testing.T) {
	table := DefaultTable()
	got := table.Recommend(0.8, 0.7, 0.8)

	// All four rules match; excellent species come first, hardy extras last.
	assert.Equal(t, "Neem (Azadirachta indica)", got[0])
	assert.Contains(t, got, "Bamboo")
	assert.Contains(t, got, "Date Palm")

	// Deduplication: Babool appears in three rules but only once in output.
	count := 0
	for _, sp := range got {
		if sp == "Babool (Acacia nilotica)" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRecommend_PoorConditions(t *testing.T) {
	table := DefaultTable()
	got := table.Recommend(0.1, 0.1, 0.1)

	assert.Equal(t, []string{
		"Babool (Acacia nilotica)",
		"Khejri (Prosopis cineraria)",
		"Date Palm",
	}, got)
}

func TestRecommend_ModerateConditions(t *testing.T) {
	table := DefaultTable()
	got := table.Recommend(0.4, 0.35, 0.2)

	// Moderate and hardy match; good does not (ndvi <= 0.5).
	assert.Contains(t, got, "Dhak (Butea monosperma)")
	assert.Contains(t, got, "Khair (Acacia catechu)")
	assert.NotContains(t, got, "Ber (Ziziphus mauritiana)")
	assert.NotContains(t, got, "Neem (Azadirachta indica)")
}

func TestRecommend_Deterministic(t *testing.T) {
	table := DefaultTable()
	first := table.Recommend(0.6, 0.5, 0.6)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, table.Recommend(0.6, 0.5, 0.6))
	}
}

func TestRecommend_ZeroFactorStillMatchesCatchAll(t *testing.T) {
	table := DefaultTable()

	// A factor clamped to exactly zero must still reach the all-zero rule.
	assert.Equal(t, []string{
		"Babool (Acacia nilotica)",
		"Khejri (Prosopis cineraria)",
		"Date Palm",
	}, table.Recommend(0.8, 0.0, 0.0))

	assert.NotEmpty(t, table.Recommend(0, 0, 0))
}

func TestRecommend_ThresholdsAreStrict(t *testing.T) {
	table := NewTable([]Rule{
		{Name: "only", MinNDVI: 0.5, MinWater: 0.5, MinSoil: 0.5, Species: []string{"X"}},
	})

	assert.Empty(t, table.Recommend(0.5, 0.6, 0.6), "exact threshold should not match")
	assert.Equal(t, []string{"X"}, table.Recommend(0.51, 0.6, 0.6))
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	doc := `rules:
  - name: wet
    min_ndvi: 0.2
    min_water: 0.6
    min_soil: 0.1
    species:
      - "river tamarind"
      - "jamun (Syzygium cumini)"
  - name: fallback
    species:
      - "date palm"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	got := table.Recommend(0.3, 0.7, 0.2)
	assert.Equal(t, []string{"River Tamarind", "Jamun (Syzygium cumini)", "Date Palm"}, got)
}

func TestLoadTable_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTable(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  - name: x\n    min_ndvi: 2.0\n    species: [a]\n"), 0o644))
	_, err = LoadTable(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("rules: []\n"), 0o644))
	_, err = LoadTable(empty)
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Neem (Azadirachta indica)", NormalizeName("neem (Azadirachta indica)"))
	assert.Equal(t, "Date Palm", NormalizeName("  date palm "))
	assert.Equal(t, "", NormalizeName(""))
}
