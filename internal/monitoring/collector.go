package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/internal/store"
)

// Snapshot holds a point-in-time view of run history within a lookback window.
type Snapshot struct {
	RunsTotal    int     `json:"runs_total"`
	RunsComplete int     `json:"runs_complete"`
	RunsFailed   int     `json:"runs_failed"`
	RunsQueued   int     `json:"runs_queued"`
	FailRate     float64 `json:"fail_rate"`

	// Averages over completed runs with results.
	AvgMeanScore float64 `json:"avg_mean_score"`
	AvgPoints    float64 `json:"avg_points"`

	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers snapshots from the run store.
type Collector struct {
	store store.Store
}

// NewCollector creates a metrics collector over the given store.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect summarizes runs created within the lookback window.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*Snapshot, error) {
	snap := &Snapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   time.Now().UTC(),
	}
	cutoff := snap.CollectedAt.Add(-time.Duration(lookbackHours) * time.Hour)

	runs, err := c.store.ListRuns(ctx, store.RunFilter{Limit: 10000})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list runs")
	}

	var totalScore, totalPoints float64
	var scoredRuns int
	for _, r := range runs {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		snap.RunsTotal++
		switch r.Status {
		case model.RunStatusComplete:
			snap.RunsComplete++
		case model.RunStatusFailed:
			snap.RunsFailed++
		case model.RunStatusQueued:
			snap.RunsQueued++
		}
		if r.Result != nil && len(r.Result.Points) > 0 {
			totalScore += r.Result.Scores.Mean
			totalPoints += float64(len(r.Result.Points))
			scoredRuns++
		}
	}

	if finished := snap.RunsComplete + snap.RunsFailed; finished > 0 {
		snap.FailRate = float64(snap.RunsFailed) / float64(finished)
	}
	if scoredRuns > 0 {
		snap.AvgMeanScore = totalScore / float64(scoredRuns)
		snap.AvgPoints = totalPoints / float64(scoredRuns)
	}
	return snap, nil
}
