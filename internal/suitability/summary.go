package suitability

import (
	"github.com/montanaflynn/stats"
	"github.com/rotisserie/eris"

	"github.com/vanam-labs/plantation-cli/internal/model"
)

// Interpretation bands for the mean suitability score.
const (
	bandExcellent = 70.0
	bandGood      = 50.0
)

// Summarize aggregates the suitability scores of the selected points.
// An empty point set yields a zero summary with an explanatory interpretation.
func Summarize(points []model.PlantationPoint) (model.ScoreSummary, error) {
	if len(points) == 0 {
		return model.ScoreSummary{Interpretation: "no candidate cells above threshold"}, nil
	}

	scores := make([]float64, len(points))
	for i, p := range points {
		scores[i] = p.Score
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return model.ScoreSummary{}, eris.Wrap(err, "suitability: mean")
	}
	median, err := stats.Median(scores)
	if err != nil {
		return model.ScoreSummary{}, eris.Wrap(err, "suitability: median")
	}
	minScore, err := stats.Min(scores)
	if err != nil {
		return model.ScoreSummary{}, eris.Wrap(err, "suitability: min")
	}
	maxScore, err := stats.Max(scores)
	if err != nil {
		return model.ScoreSummary{}, eris.Wrap(err, "suitability: max")
	}
	stdDev, err := stats.StandardDeviation(scores)
	if err != nil {
		return model.ScoreSummary{}, eris.Wrap(err, "suitability: stddev")
	}

	return model.ScoreSummary{
		Mean:           mean,
		Median:         median,
		Min:            minScore,
		Max:            maxScore,
		StdDev:         stdDev,
		Interpretation: interpret(mean),
	}, nil
}

func interpret(mean float64) string {
	switch {
	case mean >= bandExcellent:
		return "excellent site for plantation"
	case mean >= bandGood:
		return "good site with some constraints"
	default:
		return "challenging site, careful planning needed"
	}
}
