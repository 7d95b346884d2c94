package estimator

import (
	"context"

	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/envmap"
	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/internal/terrain"
)

// LocalConfig tunes the local estimator.
type LocalConfig struct {
	Rows int `yaml:"rows" mapstructure:"rows"`
	Cols int `yaml:"cols" mapstructure:"cols"`

	Sampler envmap.SamplerParams `yaml:"sampler" mapstructure:"sampler"`

	// ClassifierNoise is the per-block jitter applied to class priors.
	ClassifierNoise float64 `yaml:"classifier_noise" mapstructure:"classifier_noise"`

	// FallbackToDemo switches to demo sampling when an uploaded image cannot
	// be decoded, instead of failing the analysis.
	FallbackToDemo bool `yaml:"fallback_to_demo" mapstructure:"fallback_to_demo"`
}

// DefaultLocalConfig returns the standard local estimator settings.
func DefaultLocalConfig() LocalConfig {
	return LocalConfig{
		Rows:            DefaultRows,
		Cols:            DefaultCols,
		Sampler:         envmap.DefaultSamplerParams(),
		ClassifierNoise: 0.05,
		FallbackToDemo:  true,
	}
}

// Local estimates environmental factors without any network dependency.
type Local struct {
	cfg LocalConfig
}

// NewLocal creates a local estimator, filling zero dimensions with defaults.
func NewLocal(cfg LocalConfig) *Local {
	if cfg.Rows <= 0 {
		cfg.Rows = DefaultRows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = DefaultCols
	}
	if cfg.Sampler == (envmap.SamplerParams{}) {
		cfg.Sampler = envmap.DefaultSamplerParams()
	}
	return &Local{cfg: cfg}
}

// Estimate classifies the request's image when one is given, otherwise
// samples demo values.
func (l *Local) Estimate(ctx context.Context, req model.AnalysisRequest) (*Estimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.ImagePath != "" {
		est, err := l.classify(req)
		if err == nil {
			return est, nil
		}
		if !l.cfg.FallbackToDemo {
			return nil, err
		}
		zap.L().Warn("image classification failed, falling back to demo sampling",
			zap.String("image", req.ImagePath),
			zap.Error(err),
		)
		est, demoErr := l.sample(req)
		if demoErr != nil {
			return nil, demoErr
		}
		est.Warning = "could not read the provided image; used demo estimation instead"
		return est, nil
	}

	return l.sample(req)
}

func (l *Local) sample(req model.AnalysisRequest) (*Estimate, error) {
	sampler := envmap.NewSampler(l.cfg.Sampler, req.Seed)
	m, err := sampler.Sample(req.Latitude, req.Longitude, req.RadiusM, l.cfg.Rows, l.cfg.Cols)
	if err != nil {
		return nil, err
	}
	return &Estimate{Map: m, Source: SourceDemo}, nil
}

func (l *Local) classify(req model.AnalysisRequest) (*Estimate, error) {
	opts := []terrain.Option{terrain.WithNoise(l.cfg.ClassifierNoise)}
	if req.Seed != 0 {
		opts = append(opts, terrain.WithSeed(req.Seed))
	}
	classifier := terrain.NewClassifier(opts...)

	m, stats, err := classifier.ClassifyFile(req.ImagePath, req.Latitude, req.Longitude, req.RadiusM)
	if err != nil {
		return nil, err
	}
	zap.L().Info("classified site imagery",
		zap.String("image", req.ImagePath),
		zap.Float64("forest_share", stats[terrain.Forest]),
		zap.Float64("urban_share", stats[terrain.Urban]),
	)
	return &Estimate{Map: m, Source: SourceImage}, nil
}
