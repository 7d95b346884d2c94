package tambo

// AnalyzeRequest is the payload for a remote site analysis.
type AnalyzeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   float64 `json:"radius_m"`

	// ImagePNG optionally carries satellite imagery for the site, base64
	// encoded by the JSON marshaller.
	ImagePNG []byte `json:"image_png,omitempty"`
}

// Environmental summarizes the factors the service derived for the site.
type Environmental struct {
	NDVI  float64 `json:"ndvi"`
	Water float64 `json:"water"`
	Soil  float64 `json:"soil"`
}

// AnalyzeResponse is the remote analysis result.
type AnalyzeResponse struct {
	// SuitabilityGrid holds per-cell scores in [0,100], row-major with the
	// first row at the northern edge of the site.
	SuitabilityGrid [][]float64 `json:"suitability_grid"`

	RecommendedSpecies []string      `json:"recommended_species"`
	Environmental      Environmental `json:"environmental"`

	// Confidence is the service's self-reported confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
