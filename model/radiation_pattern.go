package model

// PatternMode selects the far-field calculation mode. The numeric
// values are the RP card I1 codes.
type PatternMode int

const (
	PatternNormal                    PatternMode = iota // space wave over a theta/phi grid
	PatternSurfaceWave                                  // surface wave added, cylindrical coordinates
	PatternLinearCliff                                  // linear cliff between two media
	PatternCircularCliff                                // circular cliff centred below the antenna
	PatternRadialScreen                                 // radial wire ground screen
	PatternRadialScreenLinearCliff                      // radial screen plus linear cliff
	PatternRadialScreenCircularCliff                    // radial screen plus circular cliff
)

// PatternNormalization selects the gain normalization applied to the
// requested pattern.
type PatternNormalization int

const (
	NormalizationNone      PatternNormalization = 0
	NormalizationTotalGain PatternNormalization = 5 // total gain normalized to 0 dB at the peak
)

// RadiationPattern requests far-field gain samples over a theta/phi
// grid after each frequency step.
type RadiationPattern struct {
	Mode PatternMode `json:"Mode"`

	ThetaSamples int `json:"ThetaSamples"`
	PhiSamples   int `json:"PhiSamples"`

	// OutputFormat is the RP output-format code; 0 (major/minor axis
	// gains) is the recommended value and the only one this layer's
	// own tooling interprets.
	OutputFormat  int                  `json:"OutputFormat,omitempty"`
	Normalization PatternNormalization `json:"Normalization,omitempty"`

	// GainType selects power (0) or directive (1) gain; Averaging
	// requests average-gain computation. Both travel in the float block
	// of the request.
	GainType  float64 `json:"GainType,omitempty"`
	Averaging float64 `json:"Averaging,omitempty"`

	ThetaStartDeg float64 `json:"ThetaStartDeg,omitempty"`
	PhiStartDeg   float64 `json:"PhiStartDeg,omitempty"`
	ThetaStepDeg  float64 `json:"ThetaStepDeg"`
	PhiStepDeg    float64 `json:"PhiStepDeg"`

	// RadialDistanceM is the distance from the origin at which field
	// values are computed, in metres. 0 requests gain rather than field.
	RadialDistanceM float64 `json:"RadialDistanceM,omitempty"`
}
