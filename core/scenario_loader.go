package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

// Wire-format shapes. Kept unexported so we're free to evolve the
// file format without touching the model types.

type scenarioDocument struct {
	Scenarios []scenarioFile `json:"scenarios" yaml:"scenarios"`
}

type scenarioFile struct {
	Name        string           `json:"name" yaml:"name"`
	Comment     string           `json:"comment" yaml:"comment"`
	Wires       []wireFile       `json:"wires" yaml:"wires"`
	Excitations []excitationFile `json:"excitations" yaml:"excitations"`
	Loads       []loadFile       `json:"loads" yaml:"loads"`
	Ground      *groundFile      `json:"ground" yaml:"ground"`
	Sweep       *sweepFile       `json:"sweep" yaml:"sweep"`
	Patterns    []patternFile    `json:"patterns" yaml:"patterns"`
}

type pointFile struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

type wireFile struct {
	Segments    int       `json:"segments" yaml:"segments"`
	Start       pointFile `json:"start" yaml:"start"`
	End         pointFile `json:"end" yaml:"end"`
	RadiusM     float64   `json:"radius_m" yaml:"radius_m"`
	LengthTaper float64   `json:"length_taper" yaml:"length_taper"`
	RadiusTaper float64   `json:"radius_taper" yaml:"radius_taper"`
}

type excitationFile struct {
	Kind    string  `json:"kind" yaml:"kind"` // "voltage" | "current"
	WireTag int     `json:"wire_tag" yaml:"wire_tag"`
	Segment int     `json:"segment" yaml:"segment"`
	Real    float64 `json:"real" yaml:"real"`
	Imag    float64 `json:"imag" yaml:"imag"`
}

type loadFile struct {
	Kind         string    `json:"kind" yaml:"kind"`
	WireTag      int       `json:"wire_tag" yaml:"wire_tag"`
	FirstSegment int       `json:"first_segment" yaml:"first_segment"`
	LastSegment  int       `json:"last_segment" yaml:"last_segment"`
	Params       []float64 `json:"params" yaml:"params"`
}

type groundFile struct {
	Kind                 string  `json:"kind" yaml:"kind"` // "free_space" | "finite" | "perfect" | "sommerfeld"
	RadialWires          int     `json:"radial_wires" yaml:"radial_wires"`
	RelativePermittivity float64 `json:"relative_permittivity" yaml:"relative_permittivity"`
	ConductivitySPerM    float64 `json:"conductivity_s_per_m" yaml:"conductivity_s_per_m"`
}

type sweepFile struct {
	Mode     string  `json:"mode" yaml:"mode"` // "linear" | "log"
	Points   int     `json:"points" yaml:"points"`
	StartMHz float64 `json:"start_mhz" yaml:"start_mhz"`
	StepMHz  float64 `json:"step_mhz" yaml:"step_mhz"`
}

type patternFile struct {
	ThetaSamples  int     `json:"theta_samples" yaml:"theta_samples"`
	PhiSamples    int     `json:"phi_samples" yaml:"phi_samples"`
	ThetaStartDeg float64 `json:"theta_start_deg" yaml:"theta_start_deg"`
	PhiStartDeg   float64 `json:"phi_start_deg" yaml:"phi_start_deg"`
	ThetaStepDeg  float64 `json:"theta_step_deg" yaml:"theta_step_deg"`
	PhiStepDeg    float64 `json:"phi_step_deg" yaml:"phi_step_deg"`
	Normalization string  `json:"normalization" yaml:"normalization"` // "" | "none" | "total_gain"
}

// LoadScenarios reads one or more scenarios from r. The payload is
// either a single scenario object or a {"scenarios": [...]} document,
// in JSON or YAML; JSON is tried first. It fails on empty input, on
// data that parses as neither, and on any scenario without a name.
//
// Only structural checks happen here. Domain validation (segment
// counts, radii, kind codes) stays in the ModelBuilder, which owns
// those rules; re-validating everything in the loader would just give
// the two layers a chance to disagree.
func LoadScenarios(r io.Reader) ([]model.Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("LoadScenarios: read failed: %w", err)
	}
	files, err := parseScenarioPayload(data)
	if err != nil {
		return nil, fmt.Errorf("LoadScenarios: %w", err)
	}
	out := make([]model.Scenario, 0, len(files))
	for i, sf := range files {
		sc, err := sf.toScenario()
		if err != nil {
			return nil, fmt.Errorf("LoadScenarios: scenario[%d]: %w", i, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// LoadScenario reads exactly one scenario from r.
func LoadScenario(r io.Reader) (model.Scenario, error) {
	scs, err := LoadScenarios(r)
	if err != nil {
		return model.Scenario{}, err
	}
	if len(scs) != 1 {
		return model.Scenario{}, fmt.Errorf("LoadScenario: want exactly one scenario, got %d", len(scs))
	}
	return scs[0], nil
}

func parseScenarioPayload(data []byte) ([]scenarioFile, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.New("empty input")
	}
	if files, ok := decodeScenarios(data, json.Unmarshal); ok {
		return files, nil
	}
	if files, ok := decodeScenarios(data, yaml.Unmarshal); ok {
		return files, nil
	}
	return nil, errors.New("payload is neither a JSON nor a YAML scenario")
}

// decodeScenarios tries one codec: first the {"scenarios": [...]}
// document shape, then a single bare scenario object.
func decodeScenarios(data []byte, unmarshal func([]byte, any) error) ([]scenarioFile, bool) {
	var doc scenarioDocument
	if err := unmarshal(data, &doc); err == nil && len(doc.Scenarios) > 0 {
		return doc.Scenarios, true
	}
	var single scenarioFile
	if err := unmarshal(data, &single); err == nil && !single.empty() {
		return []scenarioFile{single}, true
	}
	return nil, false
}

func (sf scenarioFile) empty() bool {
	return sf.Name == "" && len(sf.Wires) == 0 && len(sf.Excitations) == 0 &&
		sf.Ground == nil && sf.Sweep == nil
}

func (sf scenarioFile) toScenario() (model.Scenario, error) {
	if strings.TrimSpace(sf.Name) == "" {
		return model.Scenario{}, errors.New("scenario name is required")
	}
	sc := model.Scenario{Name: sf.Name, Comment: sf.Comment}
	for _, wf := range sf.Wires {
		sc.Wires = append(sc.Wires, model.Wire{
			Segments:    wf.Segments,
			Start:       model.Point{X: wf.Start.X, Y: wf.Start.Y, Z: wf.Start.Z},
			End:         model.Point{X: wf.End.X, Y: wf.End.Y, Z: wf.End.Z},
			RadiusM:     wf.RadiusM,
			LengthTaper: wf.LengthTaper,
			RadiusTaper: wf.RadiusTaper,
		})
	}
	for i, ef := range sf.Excitations {
		kind, err := excitationKindFromString(ef.Kind)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("excitation[%d]: %w", i, err)
		}
		sc.Excitations = append(sc.Excitations, model.Excitation{
			Kind:    kind,
			WireTag: ef.WireTag,
			Segment: ef.Segment,
			Real:    ef.Real,
			Imag:    ef.Imag,
		})
	}
	for i, lf := range sf.Loads {
		kind, err := loadKindFromString(lf.Kind)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("load[%d]: %w", i, err)
		}
		sc.Loads = append(sc.Loads, model.Load{
			Kind:         kind,
			WireTag:      lf.WireTag,
			FirstSegment: lf.FirstSegment,
			LastSegment:  lf.LastSegment,
			Params:       lf.Params,
		})
	}
	if sf.Ground != nil {
		kind, err := groundKindFromString(sf.Ground.Kind)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("ground: %w", err)
		}
		sc.Ground = &model.Ground{
			Kind:                 kind,
			RadialWires:          sf.Ground.RadialWires,
			RelativePermittivity: sf.Ground.RelativePermittivity,
			ConductivitySPerM:    sf.Ground.ConductivitySPerM,
		}
	}
	if sf.Sweep != nil {
		mode, err := sweepModeFromString(sf.Sweep.Mode)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("sweep: %w", err)
		}
		sc.Sweep = &model.FrequencySweep{
			Mode:     mode,
			Points:   sf.Sweep.Points,
			StartMHz: sf.Sweep.StartMHz,
			StepMHz:  sf.Sweep.StepMHz,
		}
	}
	for i, pf := range sf.Patterns {
		norm, err := normalizationFromString(pf.Normalization)
		if err != nil {
			return model.Scenario{}, fmt.Errorf("pattern[%d]: %w", i, err)
		}
		sc.Patterns = append(sc.Patterns, model.RadiationPattern{
			Mode:          model.PatternNormal,
			ThetaSamples:  pf.ThetaSamples,
			PhiSamples:    pf.PhiSamples,
			Normalization: norm,
			ThetaStartDeg: pf.ThetaStartDeg,
			PhiStartDeg:   pf.PhiStartDeg,
			ThetaStepDeg:  pf.ThetaStepDeg,
			PhiStepDeg:    pf.PhiStepDeg,
		})
	}
	return sc, nil
}

// The kind strings accept the empty string as each category's
// conventional default, but an unknown non-empty string is an error
// rather than a silent fallback; a typo in a scenario file should not
// quietly change the physics.

func excitationKindFromString(s string) (model.ExcitationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "voltage":
		return model.ExcitationVoltage, nil
	case "current":
		return model.ExcitationCurrent, nil
	default:
		return 0, fmt.Errorf("unknown excitation kind %q", s)
	}
}

func loadKindFromString(s string) (model.LoadKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "series_rlc":
		return model.LoadSeriesRLC, nil
	case "parallel_rlc":
		return model.LoadParallelRLC, nil
	case "series_rlc_per_metre":
		return model.LoadSeriesRLCPerMetre, nil
	case "parallel_rlc_per_metre":
		return model.LoadParallelRLCPerMetre, nil
	case "impedance":
		return model.LoadImpedance, nil
	case "wire_conductivity":
		return model.LoadWireConductivity, nil
	default:
		return 0, fmt.Errorf("unknown load kind %q", s)
	}
}

func groundKindFromString(s string) (model.GroundKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free_space":
		return model.GroundFreeSpace, nil
	case "finite":
		return model.GroundFinite, nil
	case "perfect":
		return model.GroundPerfect, nil
	case "sommerfeld":
		return model.GroundSommerfeld, nil
	default:
		return 0, fmt.Errorf("unknown ground kind %q", s)
	}
}

func sweepModeFromString(s string) (model.SweepMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return model.SweepLinear, nil
	case "log", "logarithmic":
		return model.SweepLogarithmic, nil
	default:
		return 0, fmt.Errorf("unknown sweep mode %q", s)
	}
}

func normalizationFromString(s string) (model.PatternNormalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return model.NormalizationNone, nil
	case "total_gain":
		return model.NormalizationTotalGain, nil
	default:
		return 0, fmt.Errorf("unknown normalization %q", s)
	}
}
