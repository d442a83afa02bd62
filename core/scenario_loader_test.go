package core

import (
	"math"
	"strings"
	"testing"

	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

func TestLoadScenarioFromJSON(t *testing.T) {
	payload := `
{
  "name": "half-wave dipole",
  "comment": "centre-fed, free space",
  "wires": [
    {
      "segments": 7,
      "start": { "z": -0.25 },
      "end":   { "z": 0.25 },
      "radius_m": 0.001
    }
  ],
  "excitations": [
    { "kind": "voltage", "wire_tag": 1, "segment": 4, "real": 1.0 }
  ],
  "sweep": { "mode": "linear", "points": 3, "start_mhz": 140, "step_mhz": 4 },
  "patterns": [
    { "theta_samples": 37, "phi_samples": 73, "theta_step_deg": 5, "phi_step_deg": 5 }
  ]
}`
	sc, err := LoadScenario(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}

	if sc.Name != "half-wave dipole" {
		t.Fatalf("Name = %q", sc.Name)
	}
	if len(sc.Wires) != 1 || sc.Wires[0].Segments != 7 {
		t.Fatalf("wires = %+v", sc.Wires)
	}
	if math.Abs(sc.Wires[0].Start.Z+0.25) > 1e-12 || math.Abs(sc.Wires[0].End.Z-0.25) > 1e-12 {
		t.Fatalf("wire endpoints = %+v .. %+v", sc.Wires[0].Start, sc.Wires[0].End)
	}
	if len(sc.Excitations) != 1 || sc.Excitations[0].Kind != model.ExcitationVoltage {
		t.Fatalf("excitations = %+v", sc.Excitations)
	}
	if sc.Sweep == nil || sc.Sweep.Points != 3 || sc.Sweep.Mode != model.SweepLinear {
		t.Fatalf("sweep = %+v", sc.Sweep)
	}
	if len(sc.Patterns) != 1 || sc.Patterns[0].Mode != model.PatternNormal {
		t.Fatalf("patterns = %+v", sc.Patterns)
	}
}

func TestLoadScenariosFromYAMLDocument(t *testing.T) {
	payload := `
scenarios:
  - name: dipole
    wires:
      - segments: 7
        start: { z: -0.25 }
        end: { z: 0.25 }
        radius_m: 0.001
    excitations:
      - wire_tag: 1
        segment: 4
        real: 1.0
  - name: quarter-wave monopole
    ground:
      kind: perfect
    wires:
      - segments: 5
        end: { z: 0.25 }
        radius_m: 0.001
    loads:
      - kind: wire_conductivity
        wire_tag: 1
        params: [5.8e+7]
`
	scs, err := LoadScenarios(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("LoadScenarios: %v", err)
	}
	if len(scs) != 2 {
		t.Fatalf("got %d scenarios, want 2", len(scs))
	}
	if scs[0].Name != "dipole" || scs[1].Name != "quarter-wave monopole" {
		t.Fatalf("names = %q, %q", scs[0].Name, scs[1].Name)
	}
	if scs[1].Ground == nil || scs[1].Ground.Kind != model.GroundPerfect {
		t.Fatalf("monopole ground = %+v", scs[1].Ground)
	}
	if len(scs[1].Loads) != 1 || scs[1].Loads[0].Kind != model.LoadWireConductivity {
		t.Fatalf("monopole loads = %+v", scs[1].Loads)
	}
}

func TestLoaderDefaultsEmptyKinds(t *testing.T) {
	payload := `
{
  "name": "defaults",
  "wires": [{ "segments": 3, "end": { "z": 1 }, "radius_m": 0.001 }],
  "excitations": [{ "wire_tag": 1, "segment": 2, "real": 1.0 }],
  "ground": {},
  "sweep": { "points": 1, "start_mhz": 300 }
}`
	sc, err := LoadScenario(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Excitations[0].Kind != model.ExcitationVoltage {
		t.Fatalf("default excitation kind = %v", sc.Excitations[0].Kind)
	}
	if sc.Ground.Kind != model.GroundFreeSpace {
		t.Fatalf("default ground kind = %v", sc.Ground.Kind)
	}
	if sc.Sweep.Mode != model.SweepLinear {
		t.Fatalf("default sweep mode = %v", sc.Sweep.Mode)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"empty input", "   \n"},
		{"unparseable payload", "{{{{"},
		{"missing name", `{"wires": [{"segments": 3, "end": {"z": 1}, "radius_m": 0.001}]}`},
		{"unknown excitation kind", `{"name": "x", "excitations": [{"kind": "laser", "wire_tag": 1, "segment": 1}]}`},
		{"unknown ground kind", `{"name": "x", "wires": [{"segments": 1, "end": {"z": 1}, "radius_m": 0.001}], "ground": {"kind": "swamp"}}`},
		{"unknown sweep mode", `{"name": "x", "wires": [{"segments": 1, "end": {"z": 1}, "radius_m": 0.001}], "sweep": {"mode": "random", "points": 1, "start_mhz": 1}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadScenario(strings.NewReader(tc.payload)); err == nil {
				t.Fatalf("LoadScenario accepted %q", tc.payload)
			}
		})
	}
}

func TestLoadScenarioRejectsMultiScenarioDocument(t *testing.T) {
	payload := `{"scenarios": [{"name": "a", "wires": [{"segments": 1, "end": {"z": 1}, "radius_m": 0.001}]}, {"name": "b", "wires": [{"segments": 1, "end": {"z": 1}, "radius_m": 0.001}]}]}`
	if _, err := LoadScenario(strings.NewReader(payload)); err == nil {
		t.Fatalf("LoadScenario accepted a two-scenario document")
	}
}
