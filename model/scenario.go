package model

// Scenario bundles one complete antenna description: everything needed
// to assemble and execute a single simulation model. It is the unit
// stored in the scenario catalog and parsed by the scenario loader.
//
// Ground and Sweep are pointers so that "not configured" is
// distinguishable from a zero-valued record.
type Scenario struct {
	Name    string `json:"Name"`
	Comment string `json:"Comment,omitempty"`

	Wires       []Wire       `json:"Wires"`
	Excitations []Excitation `json:"Excitations"`
	Loads       []Load       `json:"Loads,omitempty"`

	Ground *Ground         `json:"Ground,omitempty"`
	Sweep  *FrequencySweep `json:"Sweep,omitempty"`

	Patterns []RadiationPattern `json:"Patterns,omitempty"`
}

// TotalSegments returns the summed segment count over all wires.
func (s *Scenario) TotalSegments() int {
	total := 0
	for _, w := range s.Wires {
		total += w.Segments
	}
	return total
}
