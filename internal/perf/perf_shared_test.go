//go:build perf || perf_large

package perf

import (
	"context"
	"fmt"
	"testing"

	"github.com/rogercaminal/nec2-antenna-simulator/core"
	"github.com/rogercaminal/nec2-antenna-simulator/kb"
	"github.com/rogercaminal/nec2-antenna-simulator/metrics"
	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

type perfConfig struct {
	Wires           int
	SegmentsPerWire int
	SweepPoints     int
	Scenarios       int
}

func benchmarkTranslate(b *testing.B, cfg perfConfig) {
	ctx := context.Background()
	b.ReportAllocs()

	wires := gridWires(cfg.Wires, cfg.SegmentsPerWire)
	excitations := []model.Excitation{{
		Kind:    model.ExcitationVoltage,
		WireTag: 1,
		Segment: (cfg.SegmentsPerWire + 1) / 2,
		Real:    1,
	}}

	for i := 0; i < b.N; i++ {
		builder := core.NewModelBuilder(core.NewRecordingSolver(nil))

		b.ResetTimer()
		builder.Geometry(wires, excitations)
		if _, err := builder.Run(ctx); err != nil {
			b.Fatalf("Run: %v", err)
		}
		b.StopTimer()

		if got := builder.SegmentCount(); got != cfg.Wires*cfg.SegmentsPerWire {
			b.Fatalf("segment count = %d, want %d", got, cfg.Wires*cfg.SegmentsPerWire)
		}
	}
}

func benchmarkSegmentMap(b *testing.B, cfg perfConfig) {
	b.ReportAllocs()

	wires := gridWires(cfg.Wires, cfg.SegmentsPerWire)

	for i := 0; i < b.N; i++ {
		sm := core.NewSegmentMap(wires)
		if sm.Len() != cfg.Wires*cfg.SegmentsPerWire {
			b.Fatalf("segment map size = %d, want %d", sm.Len(), cfg.Wires*cfg.SegmentsPerWire)
		}
	}
}

func benchmarkBatchVSWR(b *testing.B, cfg perfConfig) {
	b.ReportAllocs()

	zs := sweepImpedances(cfg.SweepPoints)
	refs := []float64{50}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vs, err := metrics.VSWRs(zs, refs)
		if err != nil {
			b.Fatalf("VSWRs: %v", err)
		}
		if len(vs) != cfg.SweepPoints {
			b.Fatalf("result length = %d, want %d", len(vs), cfg.SweepPoints)
		}
	}
}

func benchmarkCatalogAdd(b *testing.B, cfg perfConfig) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		catalog := kb.NewCatalog()
		scenarios := make([]model.Scenario, cfg.Scenarios)
		for j := range scenarios {
			scenarios[j] = perfScenario(fmt.Sprintf("scenario-%d-%d", i, j))
		}

		b.ResetTimer()
		for j := range scenarios {
			if err := catalog.Add(&scenarios[j]); err != nil {
				b.Fatalf("Add(%s): %v", scenarios[j].Name, err)
			}
		}
		b.StopTimer()

		if catalog.Len() != cfg.Scenarios {
			b.Fatalf("catalog size = %d, want %d", catalog.Len(), cfg.Scenarios)
		}
	}
}

func gridWires(n, segments int) []model.Wire {
	wires := make([]model.Wire, n)
	for i := range wires {
		x := 0.1 * float64(i)
		wires[i] = model.Wire{
			Segments: segments,
			Start:    model.Point{X: x, Z: -0.25},
			End:      model.Point{X: x, Z: 0.25},
			RadiusM:  0.001,
		}
	}
	return wires
}

func sweepImpedances(n int) []complex128 {
	zs := make([]complex128, n)
	for i := range zs {
		zs[i] = complex(40+float64(i%40), float64(i%21)-10)
	}
	return zs
}

func perfScenario(name string) model.Scenario {
	return model.Scenario{
		Name: name,
		Wires: []model.Wire{{
			Segments: 9,
			Start:    model.Point{Z: -0.25},
			End:      model.Point{Z: 0.25},
			RadiusM:  0.001,
		}},
		Excitations: []model.Excitation{{WireTag: 1, Segment: 5, Real: 1}},
	}
}
