package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SolverCollector bundles Prometheus metrics for the solver boundary:
// card submissions, records rejected by validation, run outcomes, and
// gauges describing the assembled model and the scenario catalog.
type SolverCollector struct {
	gatherer prometheus.Gatherer

	Cards              *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Runs               *prometheus.CounterVec
	RunDuration        prometheus.Histogram

	ModelWires       prometheus.Gauge
	ModelSegments    prometheus.Gauge
	CatalogScenarios prometheus.Gauge
}

// NewSolverCollector registers solver metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewSolverCollector(reg prometheus.Registerer) (*SolverCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	cards := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "antenna_cards_total",
		Help: "Total number of cards submitted to the solver, labeled by card mnemonic.",
	}, []string{"card"})
	cards, err := registerCounterVec(reg, cards, "antenna_cards_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "antenna_validation_failures_total",
		Help: "Total number of records rejected before submission, labeled by card mnemonic.",
	}, []string{"card"})
	failures, err = registerCounterVec(reg, failures, "antenna_validation_failures_total")
	if err != nil {
		return nil, err
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_runs_total",
		Help: "Total number of solver executions, labeled by outcome status.",
	}, []string{"status"})
	runs, err = registerCounterVec(reg, runs, "solver_runs_total")
	if err != nil {
		return nil, err
	}

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_run_duration_seconds",
		Help:    "Wall-clock duration of solver executions in seconds.",
		Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 5, 30, 120, 600},
	})
	runDuration, err = registerHistogram(reg, runDuration, "solver_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	wires, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_wires",
		Help: "Current number of wires in the assembled model.",
	}), "model_wires")
	if err != nil {
		return nil, err
	}
	segments, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_segments",
		Help: "Current number of segments in the assembled model.",
	}), "model_segments")
	if err != nil {
		return nil, err
	}
	scenarios, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_scenarios",
		Help: "Current number of scenarios held in the catalog.",
	}), "catalog_scenarios")
	if err != nil {
		return nil, err
	}

	return &SolverCollector{
		gatherer:           gatherer,
		Cards:              cards,
		ValidationFailures: failures,
		Runs:               runs,
		RunDuration:        runDuration,
		ModelWires:         wires,
		ModelSegments:      segments,
		CatalogScenarios:   scenarios,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SolverCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SolverCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// CardSubmitted counts one card handed to the solver.
func (c *SolverCollector) CardSubmitted(card string) {
	if c == nil || c.Cards == nil {
		return
	}
	c.Cards.WithLabelValues(card).Inc()
}

// ValidationFailed counts one record rejected before submission.
func (c *SolverCollector) ValidationFailed(card string) {
	if c == nil || c.ValidationFailures == nil {
		return
	}
	c.ValidationFailures.WithLabelValues(card).Inc()
}

// RunObserved counts one solver execution and records its duration.
func (c *SolverCollector) RunObserved(status string, d time.Duration) {
	if c == nil {
		return
	}
	if c.Runs != nil {
		c.Runs.WithLabelValues(status).Inc()
	}
	if c.RunDuration != nil {
		c.RunDuration.Observe(d.Seconds())
	}
}

// SetModelCounts satisfies the core.TranslationRecorder interface so a
// ModelBuilder can drive the model size gauges directly.
func (c *SolverCollector) SetModelCounts(wires, segments int) {
	if c == nil {
		return
	}
	if c.ModelWires != nil {
		c.ModelWires.Set(float64(wires))
	}
	if c.ModelSegments != nil {
		c.ModelSegments.Set(float64(segments))
	}
}

// SetCatalogSize updates the scenario catalog gauge.
func (c *SolverCollector) SetCatalogSize(n int) {
	if c == nil || c.CatalogScenarios == nil {
		return
	}
	c.CatalogScenarios.Set(float64(n))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
