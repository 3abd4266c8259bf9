package onboarding

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage names used as metric labels.
const (
	StageNormalize = "normalize"
	StageCheck     = "check_exists"
	StageWrite     = "write_record"
	StageRender    = "render"
	StageConvert   = "convert"
	StageStore     = "store"
)

// Metrics records pipeline stage latencies and run outcomes.
type Metrics struct {
	StageDuration *prometheus.HistogramVec
	Outcomes      *prometheus.CounterVec
	ArtifactPages prometheus.Histogram
}

// NewMetrics registers the pipeline metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roster_pipeline_stage_duration_seconds",
			Help:    "Duration of onboarding pipeline stages",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage", "result"}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_pipeline_runs_total",
			Help: "Onboarding pipeline runs by operation and outcome",
		}, []string{"operation", "outcome"}),

		ArtifactPages: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_artifact_pages",
			Help:    "Page count of published artifacts",
			Buckets: []float64{1, 2, 3, 5, 10},
		}),
	}
}

// ObserveStage records the duration of a stage and whether it failed.
func (m *Metrics) ObserveStage(stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StageDuration.WithLabelValues(stage, result).Observe(d.Seconds())
}

// IncrementOutcome counts a finished run. Runs that end in an error use "error".
func (m *Metrics) IncrementOutcome(operation string, outcome Outcome) {
	if m != nil {
		m.Outcomes.WithLabelValues(operation, string(outcome)).Inc()
	}
}

// ObservePages records the page count of a published artifact.
func (m *Metrics) ObservePages(pages int) {
	if m != nil {
		m.ArtifactPages.Observe(float64(pages))
	}
}
