package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cleared-dev/tiers/internal/form"
)

// Metrics contains the Prometheus metrics of the form API.
type Metrics struct {
	FormsOpen       prometheus.Gauge
	FormsCreated    prometheus.Counter
	FormEvents      *prometheus.CounterVec
	FieldChanges    *prometheus.CounterVec
	Classifications *prometheus.CounterVec
}

// NewMetrics registers the form API metrics with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		FormsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tiers_forms_open",
			Help: "The current number of open record forms",
		}),
		FormsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tiers_forms_created_total",
			Help: "The total number of record forms opened since server start",
		}),
		FormEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tiers_form_events_total",
				Help: "Form events delivered, by event and outcome",
			},
			[]string{"event", "outcome"},
		),
		FieldChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tiers_field_changes_total",
				Help: "Field values changed by the form controller",
			},
			[]string{"field", "target"},
		),
		Classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tiers_classifications_total",
				Help: "Codes submitted to the classify endpoint, by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) observe(c form.Change) {
	target := "visible"
	if c.Shadow {
		target = "shadow"
	}
	m.FieldChanges.WithLabelValues(string(c.Role), target).Inc()
}
