package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sdmx"

// Metrics contains the metrics recorded by the client factory, the provider
// transport and the probe. All Record methods accept a nil receiver so that
// components can run without a registry.
type Metrics struct {
	// Factory metrics
	ClientsCreated *prometheus.CounterVec
	ClientErrors   *prometheus.CounterVec

	// Transport metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Retries         *prometheus.CounterVec
	BytesReceived   *prometheus.CounterVec

	// Registry and probe metrics
	RegisteredProviders prometheus.Gauge
	ProviderUp          *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		ClientsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "factory",
				Name:      "clients_created_total",
				Help:      "Clients created, by provider and resolution path (registry or catalog)",
			},
			[]string{"provider", "resolution"},
		),

		ClientErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "factory",
				Name:      "client_errors_total",
				Help:      "Client creation failures, by provider and error kind",
			},
			[]string{"provider", "kind"},
		),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Provider requests, by provider and outcome (HTTP status code or error)",
			},
			[]string{"provider", "code"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Provider request duration in seconds, retries included",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),

		Retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "retries_total",
				Help:      "Provider request retries",
			},
			[]string{"provider"},
		),

		BytesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "received_bytes_total",
				Help:      "Decoded response bytes received from providers",
			},
			[]string{"provider"},
		),

		RegisteredProviders: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "providers",
				Help:      "Number of providers in the registry",
			},
		),

		ProviderUp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "probe",
				Name:      "provider_up",
				Help:      "Last probe result (0=down, 1=up)",
			},
			[]string{"provider"},
		),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ClientsCreated,
		m.ClientErrors,
		m.Requests,
		m.RequestDuration,
		m.Retries,
		m.BytesReceived,
		m.RegisteredProviders,
		m.ProviderUp,
	}
}

// RecordClientCreated counts a successful client creation
func (m *Metrics) RecordClientCreated(provider, resolution string) {
	if m == nil {
		return
	}
	m.ClientsCreated.WithLabelValues(provider, resolution).Inc()
}

// RecordClientError counts a failed client creation
func (m *Metrics) RecordClientError(provider, kind string) {
	if m == nil {
		return
	}
	m.ClientErrors.WithLabelValues(provider, kind).Inc()
}

// RecordRequest records the outcome and total duration of a provider request
func (m *Metrics) RecordRequest(provider, code string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(provider, code).Inc()
	m.RequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordRetry counts one retry
func (m *Metrics) RecordRetry(provider string) {
	if m == nil {
		return
	}
	m.Retries.WithLabelValues(provider).Inc()
}

// RecordBytes adds n decoded response bytes
func (m *Metrics) RecordBytes(provider string, n int) {
	if m == nil {
		return
	}
	m.BytesReceived.WithLabelValues(provider).Add(float64(n))
}

// RecordRegistrySize sets the number of registered providers
func (m *Metrics) RecordRegistrySize(n int) {
	if m == nil {
		return
	}
	m.RegisteredProviders.Set(float64(n))
}

// RecordProviderUp sets the last probe result of provider
func (m *Metrics) RecordProviderUp(provider string, up bool) {
	if m == nil {
		return
	}
	value := 0.0
	if up {
		value = 1.0
	}
	m.ProviderUp.WithLabelValues(provider).Set(value)
}
