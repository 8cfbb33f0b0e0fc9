// Package metric provides the Prometheus metrics of the SDMX connectors and
// an HTTP server exposing them.
//
// MetricsRegistry owns a private prometheus.Registry with the core metrics
// (Metrics) and the Go runtime collectors. Components receive the *Metrics
// value and call its Record methods; a nil *Metrics records nothing.
//
//	registry := metric.NewMetricsRegistry()
//	factory := client.NewFactory(reg, catalog, client.WithMetrics(registry.CoreMetrics()))
//
//	server := metric.NewServer(":9090", "/metrics", registry, nil)
//	go func() { _ = server.Start() }()
//	defer server.Stop()
//
// # Core Metrics
//
//   - sdmx_factory_clients_created_total{provider,resolution}
//   - sdmx_factory_client_errors_total{provider,kind}
//   - sdmx_http_requests_total{provider,code}
//   - sdmx_http_request_duration_seconds{provider}
//   - sdmx_http_retries_total{provider}
//   - sdmx_http_received_bytes_total{provider}
//   - sdmx_registry_providers
//   - sdmx_probe_provider_up{provider}
//
// Additional collectors go through Register, keyed by component and metric
// name so that a second registration of the same key is rejected.
package metric
