// Package health tracks provider reachability with thread-safe status
// tracking and aggregation.
//
// # Health States
//
//   - Healthy: the provider answered the probe in time
//   - Degraded: the provider answered slowly, had nothing to list, or is
//     throttling requests
//   - Unhealthy: the provider could not be reached or returned an error
//
// # Usage
//
//	monitor := health.NewMonitor(metrics)
//
//	start := time.Now()
//	body, err := c.Fetch(ctx, u)
//	result := health.ProbeResult{Endpoint: u.Redacted(), Latency: time.Since(start), Bytes: len(body)}
//	monitor.Update("ECB", health.FromProbe("ECB", result, err, 0))
//
//	overall := monitor.AggregateHealth("sdmx")
//	if overall.IsUnhealthy() { ... }
//
// Error messages stored in a Status are sanitized: URLs, file paths, IP
// addresses, ports and credentials are replaced by placeholders so that
// statuses can be exposed on the metrics server.
//
// When the Monitor is created with a metric.Metrics, every update sets the
// sdmx_probe_provider_up gauge (degraded counts as up).
package health
