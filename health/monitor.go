package health

import (
	"sort"
	"sync"
	"time"

	"github.com/Quinlan2018/SDMX/metric"
)

// Monitor tracks the latest status of each provider in a thread-safe manner
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
	metrics  *metric.Metrics
}

// NewMonitor creates a new health monitor. metrics may be nil; when set,
// every update is mirrored in the provider_up gauge.
func NewMonitor(metrics *metric.Metrics) *Monitor {
	return &Monitor{
		statuses: make(map[string]Status),
		metrics:  metrics,
	}
}

// Update updates the health status for a named provider
func (m *Monitor) Update(name string, status Status) {
	// Ensure the status has the correct provider name and timestamp
	status.Provider = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}

	m.mu.Lock()
	m.statuses[name] = status
	m.mu.Unlock()

	m.metrics.RecordProviderUp(name, status.IsHealthy() || status.IsDegraded())
}

// Set records a status at level for name.
func (m *Monitor) Set(name, level, message string) {
	m.Update(name, New(name, level, message))
}

// Get retrieves the health status for a named provider
func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, exists := m.statuses[name]
	return status, exists
}

// GetAll returns a copy of all current health statuses
func (m *Monitor) GetAll() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]Status, len(m.statuses))
	for name, status := range m.statuses {
		result[name] = status
	}
	return result
}

// Remove removes a provider from monitoring
func (m *Monitor) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.statuses, name)
}

// AggregateHealth returns an aggregated status, sub-statuses sorted by
// provider name.
func (m *Monitor) AggregateHealth(name string) Status {
	names := m.ListProviders()

	m.mu.RLock()
	subStatuses := make([]Status, 0, len(names))
	for _, n := range names {
		if status, ok := m.statuses[n]; ok {
			subStatuses = append(subStatuses, status)
		}
	}
	m.mu.RUnlock()

	return Aggregate(name, subStatuses)
}

// ListProviders returns the monitored provider names, sorted.
func (m *Monitor) ListProviders() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.statuses))
	for name := range m.statuses {
		names = append(names, name)
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Count returns the number of providers being monitored
func (m *Monitor) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.statuses)
}

// Clear removes all providers from monitoring
func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statuses = make(map[string]Status)
}
