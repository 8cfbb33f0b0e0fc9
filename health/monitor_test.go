package health

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quinlan2018/SDMX/metric"
)

func TestMonitor_Update(t *testing.T) {
	m := NewMonitor(nil)

	m.Update("ECB", Status{Provider: "wrong-name", Status: StatusHealthy, Message: "ok"})

	got, ok := m.Get("ECB")
	require.True(t, ok)
	assert.Equal(t, "ECB", got.Provider, "the update name wins")
	assert.False(t, got.Timestamp.IsZero())
	assert.Equal(t, 1, m.Count())

	_, ok = m.Get("ISTAT")
	assert.False(t, ok)
}

func TestMonitor_Lifecycle(t *testing.T) {
	m := NewMonitor(nil)
	m.Set("ISTAT", StatusHealthy, "")
	m.Set("ECB", StatusDegraded, "slow")
	m.Set("UNDATA", StatusUnhealthy, "down")

	assert.Equal(t, []string{"ECB", "ISTAT", "UNDATA"}, m.ListProviders())

	agg := m.AggregateHealth("sdmx")
	assert.True(t, agg.IsUnhealthy())
	require.Len(t, agg.SubStatuses, 3)
	assert.Equal(t, "ECB", agg.SubStatuses[0].Provider)

	all := m.GetAll()
	delete(all, "ECB")
	assert.Equal(t, 3, m.Count(), "GetAll returns a copy")

	m.Remove("UNDATA")
	assert.True(t, m.AggregateHealth("sdmx").IsDegraded())

	m.Clear()
	assert.Equal(t, 0, m.Count())
}

func TestMonitor_RecordsProviderUp(t *testing.T) {
	metrics := metric.NewMetrics()
	m := NewMonitor(metrics)

	m.Set("ECB", StatusHealthy, "")
	m.Set("ISTAT", StatusDegraded, "")
	m.Set("UNDATA", StatusUnhealthy, "")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProviderUp.WithLabelValues("ECB")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProviderUp.WithLabelValues("ISTAT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ProviderUp.WithLabelValues("UNDATA")))
}

func TestMonitor_Concurrent(t *testing.T) {
	m := NewMonitor(metric.NewMetrics())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("P%d", i%5)
			if i%2 == 0 {
				m.Set(name, StatusHealthy, "")
			} else {
				m.Set(name, StatusUnhealthy, "")
			}
			_ = m.AggregateHealth("sdmx")
			_ = m.GetAll()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, m.Count())
}
