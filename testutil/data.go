package testutil

import (
	"github.com/Quinlan2018/SDMX/config"
)

// ProvidersProperties is a provider configuration in .properties form. It
// overrides ECB, declares two external providers and one without endpoint.
const ProvidersProperties = `# provider overrides
providers.ECB.endpoint = https://data-api.ecb.europa.eu/service
providers.ECB.description = European Central Bank (new API)
providers.external = BIS_LOCAL, STATBANK , MISSING
providers.BIS_LOCAL.endpoint = http://localhost:8080/api/v1
providers.BIS_LOCAL.supportsCompression = true
providers.STATBANK.name = DST
providers.STATBANK.endpoint = https://api.statbank.dk/sdmx
providers.STATBANK.needsCredentials = true
`

// ProvidersYAML is a provider and transport configuration in YAML form.
const ProvidersYAML = `http:
  timeout: 5s
  retries: 1
  rateLimit: 2.5
  burst: 2
providers:
  INSEE:
    supportsCompression: false
  external: [LOCAL]
  LOCAL:
    endpoint: http://127.0.0.1:9999/rest
    description: Local test provider
`

// ProviderSource returns an in-memory source with the given pairs.
func ProviderSource(pairs map[string]string) config.MapSource {
	return config.NewMapSource(pairs)
}

// Observation is one input row for building a test series.
type Observation struct {
	Value    string
	TimeSlot string
	Attrs    map[string]string
}

// QuarterlySeries is a short quarterly series with sporadic
// observation-level attributes.
var QuarterlySeries = []Observation{
	{Value: "1.5", TimeSlot: "2020-Q1", Attrs: map[string]string{"OBS_STATUS": "A"}},
	{Value: "", TimeSlot: "2020-Q2"},
	{Value: "2.25", TimeSlot: "2020-Q3", Attrs: map[string]string{"OBS_CONF": "F"}},
	{Value: "NaN", TimeSlot: "2020-Q4", Attrs: map[string]string{"OBS_STATUS": "E", "OBS_CONF": "C"}},
}
