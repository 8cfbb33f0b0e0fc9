// Package sdmx provides connectors for statistical data providers that
// speak SDMX, together with the in-memory time series model their data is
// decoded into.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│          client.Factory             │  name -> ready client
//	│   (registry first, then catalog)    │  proxy host routing
//	└─────────────────────────────────────┘
//	      ↓ reads                ↓ constructs
//	┌──────────────────┐   ┌──────────────────┐
//	│ provider.Registry│   │  client.Catalog  │  custom implementations
//	│ builtin+external │   │  (custom pkg)    │  and discovery
//	└──────────────────┘   └──────────────────┘
//	                             ↓ builds
//	┌─────────────────────────────────────┐
//	│            rest.Client              │  URL dialects, retry,
//	│   fetch, decode -> series.TimeSeries│  rate limit, tracing
//	└─────────────────────────────────────┘
//
// # Packages
//
//   - provider: the provider registry, its builtin entries and the
//     configuration driven initialization (overrides, external providers).
//   - client: the Catalog of named implementations and the Factory that
//     resolves a provider name into a client.
//   - custom: the builtin table of provider specific implementations.
//   - rest: the HTTP protocol client (query URLs, fetch, decode).
//   - series: Observation[T] and TimeSeries.
//   - config: layered properties/YAML/JSON configuration with SDMX_*
//     environment overrides.
//   - errors: classified errors and the typed resolution failures.
//   - metric, health: Prometheus metrics and provider probe status.
//
// # Usage
//
//	cfg, err := config.NewLoader().LoadFile("sdmx.yaml")
//	if err != nil {
//	    return err
//	}
//
//	catalog := client.NewCatalog(logger)
//	if err := custom.Register(catalog); err != nil {
//	    return err
//	}
//	registry := provider.Initialize(cfg, catalog, logger)
//
//	factory := client.NewFactory(registry, catalog, client.WithLogger(logger))
//	c, err := factory.CreateClient("ECB")
//
// The sdmxctl binary under cmd/ wires the same pieces and adds the
// providers, resolve and probe commands.
package sdmx
