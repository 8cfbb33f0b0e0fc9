// Package client resolves SDMX provider names to clients.
//
// A Catalog maps provider names to implementation constructors and is
// populated explicitly at startup (see package custom). A Factory combines
// the catalog with a provider.Registry:
//
//	catalog := client.NewCatalog(logger)
//	if err := custom.Register(catalog); err != nil { ... }
//	registry := provider.Initialize(cfg, catalog, logger)
//	factory := client.NewFactory(registry, catalog,
//	    client.WithLogger(logger), client.WithMetrics(metrics), client.WithProxy(policy))
//	c, err := factory.CreateClient("ECB")
//
// Resolution rules:
//
//   - A registry entry that is not custom resolves to a rest.Client built
//     from the entry's endpoint and flags. Its endpoint scheme must be
//     HTTP-family, otherwise *errors.InvalidParameterError is returned.
//   - A custom entry, or a name missing from the registry, resolves through
//     the catalog. A missing or failing constructor yields
//     *errors.UnknownProviderError carrying the cause. A registry endpoint,
//     when present, overrides the implementation's default.
//
// The host of every created client is registered with the installed proxy
// policy when the policy implements proxy.HostRouter. The factory keeps no
// per-client state.
package client
