// Package provider holds the registry of SDMX data providers.
//
// A Provider is the connection profile of one data service: its endpoint,
// whether it needs credentials, URL-encoded keys or supports compression,
// and whether it is resolved by convention (IsCustom) instead of through its
// registry endpoint.
//
// Initialize layers three sources into one Registry:
//
//  1. the compiled-in table, each field overridable with
//     providers.<NAME>.name|endpoint|needsCredentials|needsURLEncoding|supportsCompression|description
//  2. implementations reported by a Discoverer (normally a client.Catalog)
//  3. user-declared providers listed in providers.external, each required to
//     configure providers.<id>.endpoint
//
// Malformed endpoints are logged and the entry is skipped. Re-registering a
// name replaces the previous entry.
//
//	reg := provider.Initialize(cfg, catalog, logger)
//	ecb, ok := reg.Get("ECB")
package provider
