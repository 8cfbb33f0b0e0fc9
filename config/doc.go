// Package config provides the read-only configuration view consulted at
// provider registry initialization and by the command line tool.
//
// # Core Components
//
// Source: the minimal key/value contract (Lookup) the rest of the module
// depends on. Keys are dotted and case-insensitive.
//
// MapSource: an in-memory Source for tests and embedders.
//
// Loader: merges configuration layers (.properties, .yaml, .json) through
// viper, later layers winning key by key, and applies environment
// overrides under the SDMX prefix.
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("configuration.properties")
//	loader.AddLayer("site.yaml") // overrides the first layer
//
//	cfg, err := loader.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	endpoint := config.String(cfg, "providers.ECB.endpoint", "")
//
// # Recognized Keys
//
//	providers.<NAME>.name|endpoint|needsCredentials|needsURLEncoding|supportsCompression|description
//	providers.external            comma separated ids of external providers
//	http.timeout|retries|rateLimit|burst|userAgent
//	http.proxy.url|hosts
//	http.tls.caFiles|minVersion|insecureSkipVerify
//
// Environment variables replace dots with underscores and are upper-cased:
// SDMX_PROVIDERS_ECB_ENDPOINT, SDMX_PROVIDERS_EXTERNAL, SDMX_HTTP_TIMEOUT.
package config
