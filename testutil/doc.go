// Package testutil provides test doubles and canned data for the SDMX
// packages.
//
//   - StubClient: a provider client without transport, for factory and
//     catalog tests.
//   - ProviderServer: an httptest server answering canned bodies per path.
//   - ProvidersProperties, ProvidersYAML: sample configuration layers.
//   - QuarterlySeries: observation rows with sporadic attributes.
//
// The package must not import client or custom so that their tests can use
// it.
package testutil
