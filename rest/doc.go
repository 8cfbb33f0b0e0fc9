// Package rest implements the HTTP-family SDMX protocol client.
//
// A Client is bound to one provider endpoint and knows the provider's
// transport conventions: whether requests need credentials, whether series
// keys must be percent-encoded, whether the server answers with gzip, and
// which URL dialect it speaks (SDMX 2.1 REST or OECD .Stat).
//
// The client stops at transport. Fetch returns the raw (decompressed) body;
// GetData hands it to a caller supplied Decoder that produces
// series.TimeSeries values.
//
//	c, err := rest.New(rest.Options{Name: "ECB", Endpoint: u, SupportsCompression: true})
//	q := rest.DataQuery{Dataflow: "EXR", Key: "M.USD.EUR.SP00.A", StartPeriod: "2020"}
//	ts, err := c.GetData(ctx, q, decoder)
//
// Requests are rate limited, retried with exponential backoff on transient
// failures (network errors, 5xx, 429), traced with OpenTelemetry and counted
// in the metric package when Options.Metrics is set.
package rest
