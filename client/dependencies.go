package client

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Quinlan2018/SDMX/config"
	"github.com/Quinlan2018/SDMX/metric"
	"github.com/Quinlan2018/SDMX/pkg/retry"
	"github.com/Quinlan2018/SDMX/rest"
)

// Dependencies carries the shared transport settings handed to every
// constructor. The zero value builds clients with library defaults.
type Dependencies struct {
	HTTP       config.HTTPConfig                     // timeouts, retries and rate limits
	TLS        *tls.Config                           // client TLS (can be nil)
	Proxy      func(*http.Request) (*url.URL, error) // proxy selection (can be nil)
	HTTPClient *http.Client                          // replaces the built transport (tests)
	Metrics    *metric.Metrics                       // transport metrics (can be nil)
	Logger     *slog.Logger                          // defaults to slog.Default()
}

// GetLogger returns the configured logger or a default logger if none is provided
func (d *Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// RESTOptions returns rest.Options for provider name at endpoint, seeded
// from the shared settings. Capability flags are left for the caller.
func (d *Dependencies) RESTOptions(name string, endpoint *url.URL) rest.Options {
	rc := retry.Transient(d.HTTP.Retries + 1)
	return rest.Options{
		Name:       name,
		Endpoint:   endpoint,
		Timeout:    d.HTTP.Timeout,
		Retry:      &rc,
		RateLimit:  d.HTTP.RateLimit,
		Burst:      d.HTTP.Burst,
		UserAgent:  d.HTTP.UserAgent,
		TLS:        d.TLS,
		Proxy:      d.Proxy,
		HTTPClient: d.HTTPClient,
		Logger:     d.GetLogger(),
		Metrics:    d.Metrics,
	}
}
