package client

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Quinlan2018/SDMX/errors"
	"github.com/Quinlan2018/SDMX/metric"
	"github.com/Quinlan2018/SDMX/pkg/proxy"
	"github.com/Quinlan2018/SDMX/provider"
	"github.com/Quinlan2018/SDMX/rest"
)

// Resolution paths reported in metrics and logs.
const (
	ResolvedByRegistry = "registry"
	ResolvedByCatalog  = "catalog"
)

// ProxyPolicy selects the proxy for a request. Policies that also implement
// proxy.HostRouter get every resolved provider host registered.
type ProxyPolicy interface {
	Proxy(req *http.Request) (*url.URL, error)
}

// Factory resolves provider names to clients. It holds no per-client state;
// every CreateClient call builds a new client.
type Factory struct {
	registry *provider.Registry
	catalog  *Catalog
	deps     Dependencies
	router   proxy.HostRouter
	logger   *slog.Logger
	metrics  *metric.Metrics
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the factory logger, also handed to constructed clients.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
			f.deps.Logger = logger
		}
	}
}

// WithMetrics records factory and transport metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(f *Factory) {
		f.metrics = m
		f.deps.Metrics = m
	}
}

// WithProxy installs a proxy policy for constructed clients.
func WithProxy(p ProxyPolicy) Option {
	return func(f *Factory) {
		if p == nil {
			return
		}
		f.deps.Proxy = p.Proxy
		if r, ok := p.(proxy.HostRouter); ok {
			f.router = r
		}
	}
}

// WithDependencies replaces the shared transport settings. Apply it before
// WithLogger, WithMetrics and WithProxy, which amend them.
func WithDependencies(deps Dependencies) Option {
	return func(f *Factory) {
		f.deps = deps
		if deps.Logger != nil {
			f.logger = deps.Logger
		}
		if deps.Metrics != nil {
			f.metrics = deps.Metrics
		}
	}
}

// NewFactory creates a factory over registry and catalog. Nil arguments are
// replaced by empty ones.
func NewFactory(registry *provider.Registry, catalog *Catalog, opts ...Option) *Factory {
	if registry == nil {
		registry = provider.NewRegistry()
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}

	f := &Factory{
		registry: registry,
		catalog:  catalog,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.deps.Logger == nil {
		f.deps.Logger = f.logger
	}
	return f
}

// Registry returns the provider registry the factory resolves against.
func (f *Factory) Registry() *provider.Registry { return f.registry }

// Catalog returns the implementation catalog.
func (f *Factory) Catalog() *Catalog { return f.catalog }

// CreateClient returns a client for providerName.
//
// A registry entry that is not custom must have an HTTP-family endpoint and
// yields a rest.Client configured with the entry's flags; anything else
// fails with *errors.InvalidParameterError. Custom entries and names missing
// from the registry are constructed from the catalog; when that fails the
// result is *errors.UnknownProviderError. A registry endpoint overrides the
// implementation's default.
func (f *Factory) CreateClient(providerName string) (Client, error) {
	logger := f.logger.With("provider", providerName)
	logger.Debug("Create an SDMX client")

	var (
		cl         Client
		resolution string
		err        error
	)

	p, found := f.registry.Get(providerName)
	if found && !p.IsCustom {
		cl, err = f.fromRegistry(p)
		if err != nil {
			logger.Error("The provider is not available in this configuration", "error", err)
			f.metrics.RecordClientError(providerName, "invalid_parameter")
			return nil, err
		}
		resolution = ResolvedByRegistry
	} else {
		cl, err = f.catalog.New(providerName, f.deps)
		if err != nil {
			logger.Error("The provider is not available in this configuration", "error", err)
			f.metrics.RecordClientError(providerName, "unknown_provider")
			return nil, errors.NewUnknownProvider(providerName, err)
		}
		if found && p.Endpoint != nil {
			cl.SetEndpoint(p.Endpoint)
		}
		resolution = ResolvedByCatalog
	}

	if f.router != nil {
		if ep := cl.Endpoint(); ep != nil && ep.Hostname() != "" {
			f.router.AddHost(ep.Hostname())
		}
	}

	f.metrics.RecordClientCreated(providerName, resolution)
	logger.Debug("Created SDMX client", "resolution", resolution, "endpoint", endpointString(cl.Endpoint()))
	return cl, nil
}

func (f *Factory) fromRegistry(p provider.Provider) (Client, error) {
	// Initialize never registers a REST provider without endpoint; this
	// covers entries added directly to the registry.
	if p.Endpoint == nil {
		return nil, errors.NewInvalidParameter(p.Name, "", "no endpoint configured")
	}
	if !strings.HasPrefix(strings.ToLower(p.Endpoint.Scheme), "http") {
		return nil, errors.NewInvalidParameter(p.Name, p.Endpoint.Scheme, "")
	}

	opts := f.deps.RESTOptions(p.Name, p.Endpoint)
	opts.NeedsCredentials = p.NeedsCredentials
	opts.NeedsURLEncoding = p.NeedsURLEncoding
	opts.SupportsCompression = p.SupportsCompression

	cl, err := rest.New(opts)
	if err != nil {
		return nil, errors.NewInvalidParameter(p.Name, p.Endpoint.Scheme, err.Error())
	}
	return cl, nil
}

func endpointString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Redacted()
}
