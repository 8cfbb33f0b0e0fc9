package rest

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Quinlan2018/SDMX/errors"
	"github.com/Quinlan2018/SDMX/metric"
	"github.com/Quinlan2018/SDMX/pkg/retry"
)

// TracerName identifies the spans emitted by Fetch.
const TracerName = "github.com/Quinlan2018/SDMX/rest"

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "sdmx-go/1.0"

// Dialect selects the URL layout spoken by a provider.
type Dialect int

const (
	// DialectREST21 is the SDMX 2.1 RESTful API.
	DialectREST21 Dialect = iota
	// DialectDotStat is the OECD .Stat SDMX API (GetData/GetDataStructure).
	DialectDotStat
)

func (d Dialect) String() string {
	switch d {
	case DialectREST21:
		return "rest21"
	case DialectDotStat:
		return "dotstat"
	default:
		return "unknown"
	}
}

// Options configures a Client.
type Options struct {
	Name     string
	Endpoint *url.URL

	NeedsCredentials    bool
	NeedsURLEncoding    bool
	SupportsCompression bool
	Dialect             Dialect

	// Timeout bounds a single HTTP attempt (default 30s).
	Timeout time.Duration
	// Retry defaults to retry.Transient(3).
	Retry *retry.Config
	// RateLimit in requests per second; zero disables limiting.
	RateLimit float64
	Burst     int

	UserAgent string
	TLS       *tls.Config
	Proxy     func(*http.Request) (*url.URL, error)

	// HTTPClient replaces the client built from Timeout, TLS and Proxy.
	HTTPClient *http.Client

	Logger  *slog.Logger
	Metrics *metric.Metrics
}

// Client talks to one HTTP-family SDMX endpoint. It is safe for concurrent
// use; SetEndpoint and SetCredentials may be called while requests run.
type Client struct {
	name                string
	needsCredentials    bool
	needsURLEncoding    bool
	supportsCompression bool
	dialect             Dialect

	mu       sync.RWMutex
	endpoint *url.URL
	user     string
	password string

	http      *http.Client
	limiter   *rate.Limiter
	retry     retry.Config
	userAgent string
	tracer    trace.Tracer
	logger    *slog.Logger
	metrics   *metric.Metrics
}

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	if opts.Name == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: provider name is required", errors.ErrMissingConfig),
			"Client", "New", "validate options")
	}
	if err := checkEndpoint(opts.Endpoint); err != nil {
		return nil, errors.WrapInvalid(err, "Client", "New", "validate endpoint of "+opts.Name)
	}

	c := &Client{
		name:                opts.Name,
		needsCredentials:    opts.NeedsCredentials,
		needsURLEncoding:    opts.NeedsURLEncoding,
		supportsCompression: opts.SupportsCompression,
		dialect:             opts.Dialect,
		endpoint:            cloneURL(opts.Endpoint),
		userAgent:           opts.UserAgent,
		tracer:              otel.Tracer(TracerName),
		logger:              opts.Logger,
		metrics:             opts.Metrics,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("provider", opts.Name)

	if opts.Retry != nil {
		c.retry = *opts.Retry
	} else {
		c.retry = retry.Transient(3)
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	} else {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
	}

	c.http = opts.HTTPClient
	if c.http == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.TLS != nil {
			transport.TLSClientConfig = opts.TLS
		}
		if opts.Proxy != nil {
			transport.Proxy = opts.Proxy
		}
		c.http = &http.Client{Timeout: timeout, Transport: transport}
	}

	return c, nil
}

func checkEndpoint(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("%w: endpoint is required", errors.ErrMalformedEndpoint)
	}
	if !strings.HasPrefix(strings.ToLower(u.Scheme), "http") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an HTTP endpoint", errors.ErrMalformedEndpoint, u.String())
	}
	return nil
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}

// Name returns the provider name.
func (c *Client) Name() string { return c.name }

// Dialect returns the URL layout of the provider.
func (c *Client) Dialect() Dialect { return c.dialect }

// NeedsCredentials reports whether the provider requires authentication.
func (c *Client) NeedsCredentials() bool { return c.needsCredentials }

// NeedsURLEncoding reports whether series keys are percent-encoded.
func (c *Client) NeedsURLEncoding() bool { return c.needsURLEncoding }

// SupportsCompression reports whether gzip responses are requested.
func (c *Client) SupportsCompression() bool { return c.supportsCompression }

// Endpoint returns a copy of the current endpoint.
func (c *Client) Endpoint() *url.URL {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneURL(c.endpoint)
}

// SetEndpoint replaces the endpoint. A nil or non-HTTP URL is ignored and
// logged.
func (c *Client) SetEndpoint(u *url.URL) {
	if err := checkEndpoint(u); err != nil {
		c.logger.Error("Ignoring endpoint override", "error", err)
		return
	}
	c.mu.Lock()
	c.endpoint = cloneURL(u)
	c.mu.Unlock()
}

// SetCredentials sets the basic auth credentials sent with every request.
func (c *Client) SetCredentials(user, password string) {
	c.mu.Lock()
	c.user, c.password = user, password
	c.mu.Unlock()
}

// HasCredentials reports whether credentials have been set.
func (c *Client) HasCredentials() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != ""
}

func (c *Client) credentials() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user, c.password
}
