// Package proxy implements the per-host proxy policy applied to provider
// requests. Hosts registered with AddHost go through the configured proxy;
// every other host follows the HTTP_PROXY/HTTPS_PROXY/NO_PROXY environment.
package proxy

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/http/httpproxy"

	"github.com/Quinlan2018/SDMX/errors"
)

// HostRouter is a proxy policy that can route individual hosts through its
// proxy. The client factory registers every resolved provider host with
// the installed policy when it implements HostRouter.
type HostRouter interface {
	AddHost(host string)
}

// Policy routes registered hosts through one proxy. It is safe for
// concurrent use.
type Policy struct {
	proxy    *url.URL
	fallback func(*url.URL) (*url.URL, error)

	mu    sync.RWMutex
	hosts map[string]struct{}
}

// New creates a policy sending the given hosts through proxyURL. A nil
// proxyURL disables routing so that AddHost only records the host.
func New(proxyURL *url.URL, hosts ...string) *Policy {
	p := &Policy{
		proxy: proxyURL,
		hosts: make(map[string]struct{}),
		fallback: func(*url.URL) (*url.URL, error) {
			return nil, nil
		},
	}
	for _, h := range hosts {
		p.AddHost(h)
	}
	return p
}

// FromEnvironment is like New but falls back to the proxy environment
// variables for hosts that were not registered.
func FromEnvironment(proxyURL *url.URL, hosts ...string) *Policy {
	p := New(proxyURL, hosts...)
	p.fallback = httpproxy.FromEnvironment().ProxyFunc()
	return p
}

// Parse builds an environment-aware policy from a configured proxy URL.
// An empty raw value yields a policy without its own proxy.
func Parse(raw string, hosts []string) (*Policy, error) {
	if raw == "" {
		return FromEnvironment(nil, hosts...), nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: proxy %q", errors.ErrInvalidConfig, raw),
			"Policy", "Parse", "parse proxy url")
	}
	return FromEnvironment(u, hosts...), nil
}

// AddHost registers host (with or without port) for routing.
func (p *Policy) AddHost(host string) {
	host = normalizeHost(host)
	if host == "" {
		return
	}
	p.mu.Lock()
	p.hosts[host] = struct{}{}
	p.mu.Unlock()
}

// Hosts returns the registered hosts, sorted.
func (p *Policy) Hosts() []string {
	p.mu.RLock()
	out := make([]string, 0, len(p.hosts))
	for h := range p.hosts {
		out = append(out, h)
	}
	p.mu.RUnlock()

	sort.Strings(out)
	return out
}

// ProxyURL returns the proxy for a request to u, or nil for a direct
// connection.
func (p *Policy) ProxyURL(u *url.URL) (*url.URL, error) {
	if p.proxy != nil {
		p.mu.RLock()
		_, routed := p.hosts[normalizeHost(u.Host)]
		p.mu.RUnlock()
		if routed {
			return p.proxy, nil
		}
	}
	return p.fallback(u)
}

// Proxy has the signature of http.Transport.Proxy.
func (p *Policy) Proxy(req *http.Request) (*url.URL, error) {
	return p.ProxyURL(req.URL)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.Trim(host, "[]")
}
