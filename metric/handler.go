package metric

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Quinlan2018/SDMX/errors"
)

// Server exposes a MetricsRegistry over HTTP
type Server struct {
	addr     string
	path     string
	registry *MetricsRegistry
	tls      *tls.Config
	server   *http.Server
	mu       sync.Mutex // protects server
}

// NewServer creates a metrics server listening on addr. A nil tlsConfig
// serves plain HTTP.
func NewServer(addr, path string, registry *MetricsRegistry, tlsConfig *tls.Config) *Server {
	if path == "" {
		path = "/metrics"
	}
	if addr == "" {
		addr = ":9090"
	}

	return &Server{
		addr:     addr,
		path:     path,
		registry: registry,
		tls:      tlsConfig,
	}
}

// Handler returns the HTTP handler serving metrics and a health endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.HandlerFor(
		s.registry.PrometheusRegistry(),
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Start listens and serves until Stop is called. It returns
// http.ErrServerClosed after a clean stop.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return errors.WrapInvalid(
			fmt.Errorf("server already running"),
			"Server", "Start", "cannot start server that is already running")
	}
	if s.registry == nil {
		s.mu.Unlock()
		return errors.WrapFatal(
			fmt.Errorf("nil registry"),
			"Server", "Start", "metrics registry not provided")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.WrapFatal(err, "Server", "Start", "listen on "+s.addr)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         s.tls,
	}
	s.server = srv
	s.mu.Unlock()

	if s.tls != nil {
		return srv.ServeTLS(ln, "", "")
	}
	return srv.Serve(ln)
}

// Stop stops the metrics server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		err := s.server.Close()
		s.server = nil
		if err != nil {
			return errors.WrapTransient(err, "Server", "Stop", "close HTTP server")
		}
	}
	return nil
}

// Address returns the metrics URL
func (s *Server) Address() string {
	scheme := "http"
	if s.tls != nil {
		scheme = "https"
	}
	host := s.addr
	if len(host) > 0 && host[0] == ':' {
		host = "localhost" + host
	}
	return fmt.Sprintf("%s://%s%s", scheme, host, s.path)
}
