package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ProviderServer is a fake SDMX endpoint serving canned bodies by path.
type ProviderServer struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	requests []*http.Request
}

// NewProviderServer starts a server closed at the end of the test. Unknown
// paths answer 404.
func NewProviderServer(t testing.TB) *ProviderServer {
	t.Helper()

	ps := &ProviderServer{
		bodies:   make(map[string]string),
		statuses: make(map[string]int),
	}
	ps.Server = httptest.NewServer(http.HandlerFunc(ps.serve))
	t.Cleanup(ps.Close)
	return ps
}

// Respond serves body with status for path.
func (ps *ProviderServer) Respond(path string, status int, body string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.bodies[path] = body
	ps.statuses[path] = status
}

// Requests returns copies of the requests received so far.
func (ps *ProviderServer) Requests() []*http.Request {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]*http.Request(nil), ps.requests...)
}

func (ps *ProviderServer) serve(w http.ResponseWriter, r *http.Request) {
	ps.mu.Lock()
	ps.requests = append(ps.requests, r.Clone(r.Context()))
	body, ok := ps.bodies[r.URL.Path]
	status := ps.statuses[r.URL.Path]
	ps.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
