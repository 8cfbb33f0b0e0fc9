package testutil

import (
	"errors"
	"net/url"
	"sync"
)

// ErrStubFailure is returned by failing stub constructors.
var ErrStubFailure = errors.New("stub constructor failure")

// StubClient is a provider client for testing. It satisfies the generic
// client capability without performing any transport.
type StubClient struct {
	mu sync.Mutex

	name             string
	endpoint         *url.URL
	needsCredentials bool

	// Call counts for verification
	SetEndpointCalls int
}

// NewStubClient creates a stub named name. rawEndpoint may be empty.
func NewStubClient(name, rawEndpoint string, needsCredentials bool) *StubClient {
	s := &StubClient{name: name, needsCredentials: needsCredentials}
	if rawEndpoint != "" {
		if u, err := url.Parse(rawEndpoint); err == nil {
			s.endpoint = u
		}
	}
	return s
}

// Name returns the stub's provider name.
func (s *StubClient) Name() string { return s.name }

// NeedsCredentials returns the configured flag.
func (s *StubClient) NeedsCredentials() bool { return s.needsCredentials }

// Endpoint returns a copy of the current endpoint, or nil.
func (s *StubClient) Endpoint() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.endpoint == nil {
		return nil
	}
	u := *s.endpoint
	return &u
}

// SetEndpoint records the override.
func (s *StubClient) SetEndpoint(u *url.URL) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SetEndpointCalls++
	if u == nil {
		s.endpoint = nil
		return
	}
	c := *u
	s.endpoint = &c
}
