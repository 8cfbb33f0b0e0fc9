package rest

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quinlan2018/SDMX/errors"
)

func TestNew_Validation(t *testing.T) {
	ftp, err := url.Parse("ftp://files.example.org/sdmx")
	require.NoError(t, err)

	tests := []struct {
		name string
		opts Options
	}{
		{"missing name", Options{Endpoint: &url.URL{Scheme: "http", Host: "h"}}},
		{"missing endpoint", Options{Name: "X"}},
		{"non http scheme", Options{Name: "X", Endpoint: ftp}},
		{"missing host", Options{Name: "X", Endpoint: &url.URL{Scheme: "https", Path: "/rest"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestClient_Capabilities(t *testing.T) {
	c := newTestClient(t, "HTTPS://user:pw@sdw-wsrest.ecb.europa.eu/service", Options{
		Name:                "ECB",
		NeedsURLEncoding:    true,
		SupportsCompression: true,
		Dialect:             DialectREST21,
	})

	assert.Equal(t, "ECB", c.Name())
	assert.False(t, c.NeedsCredentials())
	assert.True(t, c.NeedsURLEncoding())
	assert.True(t, c.SupportsCompression())
	assert.Equal(t, "rest21", c.Dialect().String())
	assert.Equal(t, "dotstat", DialectDotStat.String())
}

func TestClient_EndpointIsCopied(t *testing.T) {
	c := newTestClient(t, "https://user:pw@example.org/rest", Options{})

	ep := c.Endpoint()
	ep.Host = "mutated.example.org"
	assert.Equal(t, "example.org", c.Endpoint().Host)

	c.SetEndpoint(nil)
	assert.Equal(t, "example.org", c.Endpoint().Host, "nil override is ignored")

	c.SetEndpoint(&url.URL{Scheme: "ftp", Host: "other.example.org"})
	assert.Equal(t, "example.org", c.Endpoint().Host, "non-http override is ignored")
}
