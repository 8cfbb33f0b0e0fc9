package provider

import (
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestRegistry_AddReplaces(t *testing.T) {
	r := NewRegistry()
	r.Add("P", mustURL(t, "http://first.example.org"), false, false, false, "first", false)
	r.Add("P", mustURL(t, "https://second.example.org"), true, true, true, "second", true)

	all := r.Providers()
	require.Len(t, all, 1)

	p := all["P"]
	assert.Equal(t, "https://second.example.org", p.Endpoint.String())
	assert.True(t, p.NeedsCredentials)
	assert.True(t, p.NeedsURLEncoding)
	assert.True(t, p.SupportsCompression)
	assert.Equal(t, "second", p.Description)
	assert.True(t, p.IsCustom)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := NewRegistry()
	r.AddProvider(Provider{Name: "P", Endpoint: mustURL(t, "http://a.example.org/rest")})

	got, ok := r.Get("P")
	require.True(t, ok)
	got.Endpoint.Host = "evil.example.org"
	got.Description = "changed"

	snap := r.Providers()
	snap["P"].Endpoint.Path = "/other"
	delete(snap, "P")

	again, ok := r.Get("P")
	require.True(t, ok)
	assert.Equal(t, "http://a.example.org/rest", again.Endpoint.String())
	assert.Empty(t, again.Description)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_NamesAndRemove(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"C", "A", "B"} {
		r.AddProvider(Provider{Name: n})
	}

	assert.Equal(t, []string{"A", "B", "C"}, r.Names())
	assert.True(t, r.Remove("B"))
	assert.False(t, r.Remove("B"))
	assert.Equal(t, []string{"A", "C"}, r.Names())

	_, ok := r.Get("B")
	assert.False(t, ok)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.AddProvider(Provider{Name: "P", Description: "x"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Providers()
				_, _ = r.Get("P")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
}
