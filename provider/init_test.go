package provider

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quinlan2018/SDMX/config"
	"github.com/Quinlan2018/SDMX/errors"
)

type staticDiscoverer []Discovered

func (s staticDiscoverer) Discover() []Discovered { return s }

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestInitialize_Builtins(t *testing.T) {
	r := Initialize(nil, nil, nil)

	assert.Equal(t, len(builtins), r.Len())
	for _, name := range BuiltinNames() {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}

	ecb, _ := r.Get("ECB")
	assert.Equal(t, "https://sdw-wsrest.ecb.europa.eu/service", ecb.Endpoint.String())
	assert.True(t, ecb.SupportsCompression)
	assert.False(t, ecb.IsCustom)
	assert.Equal(t, "European Central Bank", ecb.Description)

	oecd, _ := r.Get("OECD_RESTR")
	assert.Nil(t, oecd.Endpoint)
	assert.True(t, oecd.NeedsCredentials)
	assert.True(t, oecd.IsCustom)
}

func TestInitialize_Overrides(t *testing.T) {
	src := config.NewMapSource(map[string]string{
		"providers.ECB.endpoint":              "https://data-api.ecb.europa.eu/service",
		"providers.ECB.supportsCompression":   "false",
		"providers.ECB.needsURLEncoding":      "TRUE",
		"providers.ECB.description":           "ECB data portal",
		"providers.ISTAT.name":                "ISTAT_NEW",
		"providers.OECD.endpoint":             "https://sdmx.oecd.org/public/rest",
		"providers.INSEE.supportsCompression": "perhaps",
	})
	logger, logs := captureLogger()

	r := Initialize(src, nil, logger)

	ecb, ok := r.Get("ECB")
	require.True(t, ok)
	assert.Equal(t, "https://data-api.ecb.europa.eu/service", ecb.Endpoint.String())
	assert.False(t, ecb.SupportsCompression)
	assert.True(t, ecb.NeedsURLEncoding)
	assert.Equal(t, "ECB data portal", ecb.Description)

	_, ok = r.Get("ISTAT")
	assert.False(t, ok, "renamed provider is registered under its configured name")
	istat, ok := r.Get("ISTAT_NEW")
	require.True(t, ok)
	assert.Equal(t, "http://sdmx.istat.it/SDMXWS/rest", istat.Endpoint.String())

	oecd, _ := r.Get("OECD")
	require.NotNil(t, oecd.Endpoint)
	assert.True(t, oecd.IsCustom)

	insee, _ := r.Get("INSEE")
	assert.True(t, insee.SupportsCompression, "unparseable flag keeps the default")
	assert.Contains(t, logs.String(), "Ignoring provider flag")
}

func TestInitialize_MalformedBuiltinSkipped(t *testing.T) {
	src := config.NewMapSource(map[string]string{
		"providers.WITS.endpoint": "not a url",
	})
	logger, logs := captureLogger()

	r := Initialize(src, nil, logger)

	_, ok := r.Get("WITS")
	assert.False(t, ok)
	assert.Equal(t, len(builtins)-1, r.Len())
	assert.Contains(t, logs.String(), "malformed endpoint")

	t.Run("blank override", func(t *testing.T) {
		src := config.NewMapSource(map[string]string{
			"providers.ECB.endpoint":  "",
			"providers.OECD.endpoint": "",
		})
		logger, logs := captureLogger()

		r := Initialize(src, nil, logger)

		_, ok := r.Get("ECB")
		assert.False(t, ok, "REST provider without endpoint is not registered")
		assert.Contains(t, logs.String(), "provider=ECB")

		oecd, ok := r.Get("OECD")
		require.True(t, ok, "custom provider keeps working without endpoint")
		assert.Nil(t, oecd.Endpoint)
	})
}

func TestInitialize_Discovered(t *testing.T) {
	disc := staticDiscoverer{
		{Name: "PLUGIN", NeedsCredentials: true},
		{Name: "ILO"},
	}

	r := Initialize(nil, disc, nil)

	p, ok := r.Get("PLUGIN")
	require.True(t, ok)
	assert.True(t, p.NeedsCredentials)
	assert.False(t, p.NeedsURLEncoding)
	assert.False(t, p.SupportsCompression)
	assert.Nil(t, p.Endpoint)
	assert.True(t, p.IsCustom)
	assert.Equal(t, "PLUGIN", p.Description)

	ilo, _ := r.Get("ILO")
	assert.Equal(t, "ILO", ilo.Description, "discovered implementation replaces the built-in entry")
}

func TestInitialize_External(t *testing.T) {
	src := config.NewMapSource(map[string]string{
		"providers.external":              " MINE , NOURL,BAD ",
		"providers.MINE.endpoint":         "https://sdmx.example.org/rest",
		"providers.MINE.needsCredentials": "true",
		"providers.MINE.description":      "My provider",
		"providers.BAD.endpoint":          "://nope",
	})
	logger, logs := captureLogger()

	r := Initialize(src, nil, logger)

	mine, ok := r.Get("MINE")
	require.True(t, ok)
	assert.Equal(t, "https://sdmx.example.org/rest", mine.Endpoint.String())
	assert.True(t, mine.NeedsCredentials)
	assert.False(t, mine.NeedsURLEncoding)
	assert.False(t, mine.SupportsCompression)
	assert.Equal(t, "My provider", mine.Description)
	assert.False(t, mine.IsCustom)

	_, ok = r.Get("NOURL")
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "No URL has been configured for the external provider: 'NOURL'. It will be skipped.")

	_, ok = r.Get("BAD")
	assert.False(t, ok)
}

func TestInitialize_ExternalNameDefaults(t *testing.T) {
	src := config.NewMapSource(map[string]string{
		"providers.external":     "EXT",
		"providers.EXT.endpoint": "http://ext.example.org",
		"providers.EXT.name":     "",
	})

	r := Initialize(src, nil, nil)

	_, ok := r.Get("EXT")
	assert.False(t, ok, "an explicitly empty name fails validation")

	src.Set("providers.EXT.name", "RENAMED")
	r = Initialize(src, nil, nil)
	p, ok := r.Get("RENAMED")
	require.True(t, ok)
	assert.Equal(t, "EXT", p.Description)
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://sdw-wsrest.ecb.europa.eu/service", false},
		{"ftp://example.org", false},
		{"example.org/rest", true},
		{"http://", true},
		{"://nope", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := ParseEndpoint(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, errors.ErrMalformedEndpoint))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, u.String())
		})
	}
}
