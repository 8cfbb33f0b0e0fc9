package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Quinlan2018/SDMX/errors"
)

// DefaultEnvPrefix is the environment prefix used by NewLoader.
// providers.ECB.endpoint is overridden by SDMX_PROVIDERS_ECB_ENDPOINT.
const DefaultEnvPrefix = "SDMX"

// Config is the merged result of all loaded layers plus environment
// overrides. It implements Source.
type Config struct {
	v      *viper.Viper
	layers []string
}

// Lookup implements Source. List values are joined with commas so that
// YAML/JSON sequences read the same as comma separated properties.
func (c *Config) Lookup(key string) (string, bool) {
	if c == nil || c.v == nil || !c.v.IsSet(key) {
		return "", false
	}
	switch val := c.v.Get(key).(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
		return strings.Join(items, ","), true
	case []string:
		return strings.Join(val, ","), true
	case map[string]any:
		// a section, not a value
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

// Layers returns the files merged into this configuration, in order.
func (c *Config) Layers() []string {
	out := make([]string, len(c.layers))
	copy(out, c.layers)
	return out
}

// Keys returns every leaf key known from files and defaults, sorted.
func (c *Config) Keys() []string {
	keys := c.v.AllKeys()
	sort.Strings(keys)
	return keys
}

// HTTPConfig holds the transport settings shared by all provider clients.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	RateLimit float64       `mapstructure:"rateLimit"` // requests per second, 0 disables
	Burst     int           `mapstructure:"burst"`
	UserAgent string        `mapstructure:"userAgent"`
	Proxy     ProxyConfig   `mapstructure:"proxy"`
	TLS       TLSConfig     `mapstructure:"tls"`
}

// ProxyConfig configures the per-host proxy policy.
type ProxyConfig struct {
	URL   string   `mapstructure:"url"`
	Hosts []string `mapstructure:"hosts"`
}

// TLSConfig configures client TLS towards provider endpoints.
type TLSConfig struct {
	CAFiles            []string `mapstructure:"caFiles"`
	MinVersion         string   `mapstructure:"minVersion"`
	InsecureSkipVerify bool     `mapstructure:"insecureSkipVerify"`
}

// HTTP decodes the "http" section. Keys are read one by one so that a
// partial section in a layer still falls back to the loader defaults.
func (c *Config) HTTP() (HTTPConfig, error) {
	hc := HTTPConfig{
		Timeout:   c.v.GetDuration("http.timeout"),
		Retries:   c.v.GetInt("http.retries"),
		RateLimit: c.v.GetFloat64("http.rateLimit"),
		Burst:     c.v.GetInt("http.burst"),
		UserAgent: c.v.GetString("http.userAgent"),
		Proxy: ProxyConfig{
			URL:   c.v.GetString("http.proxy.url"),
			Hosts: c.v.GetStringSlice("http.proxy.hosts"),
		},
		TLS: TLSConfig{
			CAFiles:            c.v.GetStringSlice("http.tls.caFiles"),
			MinVersion:         c.v.GetString("http.tls.minVersion"),
			InsecureSkipVerify: c.v.GetBool("http.tls.insecureSkipVerify"),
		},
	}
	if err := hc.Validate(); err != nil {
		return hc, errors.WrapInvalid(err, "Config", "HTTP", "validate http section")
	}
	return hc, nil
}

// Validate checks the transport settings.
func (hc HTTPConfig) Validate() error {
	if hc.Timeout < 0 {
		return fmt.Errorf("%w: http.timeout must not be negative", errors.ErrInvalidConfig)
	}
	if hc.Retries < 0 {
		return fmt.Errorf("%w: http.retries must not be negative", errors.ErrInvalidConfig)
	}
	if hc.RateLimit < 0 {
		return fmt.Errorf("%w: http.rateLimit must not be negative", errors.ErrInvalidConfig)
	}
	switch hc.TLS.MinVersion {
	case "", "1.2", "1.3":
	default:
		return fmt.Errorf("%w: http.tls.minVersion must be 1.2 or 1.3", errors.ErrInvalidConfig)
	}
	return nil
}

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers    []string
	envPrefix string
	defaults  map[string]any
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:    []string{},
		envPrefix: DefaultEnvPrefix,
		defaults: map[string]any{
			"http.timeout":   30 * time.Second,
			"http.retries":   3,
			"http.rateLimit": 0.0,
			"http.burst":     1,
		},
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier
// ones key by key. Supported formats: .properties, .yaml/.yml, .json.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// SetEnvPrefix changes the environment prefix; an empty prefix disables
// environment overrides.
func (l *Loader) SetEnvPrefix(prefix string) {
	l.envPrefix = prefix
}

// SetDefault registers a value used when no layer or variable provides key.
func (l *Loader) SetDefault(key string, value any) {
	l.defaults[key] = value
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	for _, path := range l.layers {
		if err := l.mergeLayer(v, path); err != nil {
			return nil, err
		}
	}

	if l.envPrefix != "" {
		v.SetEnvPrefix(l.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	layers := make([]string, len(l.layers))
	copy(layers, l.layers)
	return &Config{v: v, layers: layers}, nil
}

func (l *Loader) mergeLayer(v *viper.Viper, path string) error {
	data, err := safeReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.WrapFatal(fmt.Errorf("%w: %w", errors.ErrConfigNotFound, err), "Loader", "Load", "read "+path)
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	format, err := layerFormat(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if format == "json" {
		if err := validateJSONDepth(data); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	v.SetConfigType(format)
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to load %s: %w: %w", path, errors.ErrInvalidConfig, err)
	}
	return nil
}
