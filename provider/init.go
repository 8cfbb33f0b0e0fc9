package provider

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Quinlan2018/SDMX/config"
	"github.com/Quinlan2018/SDMX/errors"
)

// ExternalKey lists the comma separated ids of user-declared providers.
const ExternalKey = "providers.external"

// Discovered is a provider implementation found through a Discoverer.
type Discovered struct {
	Name             string
	NeedsCredentials bool
}

// Discoverer enumerates provider implementations that advertise the generic
// client capability without being named in the built-in table.
type Discoverer interface {
	Discover() []Discovered
}

// externalSettings are the configured fields of one external provider.
type externalSettings struct {
	ID                  string `validate:"required"`
	Name                string `validate:"required"`
	Endpoint            string `validate:"required,url"`
	NeedsCredentials    bool
	NeedsURLEncoding    bool
	SupportsCompression bool
	Description         string
}

// Initialize builds a registry from, in order: the built-in table overridden
// by providers.<NAME>.<field> keys, the implementations reported by disc,
// and the providers listed under providers.external. src, disc and logger
// may be nil. Bad entries are logged and skipped; Initialize never fails.
func Initialize(src config.Source, disc Discoverer, logger *slog.Logger) *Registry {
	if src == nil {
		src = config.Empty
	}
	if logger == nil {
		logger = slog.Default()
	}

	in := &initializer{
		src:      src,
		logger:   logger,
		registry: NewRegistry(),
		validate: validator.New(),
	}

	for _, b := range builtins {
		in.addBuiltin(b)
	}

	if disc != nil {
		for _, d := range disc.Discover() {
			in.registry.AddProvider(Provider{
				Name:             d.Name,
				NeedsCredentials: d.NeedsCredentials,
				Description:      d.Name,
				IsCustom:         true,
			})
			logger.Debug("Registered discovered provider", "provider", d.Name)
		}
	}

	for _, id := range config.List(src, ExternalKey) {
		in.addExternal(id)
	}

	logger.Info("Provider registry initialized", "providers", in.registry.Len())
	return in.registry
}

type initializer struct {
	src      config.Source
	logger   *slog.Logger
	registry *Registry
	validate *validator.Validate
}

func key(name, field string) string {
	return "providers." + name + "." + field
}

func (in *initializer) flag(name, field string, def bool) bool {
	v, err := config.Bool(in.src, key(name, field), def)
	if err != nil {
		in.logger.Warn("Ignoring provider flag", "provider", name, "field", field, "error", err)
	}
	return v
}

func (in *initializer) addBuiltin(b builtin) {
	raw := config.String(in.src, key(b.name, "endpoint"), b.endpoint)

	// Only custom providers may lack an endpoint; a blank override on a
	// REST provider is as unusable as a malformed one.
	if strings.TrimSpace(raw) == "" && !b.isCustom {
		in.logger.Error("Skipping provider with malformed endpoint",
			"provider", b.name, "endpoint", raw, "error", errors.ErrMalformedEndpoint)
		return
	}

	var endpoint *url.URL
	if raw != "" {
		u, err := ParseEndpoint(raw)
		if err != nil {
			in.logger.Error("Skipping provider with malformed endpoint",
				"provider", b.name, "endpoint", raw, "error", err)
			return
		}
		endpoint = u
	}

	in.registry.AddProvider(Provider{
		Name:                config.String(in.src, key(b.name, "name"), b.name),
		Endpoint:            endpoint,
		NeedsCredentials:    in.flag(b.name, "needsCredentials", b.needsCredentials),
		NeedsURLEncoding:    in.flag(b.name, "needsURLEncoding", b.needsURLEncoding),
		SupportsCompression: in.flag(b.name, "supportsCompression", b.supportsCompression),
		Description:         config.String(in.src, key(b.name, "description"), b.description),
		IsCustom:            b.isCustom,
	})
}

func (in *initializer) addExternal(id string) {
	settings := externalSettings{
		ID:                  id,
		Name:                config.String(in.src, key(id, "name"), id),
		Endpoint:            config.String(in.src, key(id, "endpoint"), ""),
		NeedsCredentials:    in.flag(id, "needsCredentials", false),
		NeedsURLEncoding:    in.flag(id, "needsURLEncoding", false),
		SupportsCompression: in.flag(id, "supportsCompression", false),
		Description:         config.String(in.src, key(id, "description"), id),
	}

	if settings.Endpoint == "" {
		in.logger.Warn(fmt.Sprintf("No URL has been configured for the external provider: '%s'. It will be skipped.", id),
			"provider", id)
		return
	}

	if err := in.validate.Struct(settings); err != nil {
		in.logger.Error("Skipping external provider with invalid settings",
			"provider", id, "error", err)
		return
	}

	endpoint, err := ParseEndpoint(settings.Endpoint)
	if err != nil {
		in.logger.Error("Skipping provider with malformed endpoint",
			"provider", id, "endpoint", settings.Endpoint, "error", err)
		return
	}

	in.registry.AddProvider(Provider{
		Name:                settings.Name,
		Endpoint:            endpoint,
		NeedsCredentials:    settings.NeedsCredentials,
		NeedsURLEncoding:    settings.NeedsURLEncoding,
		SupportsCompression: settings.SupportsCompression,
		Description:         settings.Description,
	})
}

// ParseEndpoint parses an absolute provider URL. Any scheme is accepted
// here; the client factory decides which ones it can serve.
func ParseEndpoint(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMalformedEndpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", errors.ErrMalformedEndpoint, raw)
	}
	return u, nil
}
