package client

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"sync"

	"github.com/Quinlan2018/SDMX/errors"
	"github.com/Quinlan2018/SDMX/provider"
)

// Client is the generic SDMX client capability every provider
// implementation offers.
type Client interface {
	Name() string
	Endpoint() *url.URL
	SetEndpoint(endpoint *url.URL)
	NeedsCredentials() bool
}

// Constructor builds a provider implementation. Constructors must not
// perform I/O.
type Constructor func(deps Dependencies) (Client, error)

// Registration describes one provider implementation.
type Registration struct {
	Name        string      // provider name used for lookup
	Description string      // human-readable description
	New         Constructor // constructor (required)

	// Discoverable implementations are added to the provider registry by
	// provider.Initialize even when the built-in table does not list them.
	Discoverable bool
}

// Catalog maps provider names to implementation constructors. It is safe
// for concurrent use; registration normally happens once at startup.
type Catalog struct {
	entries map[string]Registration
	logger  *slog.Logger
	mu      sync.RWMutex
}

// NewCatalog creates an empty catalog. logger may be nil.
func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		entries: make(map[string]Registration),
		logger:  logger,
	}
}

// Register adds an implementation. Names must be unique.
func (c *Catalog) Register(reg Registration) error {
	if reg.Name == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Catalog", "Register", "name validation")
	}
	if reg.New == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Catalog", "Register", "constructor validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[reg.Name]; exists {
		msg := fmt.Errorf("implementation '%s' is already registered", reg.Name)
		return errors.WrapInvalid(msg, "Catalog", "Register", "duplicate check")
	}
	c.entries[reg.Name] = reg
	return nil
}

// Get returns the registration for name.
func (c *Catalog) Get(name string) (Registration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reg, ok := c.entries[name]
	return reg, ok
}

// Names returns the registered names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registrations.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// New constructs the implementation registered as name. A missing
// registration yields errors.ErrNotImplemented; a panicking constructor is
// reported as an error.
func (c *Catalog) New(name string, deps Dependencies) (cl Client, err error) {
	reg, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w for provider '%s'", errors.ErrNotImplemented, name)
	}

	defer func() {
		if r := recover(); r != nil {
			cl = nil
			err = fmt.Errorf("constructor for '%s' panicked: %v", name, r)
		}
	}()

	cl, err = reg.New(deps)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, stderrors.New("constructor returned no client")
	}
	return cl, nil
}

// Discover constructs every discoverable registration and reports its
// credential requirement. Implementations that fail to construct are
// logged and left out.
func (c *Catalog) Discover() []provider.Discovered {
	var out []provider.Discovered
	for _, name := range c.Names() {
		reg, ok := c.Get(name)
		if !ok || !reg.Discoverable {
			continue
		}
		cl, err := c.New(name, Dependencies{Logger: c.logger})
		if err != nil {
			c.logger.Warn("Skipping provider implementation", "provider", name, "error", err)
			continue
		}
		out = append(out, provider.Discovered{Name: name, NeedsCredentials: cl.NeedsCredentials()})
	}
	return out
}

var _ provider.Discoverer = (*Catalog)(nil)
