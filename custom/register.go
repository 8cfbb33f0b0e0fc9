// Package custom registers the provider implementations resolved by name
// rather than by registry endpoint.
package custom

import (
	stderrors "errors"
	"net/url"

	"github.com/Quinlan2018/SDMX/client"
	"github.com/Quinlan2018/SDMX/errors"
	"github.com/Quinlan2018/SDMX/rest"
)

// implementation is one provider whose transport conventions differ from
// the plain SDMX 2.1 defaults of the registry path.
type implementation struct {
	name                string
	description         string
	endpoint            string
	dialect             rest.Dialect
	needsCredentials    bool
	needsURLEncoding    bool
	supportsCompression bool
	discoverable        bool
}

var implementations = []implementation{
	{
		name:        "OECD",
		description: "The Organisation for Economic Co-operation and Development",
		endpoint:    "https://stats.oecd.org/restsdmx/sdmx.ashx",
		dialect:     rest.DialectDotStat,
	},
	{
		name:             "OECD_RESTR",
		description:      "The Organisation for Economic Co-operation and Development, RESTRICTED ACCESS",
		endpoint:         "https://stats.oecd.org/restsdmxRestr/sdmx.ashx",
		dialect:          rest.DialectDotStat,
		needsCredentials: true,
	},
	{
		name:        "ILO",
		description: "International Labour Organization",
		endpoint:    "https://www.ilo.org/sdmx/rest",
		dialect:     rest.DialectREST21,
	},
	{
		name:             "IMF",
		description:      "International Monetary Fund",
		endpoint:         "http://dataservices.imf.org/REST/SDMX_XML.svc",
		dialect:          rest.DialectDotStat,
		needsURLEncoding: true,
	},
	{
		name:        "ABS",
		description: "Australian Bureau of Statistics",
		endpoint:    "http://stat.data.abs.gov.au/restsdmx/sdmx.ashx",
		dialect:     rest.DialectDotStat,
	},
	{
		name:        "WB",
		description: "World Bank (BETA provider)",
		endpoint:    "https://api.worldbank.org/v2/sdmx/rest",
		dialect:     rest.DialectREST21,
	},
	{
		name:        "NBB",
		description: "National Bank Belgium",
		endpoint:    "https://stat.nbb.be/restsdmx/sdmx.ashx",
		dialect:     rest.DialectDotStat,
	},
	{
		name:        "UIS",
		description: "Unesco Institute for Statistics",
		endpoint:    "http://data.uis.unesco.org/RestSDMX/sdmx.ashx",
		dialect:     rest.DialectDotStat,
	},
	{
		name:                "EUROSTAT",
		description:         "Eurostat",
		endpoint:            "https://ec.europa.eu/eurostat/api/dissemination/sdmx/2.1",
		dialect:             rest.DialectREST21,
		supportsCompression: true,
	},
	{
		name:        "IMF2",
		description: "New IMF endpoint",
		endpoint:    "https://sdmxcentral.imf.org/ws/public/sdmxapi/rest",
		dialect:     rest.DialectREST21,
	},
	// Not part of the built-in provider table; added to the registry
	// through discovery.
	{
		name:         "BIS",
		description:  "Bank for International Settlements",
		endpoint:     "https://stats.bis.org/api/v1",
		dialect:      rest.DialectREST21,
		discoverable: true,
	},
}

// Names returns the provider names registered by Register, in registration
// order.
func Names() []string {
	names := make([]string, len(implementations))
	for i, impl := range implementations {
		names[i] = impl.name
	}
	return names
}

// Register adds every implementation to catalog.
func Register(catalog *client.Catalog) error {
	if catalog == nil {
		return errors.WrapFatal(
			stderrors.New("catalog cannot be nil"),
			"custom", "Register", "catalog validation")
	}

	for _, impl := range implementations {
		endpoint, err := url.Parse(impl.endpoint)
		if err != nil {
			return errors.WrapFatal(err, "custom", "Register", "parse default endpoint of "+impl.name)
		}
		if err := catalog.Register(client.Registration{
			Name:         impl.name,
			Description:  impl.description,
			New:          impl.constructor(endpoint),
			Discoverable: impl.discoverable,
		}); err != nil {
			return errors.WrapInvalid(err, "custom", "Register", impl.name+" registration")
		}
	}
	return nil
}

func (impl implementation) constructor(endpoint *url.URL) client.Constructor {
	return func(deps client.Dependencies) (client.Client, error) {
		opts := deps.RESTOptions(impl.name, endpoint)
		opts.Dialect = impl.dialect
		opts.NeedsCredentials = impl.needsCredentials
		opts.NeedsURLEncoding = impl.needsURLEncoding
		opts.SupportsCompression = impl.supportsCompression
		return rest.New(opts)
	}
}
