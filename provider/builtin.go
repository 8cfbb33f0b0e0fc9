package provider

// builtin describes a provider compiled into the registry. Endpoint is empty
// for providers whose implementation supplies its own default.
type builtin struct {
	name                string
	endpoint            string
	needsCredentials    bool
	needsURLEncoding    bool
	supportsCompression bool
	description         string
	isCustom            bool
}

var builtins = []builtin{
	{name: "ECB", endpoint: "https://sdw-wsrest.ecb.europa.eu/service", supportsCompression: true,
		description: "European Central Bank"},
	{name: "ISTAT", endpoint: "http://sdmx.istat.it/SDMXWS/rest",
		description: "Italian National Institute of Statistics"},
	{name: "ISTAT_CENSUS_POP", endpoint: "http://sdmx.istat.it/WS_CENSPOP/rest",
		description: "ISTAT - Population and housing census 2011"},
	{name: "ISTAT_CENSUS_AGR", endpoint: "http://sdmx.istat.it/WS_CENSAGR/rest",
		description: "ISTAT - Agricultural census 2010"},
	{name: "ISTAT_CENSUS_IND", endpoint: "http://sdmx.istat.it/WS_CIS/rest",
		description: "ISTAT - Industry and services census 2011"},
	{name: "INSEE", endpoint: "http://www.bdm.insee.fr/series/sdmx", supportsCompression: true,
		description: "National Institute of Statistics and Economic Studies"},
	{name: "UNDATA", endpoint: "http://data.un.org/WS/rest",
		description: "Data access system to UN databases"},
	{name: "WITS", endpoint: "http://wits.worldbank.org/API/V1/SDMX/V21/rest",
		description: "World Integrated Trade Solutions"},
	{name: "INEGI", endpoint: "http://sdmx.snieg.mx/service/Rest",
		description: "Instituto Nacional de Estadistica y Geografia"},

	// Resolved through their registered implementation.
	{name: "OECD", isCustom: true,
		description: "The Organisation for Economic Co-operation and Development"},
	{name: "OECD_RESTR", isCustom: true, needsCredentials: true,
		description: "The Organisation for Economic Co-operation and Development, RESTRICTED ACCESS"},
	{name: "ILO", isCustom: true, description: "International Labour Organization"},
	{name: "IMF", isCustom: true, description: "International Monetary Fund"},
	{name: "ABS", isCustom: true, description: "Australian Bureau of Statistics"},
	{name: "WB", isCustom: true, description: "World Bank (BETA provider)"},
	{name: "NBB", isCustom: true, description: "National Bank Belgium"},
	{name: "UIS", isCustom: true, description: "Unesco Institute for Statistics"},
	{name: "EUROSTAT", isCustom: true, description: "Eurostat"},
	{name: "IMF2", isCustom: true, description: "New IMF endpoint"},
}

// BuiltinNames returns the names of the compiled-in providers in table order.
func BuiltinNames() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.name
	}
	return names
}
