package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Quinlan2018/SDMX/errors"
)

// DataQuery selects series of one dataflow.
type DataQuery struct {
	// Dataflow is the flow id, optionally qualified as "AGENCY,ID,VERSION".
	Dataflow string
	// Key is the dotted series key, e.g. "M.USD.EUR.SP00.A". Empty selects
	// every series.
	Key string

	StartPeriod  string
	EndPeriod    string
	UpdatedAfter string
	// Detail is one of full, dataonly, serieskeysonly, nodata.
	Detail string
	// LastN limits each series to its last N observations when positive.
	LastN int
}

// DataURL builds the data request for q.
func (c *Client) DataURL(q DataQuery) (*url.URL, error) {
	if strings.TrimSpace(q.Dataflow) == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: dataflow is required", errors.ErrInvalidParameter),
			"Client", "DataURL", "build data url")
	}

	key := c.encodeKey(q.Key)
	params := url.Values{}

	var path string
	switch c.dialect {
	case DialectDotStat:
		if key == "" {
			key = "all"
		}
		path = "GetData/" + q.Dataflow + "/" + key + "/all"
		setParam(params, "startTime", q.StartPeriod)
		setParam(params, "endTime", q.EndPeriod)
	default:
		if key == "" {
			key = "all"
		}
		path = "data/" + q.Dataflow + "/" + key
		setParam(params, "startPeriod", q.StartPeriod)
		setParam(params, "endPeriod", q.EndPeriod)
		setParam(params, "updatedAfter", q.UpdatedAfter)
		setParam(params, "detail", q.Detail)
		if q.LastN > 0 {
			params.Set("lastNObservations", strconv.Itoa(q.LastN))
		}
	}

	return c.resolve(path, params)
}

// DataflowsURL builds the request listing every dataflow of the provider.
func (c *Client) DataflowsURL() (*url.URL, error) {
	if c.dialect == DialectDotStat {
		return c.resolve("GetDataStructure/ALL", nil)
	}
	return c.resolve("dataflow/all/all/latest", nil)
}

// DataStructureURL builds the request for a data structure definition and
// its referenced codelists. Empty agency and version mean all and latest.
func (c *Client) DataStructureURL(agency, id, version string) (*url.URL, error) {
	return c.structureURL("datastructure", agency, id, version, url.Values{"references": {"children"}})
}

// CodelistURL builds the request for one codelist.
func (c *Client) CodelistURL(agency, id, version string) (*url.URL, error) {
	return c.structureURL("codelist", agency, id, version, nil)
}

func (c *Client) structureURL(resource, agency, id, version string, params url.Values) (*url.URL, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %s id is required", errors.ErrInvalidParameter, resource),
			"Client", "structureURL", "build "+resource+" url")
	}
	if c.dialect == DialectDotStat {
		// .Stat serves codelists inside the structure message.
		return c.resolve("GetDataStructure/"+id, nil)
	}
	if agency == "" {
		agency = "all"
	}
	if version == "" {
		version = "latest"
	}
	return c.resolve(resource+"/"+agency+"/"+id+"/"+version, params)
}

// encodeKey percent-encodes the series key for providers that reject raw
// reserved characters. '+' joins alternative values and must be escaped too.
func (c *Client) encodeKey(key string) string {
	key = strings.TrimSpace(key)
	if !c.needsURLEncoding {
		return key
	}
	return strings.ReplaceAll(url.PathEscape(key), "+", "%2B")
}

func (c *Client) resolve(path string, params url.Values) (*url.URL, error) {
	base := c.Endpoint()
	base.RawQuery = ""
	base.Fragment = ""

	raw := strings.TrimRight(base.String(), "/") + "/" + path
	if len(params) > 0 {
		raw += "?" + params.Encode()
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %v", errors.ErrInvalidParameter, err),
			"Client", "resolve", "parse request url")
	}
	return u, nil
}

func setParam(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}
