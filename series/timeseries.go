package series

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/Quinlan2018/SDMX/errors"
)

// StatusAttribute is the observation-level attribute also exposed through
// the legacy Status accessor.
const StatusAttribute = "OBS_STATUS"

// cell is one observation-level attribute slot.
type cell struct {
	value string
	set   bool
}

// row is one observation. attrs is indexed by column; slots past its end
// read as empty.
type row struct {
	timeslot string
	value    float64
	attrs    []cell
}

func (r row) attr(col int) cell {
	if col < len(r.attrs) {
		return r.attrs[col]
	}
	return cell{}
}

// TimeSeries accumulates the observations of one SDMX series together with
// its metadata. Observations are stored as rows holding a slot for every
// observation-level attribute column, so the observation, time slot and
// attribute sequences always have the same length.
//
// A TimeSeries must be filled by a single goroutine. Once filled it may be
// read concurrently. The zero value is ready to use.
type TimeSeries struct {
	name       string
	dataflow   string
	frequency  string
	dimensions []KeyValue
	attributes []KeyValue

	rows     []row
	columns  []string
	colIndex map[string]int

	logger *slog.Logger
}

// NewTimeSeries creates an empty series for dataflow.
func NewTimeSeries(dataflow string) *TimeSeries {
	return &TimeSeries{dataflow: dataflow}
}

// SetLogger sets the logger used to report substituted values. Nil restores
// slog.Default.
func (ts *TimeSeries) SetLogger(logger *slog.Logger) {
	ts.logger = logger
}

func (ts *TimeSeries) log() *slog.Logger {
	if ts.logger == nil {
		return slog.Default()
	}
	return ts.logger
}

// SetName sets an explicit series name, overriding the synthesized one.
func (ts *TimeSeries) SetName(name string) { ts.name = name }

// Dataflow returns the dataflow identifier.
func (ts *TimeSeries) Dataflow() string { return ts.dataflow }

// SetDataflow sets the dataflow identifier.
func (ts *TimeSeries) SetDataflow(dataflow string) { ts.dataflow = dataflow }

// Frequency returns the frequency code.
func (ts *TimeSeries) Frequency() string { return ts.frequency }

// SetFrequency sets the frequency code.
func (ts *TimeSeries) SetFrequency(frequency string) { ts.frequency = frequency }

// Name returns the explicit name if one was set. Otherwise it joins the
// dimension values in their stored order with ".", prefixed by the dataflow
// when there is one. A series without dimensions has an empty name.
func (ts *TimeSeries) Name() string {
	if ts.name != "" {
		return ts.name
	}
	if len(ts.dimensions) == 0 {
		return ""
	}

	var b strings.Builder
	if ts.dataflow != "" {
		b.WriteString(ts.dataflow)
		b.WriteByte('.')
	}
	for i, kv := range ts.dimensions {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(kv.Value)
	}
	return b.String()
}

// AddDimension appends a dimension. Callers must add dimensions in the
// order of the data structure definition.
func (ts *TimeSeries) AddDimension(key, value string) {
	ts.dimensions = append(ts.dimensions, KeyValue{Key: key, Value: value})
}

// AddDimensionToken appends a dimension given as a "key=value" token.
func (ts *TimeSeries) AddDimensionToken(token string) error {
	kv, err := ParseKeyValue(token)
	if err != nil {
		return err
	}
	ts.dimensions = append(ts.dimensions, kv)
	return nil
}

// SetDimensions replaces the dimensions.
func (ts *TimeSeries) SetDimensions(dims []KeyValue) {
	ts.dimensions = clonePairs(dims)
}

// Dimensions returns a copy of the dimensions in stored order.
func (ts *TimeSeries) Dimensions() []KeyValue {
	return clonePairs(ts.dimensions)
}

// DimensionTokens returns the dimensions as "key=value" tokens.
func (ts *TimeSeries) DimensionTokens() []string {
	return tokens(ts.dimensions)
}

// DimensionValue returns the value of the first dimension named code.
func (ts *TimeSeries) DimensionValue(code string) (string, bool) {
	return lookup(ts.dimensions, code)
}

// AddAttribute appends a series-level attribute.
func (ts *TimeSeries) AddAttribute(key, value string) {
	ts.attributes = append(ts.attributes, KeyValue{Key: key, Value: value})
}

// AddAttributeToken appends a series-level attribute given as a
// "key=value" token.
func (ts *TimeSeries) AddAttributeToken(token string) error {
	kv, err := ParseKeyValue(token)
	if err != nil {
		return err
	}
	ts.attributes = append(ts.attributes, kv)
	return nil
}

// SetAttributes replaces the series-level attributes.
func (ts *TimeSeries) SetAttributes(attrs []KeyValue) {
	ts.attributes = clonePairs(attrs)
}

// Attributes returns a copy of the series-level attributes.
func (ts *TimeSeries) Attributes() []KeyValue {
	return clonePairs(ts.attributes)
}

// AttributeTokens returns the series-level attributes as "key=value" tokens.
func (ts *TimeSeries) AttributeTokens() []string {
	return tokens(ts.attributes)
}

// AttributeValue returns the value of the first series-level attribute
// named code.
func (ts *TimeSeries) AttributeValue(code string) (string, bool) {
	return lookup(ts.attributes, code)
}

// AddObservation appends one data point in arrival order. An empty or
// unparseable value is stored as NaN and an empty time slot as "", both
// logged; the point is never rejected. Attribute names seen for the first
// time become new columns whose earlier slots read "".
func (ts *TimeSeries) AddObservation(value, timeslot string, attrs map[string]string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if stderrors.Is(err, strconv.ErrRange) {
		// out of range: ParseFloat already returned ±Inf
		err = nil
	}
	if err != nil {
		v = math.NaN()
		if strings.TrimSpace(value) == "" {
			ts.log().Info("Missing observation, storing NaN", "series", ts.Name(), "timeslot", timeslot)
		} else {
			ts.log().Info("Invalid observation, storing NaN",
				"series", ts.Name(), "timeslot", timeslot, "value", value)
		}
	}

	if timeslot == "" {
		ts.log().Warn("A time slot is missing, this is not a well formed time series",
			"series", ts.Name(), "position", len(ts.rows))
	}

	r := row{timeslot: timeslot, value: v}
	if len(attrs) > 0 {
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			col := ts.column(name)
			if col >= len(r.attrs) {
				r.attrs = append(r.attrs, make([]cell, col+1-len(r.attrs))...)
			}
			r.attrs[col] = cell{value: attrs[name], set: true}
		}
	}

	ts.rows = append(ts.rows, r)
}

// column returns the index of the named column, creating it if needed.
func (ts *TimeSeries) column(name string) int {
	if col, ok := ts.colIndex[name]; ok {
		return col
	}
	if ts.colIndex == nil {
		ts.colIndex = make(map[string]int)
	}
	ts.colIndex[name] = len(ts.columns)
	ts.columns = append(ts.columns, name)
	return len(ts.columns) - 1
}

// Len returns the number of observations.
func (ts *TimeSeries) Len() int {
	return len(ts.rows)
}

// Observations returns a copy of the observed values.
func (ts *TimeSeries) Observations() []float64 {
	out := make([]float64, len(ts.rows))
	for i, r := range ts.rows {
		out[i] = r.value
	}
	return out
}

// TimeSlots returns a copy of the time slot labels.
func (ts *TimeSeries) TimeSlots() []string {
	out := make([]string, len(ts.rows))
	for i, r := range ts.rows {
		out[i] = r.timeslot
	}
	return out
}

// SetObservations replaces all values. values must have exactly one entry
// per time slot; otherwise nothing changes and a StructureError is returned.
func (ts *TimeSeries) SetObservations(values []float64) error {
	if len(values) != len(ts.rows) {
		return errors.NewStructure("observations", len(values), len(ts.rows))
	}
	for i := range ts.rows {
		ts.rows[i].value = values[i]
	}
	return nil
}

// SetTimeSlots replaces all time slot labels. labels must have exactly one
// entry per observation; otherwise nothing changes and a StructureError is
// returned.
func (ts *TimeSeries) SetTimeSlots(labels []string) error {
	if len(labels) != len(ts.rows) {
		return errors.NewStructure("time slots", len(labels), len(ts.rows))
	}
	for i := range ts.rows {
		ts.rows[i].timeslot = labels[i]
	}
	return nil
}

// ObsLevelAttributeNames returns the observation-level attribute names in
// order of first appearance.
func (ts *TimeSeries) ObsLevelAttributeNames() []string {
	return slices.Clone(ts.columns)
}

// ObsLevelAttributes returns the values of the named observation-level
// attribute, one per observation, "" where it was not supplied.
func (ts *TimeSeries) ObsLevelAttributes(name string) ([]string, bool) {
	col, ok := ts.colIndex[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ts.rows))
	for i, r := range ts.rows {
		out[i] = r.attr(col).value
	}
	return out, true
}

// Status returns the OBS_STATUS values in observation order, skipping
// observations that did not carry one.
//
// Deprecated: use ObsLevelAttributes(StatusAttribute), which stays aligned
// with the observations.
func (ts *TimeSeries) Status() []string {
	col, ok := ts.colIndex[StatusAttribute]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(ts.rows))
	for _, r := range ts.rows {
		if c := r.attr(col); c.set {
			out = append(out, c.value)
		}
	}
	return out
}

// Reverse reverses the observation order. Values, time slots and every
// observation-level attribute move together.
func (ts *TimeSeries) Reverse() {
	slices.Reverse(ts.rows)
}

// Observation returns the i-th observation with the attributes supplied for
// it. It fails when i is out of range or the time slot is empty.
func (ts *TimeSeries) Observation(i int) (Observation[float64], error) {
	if i < 0 || i >= len(ts.rows) {
		return Observation[float64]{}, fmt.Errorf("%w: observation index %d out of range [0,%d)",
			errors.ErrInvalidParameter, i, len(ts.rows))
	}
	r := ts.rows[i]

	attrs := make(map[string]string)
	for col, c := range r.attrs {
		if c.set {
			attrs[ts.columns[col]] = c.value
		}
	}
	return NewObservation(r.timeslot, r.value, attrs)
}

// ObservationList returns every observation with a non-empty time slot.
func (ts *TimeSeries) ObservationList() []Observation[float64] {
	out := make([]Observation[float64], 0, len(ts.rows))
	for i := range ts.rows {
		obs, err := ts.Observation(i)
		if err != nil {
			continue
		}
		out = append(out, obs)
	}
	return out
}

func (ts *TimeSeries) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nName: %s", ts.Name())
	fmt.Fprintf(&b, "\nFrequency: %s", ts.frequency)
	fmt.Fprintf(&b, "\nAttributes: %v", ts.AttributeTokens())
	fmt.Fprintf(&b, "\nDimensions: %v", ts.DimensionTokens())
	fmt.Fprintf(&b, "\nVALUES: %v", ts.Observations())
	fmt.Fprintf(&b, "\nTIMES: %v", ts.TimeSlots())
	b.WriteString("\nOBSERVATION ATTRIBUTES: {")
	for i, name := range ts.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		values, _ := ts.ObsLevelAttributes(name)
		fmt.Fprintf(&b, "%s=%v", name, values)
	}
	b.WriteString("}")
	return b.String()
}
