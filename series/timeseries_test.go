package series

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quinlan2018/SDMX/errors"
	"github.com/Quinlan2018/SDMX/testutil"
)

func quietSeries(dataflow string) (*TimeSeries, *bytes.Buffer) {
	var buf bytes.Buffer
	ts := NewTimeSeries(dataflow)
	ts.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return ts, &buf
}

func TestAddObservation_Scenario(t *testing.T) {
	ts, logs := quietSeries("")

	ts.AddObservation("1.5", "2020-Q1", map[string]string{"OBS_STATUS": "A"})
	ts.AddObservation("", "2020-Q2", nil)

	values := ts.Observations()
	require.Len(t, values, 2)
	assert.Equal(t, 1.5, values[0])
	assert.True(t, math.IsNaN(values[1]))

	assert.Equal(t, []string{"2020-Q1", "2020-Q2"}, ts.TimeSlots())

	status, ok := ts.ObsLevelAttributes("OBS_STATUS")
	require.True(t, ok)
	assert.Equal(t, []string{"A", ""}, status)

	assert.Contains(t, logs.String(), "Missing observation")
}

func TestAddObservation_OutOfRange(t *testing.T) {
	ts, logs := quietSeries("EXR")

	ts.AddObservation("1.5", "2020-01", nil)
	ts.AddObservation("1e400", "2020-02", nil)
	ts.AddObservation("-1e400", "2020-03", nil)

	values := ts.Observations()
	assert.Equal(t, 1.5, values[0])
	assert.True(t, math.IsInf(values[1], 1))
	assert.True(t, math.IsInf(values[2], -1))
	assert.NotContains(t, logs.String(), "Invalid observation")
}

func TestAddObservation_Substitutions(t *testing.T) {
	ts, logs := quietSeries("EXR")
	ts.AddDimension("FREQ", "M")

	ts.AddObservation("abc", "2020-01", nil)
	ts.AddObservation("2", "", nil)
	ts.AddObservation(" 3 ", "2020-03", nil)

	values := ts.Observations()
	assert.True(t, math.IsNaN(values[0]))
	assert.Equal(t, []float64{2, 3}, values[1:])
	assert.Equal(t, []string{"2020-01", "", "2020-03"}, ts.TimeSlots())

	out := logs.String()
	assert.Contains(t, out, "Invalid observation")
	assert.Contains(t, out, "not a well formed time series")
	assert.Contains(t, out, "EXR.M")
}

func TestAddObservation_SporadicAttributes(t *testing.T) {
	ts, _ := quietSeries("")

	ts.AddObservation("1", "p1", nil)
	ts.AddObservation("2", "p2", map[string]string{"OBS_CONF": "F"})
	ts.AddObservation("3", "p3", map[string]string{"OBS_STATUS": "E", "OBS_CONF": "C"})
	ts.AddObservation("4", "p4", nil)

	assert.Equal(t, []string{"OBS_CONF", "OBS_STATUS"}, ts.ObsLevelAttributeNames())

	conf, _ := ts.ObsLevelAttributes("OBS_CONF")
	assert.Equal(t, []string{"", "F", "C", ""}, conf)

	status, _ := ts.ObsLevelAttributes("OBS_STATUS")
	assert.Equal(t, []string{"", "", "E", ""}, status)

	_, ok := ts.ObsLevelAttributes("UNKNOWN")
	assert.False(t, ok)
}

func TestStatus_Legacy(t *testing.T) {
	ts, _ := quietSeries("")
	assert.Empty(t, ts.Status())

	ts.AddObservation("1", "p1", nil)
	ts.AddObservation("2", "p2", map[string]string{StatusAttribute: "A"})
	ts.AddObservation("3", "p3", map[string]string{StatusAttribute: ""})

	assert.Equal(t, []string{"A", ""}, ts.Status())
}

func TestSetObservations(t *testing.T) {
	ts, _ := quietSeries("")
	ts.AddObservation("1", "p1", nil)
	ts.AddObservation("2", "p2", nil)

	err := ts.SetObservations([]float64{9})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrStructure))

	var se *errors.StructureError
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, 1, se.Got)
	assert.Equal(t, 2, se.Want)
	assert.Equal(t, []float64{1, 2}, ts.Observations(), "failed replacement leaves data untouched")

	require.NoError(t, ts.SetObservations([]float64{10, 20}))
	assert.Equal(t, []float64{10, 20}, ts.Observations())
}

func TestSetTimeSlots(t *testing.T) {
	ts, _ := quietSeries("")
	ts.AddObservation("1", "p1", nil)

	err := ts.SetTimeSlots([]string{"a", "b"})
	assert.True(t, stderrors.Is(err, errors.ErrStructure))
	assert.Equal(t, []string{"p1"}, ts.TimeSlots())

	require.NoError(t, ts.SetTimeSlots([]string{"2020"}))
	assert.Equal(t, []string{"2020"}, ts.TimeSlots())

	empty := NewTimeSeries("")
	assert.NoError(t, empty.SetTimeSlots(nil))
	assert.NoError(t, empty.SetObservations([]float64{}))
}

func TestReverse(t *testing.T) {
	ts, _ := quietSeries("")
	ts.AddObservation("1", "p1", map[string]string{"A": "x"})
	ts.AddObservation("2", "p2", nil)
	ts.AddObservation("3", "p3", map[string]string{"B": "y"})

	ts.Reverse()

	assert.Equal(t, []float64{3, 2, 1}, ts.Observations())
	assert.Equal(t, []string{"p3", "p2", "p1"}, ts.TimeSlots())
	a, _ := ts.ObsLevelAttributes("A")
	b, _ := ts.ObsLevelAttributes("B")
	assert.Equal(t, []string{"", "", "x"}, a)
	assert.Equal(t, []string{"y", "", ""}, b)
}

func TestName(t *testing.T) {
	t.Run("synthesized", func(t *testing.T) {
		ts := NewTimeSeries("X")
		require.NoError(t, ts.AddDimensionToken("A=1"))
		require.NoError(t, ts.AddDimensionToken("B = 2"))
		assert.Equal(t, "X.1.2", ts.Name())
	})

	t.Run("without dataflow", func(t *testing.T) {
		ts := NewTimeSeries("")
		ts.AddDimension("A", "1")
		ts.AddDimension("B", "2")
		assert.Equal(t, "1.2", ts.Name())
	})

	t.Run("without dimensions", func(t *testing.T) {
		assert.Equal(t, "", NewTimeSeries("X").Name())
	})

	t.Run("explicit", func(t *testing.T) {
		ts := NewTimeSeries("X")
		ts.AddDimension("A", "1")
		ts.SetName("custom")
		assert.Equal(t, "custom", ts.Name())
	})
}

func TestDimensionsAndAttributes(t *testing.T) {
	ts := NewTimeSeries("EXR")
	ts.SetFrequency("M")
	ts.SetDimensions([]KeyValue{{"FREQ", "M"}, {"CURRENCY", "USD"}})
	require.NoError(t, ts.AddAttributeToken("TITLE = Rate = USD/EUR"))
	ts.AddAttribute("UNIT", "USD")

	assert.Error(t, ts.AddAttributeToken("broken"))
	assert.Error(t, ts.AddDimensionToken("=x"))

	v, ok := ts.DimensionValue("CURRENCY")
	assert.True(t, ok)
	assert.Equal(t, "USD", v)
	_, ok = ts.DimensionValue("REF_AREA")
	assert.False(t, ok)

	v, ok = ts.AttributeValue("TITLE")
	assert.True(t, ok)
	assert.Equal(t, "Rate = USD/EUR", v)

	assert.Equal(t, []string{"FREQ=M", "CURRENCY=USD"}, ts.DimensionTokens())
	assert.Equal(t, []string{"TITLE=Rate = USD/EUR", "UNIT=USD"}, ts.AttributeTokens())
	assert.Equal(t, "EXR", ts.Dataflow())
	assert.Equal(t, "M", ts.Frequency())

	dims := ts.Dimensions()
	dims[0].Value = "Q"
	v, _ = ts.DimensionValue("FREQ")
	assert.Equal(t, "M", v, "accessors return copies")

	attrs := ts.Attributes()
	assert.Len(t, attrs, 2)
}

func TestObservationAccess(t *testing.T) {
	ts, _ := quietSeries("")
	ts.AddObservation("1", "p1", map[string]string{"OBS_STATUS": "A"})
	ts.AddObservation("2", "", nil)
	ts.AddObservation("3", "p3", map[string]string{"OBS_CONF": "F"})

	o, err := ts.Observation(0)
	require.NoError(t, err)
	assert.Equal(t, "p1", o.TimeSlot())
	assert.Equal(t, 1.0, o.Value())
	assert.Equal(t, map[string]string{"OBS_STATUS": "A"}, o.Attributes())

	_, err = ts.Observation(1)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidParameter), "empty time slot")

	_, err = ts.Observation(3)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidParameter))

	list := ts.ObservationList()
	require.Len(t, list, 2)
	assert.Equal(t, "p3", list[1].TimeSlot())
	assert.Equal(t, map[string]string{"OBS_CONF": "F"}, list[1].Attributes())
}

func TestZeroValueSeries(t *testing.T) {
	var ts TimeSeries
	ts.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Zero(t, ts.Len())
	assert.Empty(t, ts.ObsLevelAttributeNames())
	ts.AddObservation("1", "p1", map[string]string{"A": "x"})
	assert.Equal(t, 1, ts.Len())
}

func TestString(t *testing.T) {
	ts, _ := quietSeries("EXR")
	ts.AddDimension("FREQ", "M")
	ts.AddObservation("1.5", "2020-01", map[string]string{"OBS_STATUS": "A"})

	out := ts.String()
	assert.Contains(t, out, "Name: EXR.M")
	assert.Contains(t, out, "Dimensions: [FREQ=M]")
	assert.Contains(t, out, "VALUES: [1.5]")
	assert.Contains(t, out, "TIMES: [2020-01]")
	assert.Contains(t, out, "OBS_STATUS=[A]")
}

func TestTimeSeries_SporadicAttributes(t *testing.T) {
	ts, _ := quietSeries("QNA")
	for _, obs := range testutil.QuarterlySeries {
		ts.AddObservation(obs.Value, obs.TimeSlot, obs.Attrs)
	}

	require.Equal(t, 4, ts.Len())
	assert.Equal(t, []string{"2020-Q1", "2020-Q2", "2020-Q3", "2020-Q4"}, ts.TimeSlots())

	values := ts.Observations()
	assert.Equal(t, 1.5, values[0])
	assert.True(t, math.IsNaN(values[1]))
	assert.Equal(t, 2.25, values[2])
	assert.True(t, math.IsNaN(values[3]))

	assert.Equal(t, []string{"OBS_STATUS", "OBS_CONF"}, ts.ObsLevelAttributeNames())

	status, ok := ts.ObsLevelAttributes("OBS_STATUS")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "", "", "E"}, status)

	conf, ok := ts.ObsLevelAttributes("OBS_CONF")
	require.True(t, ok)
	assert.Equal(t, []string{"", "", "F", "C"}, conf)

	assert.Equal(t, []string{"A", "E"}, ts.Status())
}
