package series

import (
	stderrors "errors"
	"math"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quinlan2018/SDMX/errors"
)

func mustObs[T any](t *testing.T, timeslot string, value T, attrs map[string]string) Observation[T] {
	t.Helper()
	o, err := NewObservation(timeslot, value, attrs)
	require.NoError(t, err)
	return o
}

func TestNewObservation(t *testing.T) {
	t.Run("empty timeslot", func(t *testing.T) {
		_, err := NewObservation("", 1.0, nil)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidParameter))
	})

	t.Run("nil attributes", func(t *testing.T) {
		o := mustObs(t, "2020", 1.0, nil)
		assert.NotNil(t, o.Attributes())
		assert.Empty(t, o.Attributes())
	})

	t.Run("attributes are copied", func(t *testing.T) {
		attrs := map[string]string{"OBS_STATUS": "A"}
		o := mustObs(t, "2020", 1.0, attrs)
		attrs["OBS_STATUS"] = "E"

		got := o.Attributes()
		got["OBS_CONF"] = "F"

		v, ok := o.Attribute("OBS_STATUS")
		assert.True(t, ok)
		assert.Equal(t, "A", v)
		_, ok = o.Attribute("OBS_CONF")
		assert.False(t, ok)
	})
}

func TestMapValue(t *testing.T) {
	o := mustObs(t, "2020-Q1", "1.25", map[string]string{"OBS_STATUS": "P"})

	mapped := MapValue(o, func(s string) float64 {
		f, _ := strconv.ParseFloat(s, 64)
		return f * 2
	})

	assert.Equal(t, 2.5, mapped.Value())
	assert.Equal(t, "2020-Q1", mapped.TimeSlot())
	assert.Equal(t, map[string]string{"OBS_STATUS": "P"}, mapped.Attributes())
	assert.Equal(t, "1.25", o.Value(), "source is untouched")
}

func TestCombine(t *testing.T) {
	a := mustObs(t, "2020-Q1", 3, map[string]string{"OBS_STATUS": "A"})
	b := mustObs(t, "2020-q1", "x", map[string]string{"OBS_STATUS": "E", "OBS_CONF": "F"})

	c, err := Combine(a, b, func(n int, s string) string {
		return strconv.Itoa(n) + s
	})
	require.NoError(t, err)

	assert.Equal(t, "3x", c.Value())
	assert.Equal(t, "2020-Q1", c.TimeSlot())
	assert.Equal(t, map[string]string{"OBS_STATUS": "A"}, c.Attributes())

	other := mustObs(t, "2020-Q2", "y", nil)
	_, err = Combine(a, other, func(n int, s string) string { return s })
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidParameter))
}

type level int16

type label string

func TestValueAsDouble(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		nan    bool
		actual func(t *testing.T) float64
	}{
		{"float64", 1.5, false, func(t *testing.T) float64 { return mustObs(t, "p", 1.5, nil).ValueAsDouble() }},
		{"float32", 0.5, false, func(t *testing.T) float64 { return mustObs(t, "p", float32(0.5), nil).ValueAsDouble() }},
		{"int", 7, false, func(t *testing.T) float64 { return mustObs(t, "p", 7, nil).ValueAsDouble() }},
		{"uint8", 200, false, func(t *testing.T) float64 { return mustObs(t, "p", uint8(200), nil).ValueAsDouble() }},
		{"named int", -3, false, func(t *testing.T) float64 { return mustObs(t, "p", level(-3), nil).ValueAsDouble() }},
		{"numeric string", 3.25, false, func(t *testing.T) float64 { return mustObs(t, "p", " 3.25 ", nil).ValueAsDouble() }},
		{"named string", 1e3, false, func(t *testing.T) float64 { return mustObs(t, "p", label("1e3"), nil).ValueAsDouble() }},
		{"text", 0, true, func(t *testing.T) float64 { return mustObs(t, "p", "n/a", nil).ValueAsDouble() }},
		{"bool", 0, true, func(t *testing.T) float64 { return mustObs(t, "p", true, nil).ValueAsDouble() }},
		{"nil any", 0, true, func(t *testing.T) float64 { return mustObs[any](t, "p", nil, nil).ValueAsDouble() }},
		{"nil pointer", 0, true, func(t *testing.T) float64 { return mustObs[*float64](t, "p", nil, nil).ValueAsDouble() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.actual(t)
			if tt.nan {
				assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
				return
			}
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestValueAsString(t *testing.T) {
	assert.Equal(t, "1.5", mustObs(t, "p", 1.5, nil).ValueAsString())
	assert.Equal(t, "abc", mustObs(t, "p", "abc", nil).ValueAsString())
}

func TestCompareAndSort(t *testing.T) {
	assert.Zero(t, CompareTimeSlots("2020-q1", "2020-Q1"))
	assert.Negative(t, CompareTimeSlots("2020-Q1", "2020-q2"))
	assert.Positive(t, CompareTimeSlots("2021", "2020-Q4"))

	a := mustObs(t, "2020-Q1", 1.0, nil)
	b := mustObs(t, "2020-q2", 2, nil)
	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))

	obs := []Observation[float64]{
		mustObs(t, "2020-Q3", 3.0, nil),
		mustObs(t, "2020-q1", 1.0, nil),
		mustObs(t, "2020-Q2", 2.0, nil),
		mustObs(t, "2020-Q1", 1.5, nil),
	}
	SortObservations(obs)

	values := make([]float64, len(obs))
	for i, o := range obs {
		values[i] = o.Value()
	}
	assert.Equal(t, []float64{1.0, 1.5, 2.0, 3.0}, values, "sort is stable for equal slots")
}

func TestSortObservations_MatchesCompare(t *testing.T) {
	slots := []string{"2020-Q2", "STRASSE", "2019", "straße", "2020-q1", "Strasse", "2020-Q1"}

	obs := make([]Observation[int], len(slots))
	for i, slot := range slots {
		obs[i] = mustObs(t, slot, i, nil)
	}
	want := slices.Clone(obs)
	slices.SortStableFunc(want, Compare[int, int])

	SortObservations(obs)
	assert.Equal(t, want, obs)
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		token   string
		want    KeyValue
		wantErr bool
	}{
		{"FREQ=M", KeyValue{"FREQ", "M"}, false},
		{"FREQ = M", KeyValue{"FREQ", "M"}, false},
		{"TITLE=a=b", KeyValue{"TITLE", "a=b"}, false},
		{"EMPTY=", KeyValue{"EMPTY", ""}, false},
		{"=M", KeyValue{}, true},
		{"FREQ", KeyValue{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseKeyValue(tt.token)
			if tt.wantErr {
				assert.True(t, stderrors.Is(err, errors.ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
