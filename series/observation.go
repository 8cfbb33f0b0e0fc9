package series

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Quinlan2018/SDMX/errors"
)

// Observation is an immutable data point: a time slot label, a value of
// type T and the observation-level attributes. Its zero value is not a
// valid observation; use NewObservation.
type Observation[T any] struct {
	timeslot   string
	value      T
	attributes map[string]string
}

// NewObservation creates an observation. timeslot must not be empty.
// attributes is copied; nil means no attributes.
func NewObservation[T any](timeslot string, value T, attributes map[string]string) (Observation[T], error) {
	if timeslot == "" {
		return Observation[T]{}, fmt.Errorf("%w: the timeslot for an observation cannot be empty",
			errors.ErrInvalidParameter)
	}
	attrs := make(map[string]string, len(attributes))
	maps.Copy(attrs, attributes)
	return Observation[T]{timeslot: timeslot, value: value, attributes: attrs}, nil
}

// TimeSlot returns the period label.
func (o Observation[T]) TimeSlot() string { return o.timeslot }

// Value returns the observed value.
func (o Observation[T]) Value() T { return o.value }

// Attributes returns a copy of the observation-level attributes.
func (o Observation[T]) Attributes() map[string]string {
	return maps.Clone(o.attributes)
}

// Attribute returns the value of the named attribute.
func (o Observation[T]) Attribute(name string) (string, bool) {
	v, ok := o.attributes[name]
	return v, ok
}

// ValueAsDouble returns the value as a float64. Numeric values of any kind
// convert directly; anything else is formatted and parsed, yielding NaN
// when that fails.
func (o Observation[T]) ValueAsDouble() float64 {
	v := any(o.value)
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return math.NaN()
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(v)), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ValueAsString formats the value with fmt.Sprint.
func (o Observation[T]) ValueAsString() string {
	return fmt.Sprint(o.value)
}

func (o Observation[T]) String() string {
	return fmt.Sprintf("%s: %v %v", o.timeslot, o.value, o.attributes)
}

// MapValue returns a new observation holding fn(o.Value()) with the time
// slot and attributes of o.
func MapValue[T, U any](o Observation[T], fn func(T) U) Observation[U] {
	return Observation[U]{timeslot: o.timeslot, value: fn(o.value), attributes: o.attributes}
}

// Combine returns a new observation holding fn(a.Value(), b.Value()) with
// the time slot and attributes of a. Both operands must refer to the same
// time slot, compared case-insensitively.
func Combine[T, U, R any](a Observation[T], b Observation[U], fn func(T, U) R) (Observation[R], error) {
	if Compare(a, b) != 0 {
		return Observation[R]{}, fmt.Errorf("%w: cannot combine observations of time slots %q and %q",
			errors.ErrInvalidParameter, a.timeslot, b.timeslot)
	}
	return Observation[R]{timeslot: a.timeslot, value: fn(a.value, b.value), attributes: a.attributes}, nil
}

// Compare orders observations by case-insensitive lexical comparison of
// their time slots. The order is calendar-correct only for zero-padded
// labels such as 2020-01 or 2020-Q1.
func Compare[T, U any](a Observation[T], b Observation[U]) int {
	return CompareTimeSlots(a.timeslot, b.timeslot)
}

// CompareTimeSlots compares two period labels after Unicode case folding.
func CompareTimeSlots(a, b string) int {
	fold := cases.Fold()
	return strings.Compare(fold.String(a), fold.String(b))
}

// Less reports whether a sorts before b.
func Less[T, U any](a Observation[T], b Observation[U]) bool {
	return Compare(a, b) < 0
}

// SortObservations stable-sorts obs by time slot, in the order of Compare.
// Each time slot is folded once rather than on every comparison.
func SortObservations[T any](obs []Observation[T]) {
	type keyed struct {
		key string
		obs Observation[T]
	}

	fold := cases.Fold()
	items := make([]keyed, len(obs))
	for i, o := range obs {
		items[i] = keyed{key: fold.String(o.timeslot), obs: o}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})
	for i := range items {
		obs[i] = items[i].obs
	}
}
