package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Source is a read-only key/value view over configuration. Keys use the
// dotted form "providers.ECB.endpoint" and are matched case-insensitively.
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource is an in-memory Source, mostly used by tests and embedders that
// already hold their settings in a map.
type MapSource map[string]string

// NewMapSource copies values into a MapSource with normalized keys.
func NewMapSource(values map[string]string) MapSource {
	m := make(MapSource, len(values))
	for k, v := range values {
		m[normalizeKey(k)] = v
	}
	return m
}

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[normalizeKey(key)]
	return v, ok
}

// Set stores value under key.
func (m MapSource) Set(key, value string) {
	m[normalizeKey(key)] = value
}

// Keys returns the stored keys in sorted order.
func (m MapSource) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Empty is a Source without any keys.
var Empty Source = MapSource{}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// String returns the value at key, or defaultVal when the key is absent.
// A present but empty value is returned as is.
func String(src Source, key, defaultVal string) string {
	if src == nil {
		return defaultVal
	}
	if v, ok := src.Lookup(key); ok {
		return v
	}
	return defaultVal
}

// Bool returns the boolean at key. Absent or blank keys yield defaultVal.
// Values strconv.ParseBool cannot read also yield defaultVal, together with
// an error the caller is expected to log.
func Bool(src Source, key string, defaultVal bool) (bool, error) {
	if src == nil {
		return defaultVal, nil
	}
	v, ok := src.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return defaultVal, fmt.Errorf("config key %s: %q is not a boolean", key, v)
	}
	return b, nil
}

// List splits the comma separated value at key, trimming whitespace and
// dropping empty items.
func List(src Source, key string) []string {
	raw := String(src, key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
