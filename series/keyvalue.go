package series

import (
	"fmt"
	"strings"

	"github.com/Quinlan2018/SDMX/errors"
)

// KeyValue is one dimension or series-level attribute of a time series.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// String renders the pair in the legacy "key=value" token form.
func (kv KeyValue) String() string {
	return kv.Key + "=" + kv.Value
}

// ParseKeyValue splits a "key=value" token on its first '='. Whitespace
// around the separator is ignored, so "FREQ = M" yields {FREQ M}. The value
// may itself contain '='.
func ParseKeyValue(token string) (KeyValue, error) {
	key, value, ok := strings.Cut(token, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return KeyValue{}, fmt.Errorf("%w: %q is not a key=value token", errors.ErrInvalidParameter, token)
	}
	return KeyValue{Key: key, Value: strings.TrimSpace(value)}, nil
}

func lookup(pairs []KeyValue, code string) (string, bool) {
	for _, kv := range pairs {
		if kv.Key == code {
			return kv.Value, true
		}
	}
	return "", false
}

func tokens(pairs []KeyValue) []string {
	out := make([]string, len(pairs))
	for i, kv := range pairs {
		out[i] = kv.String()
	}
	return out
}

func clonePairs(pairs []KeyValue) []KeyValue {
	if pairs == nil {
		return nil
	}
	out := make([]KeyValue, len(pairs))
	copy(out, pairs)
	return out
}
