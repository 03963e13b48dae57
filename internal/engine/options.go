package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Options is an insertion-ordered mapping from option name to value. Keys are
// unique: setting an existing key replaces its value but keeps its original
// position. The zero value is an empty, usable mapping.
type Options struct {
	keys   []string
	values map[string]any
}

// NewOptions builds Options from alternating key/value pairs. A trailing key
// without a value is set to true.
func NewOptions(pairs ...any) Options {
	var o Options
	for i := 0; i < len(pairs); i += 2 {
		key := fmt.Sprint(pairs[i])
		var value any = true
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		o.Set(key, value)
	}
	return o
}

// Set stores value under key.
func (o *Options) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o Options) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of options.
func (o Options) Len() int { return len(o.keys) }

// Keys returns the option names in insertion order.
func (o Options) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Each calls fn for every option in insertion order.
func (o Options) Each(fn func(key string, value any)) {
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

// Flags renders the options as command-line flags of the form --key=value.
func (o Options) Flags() []string {
	flags := make([]string, 0, len(o.keys))
	o.Each(func(key string, value any) {
		flags = append(flags, fmt.Sprintf("--%s=%v", key, value))
	})
	return flags
}

// MarshalJSON encodes the options as a JSON object in insertion order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshaling option key %q: %w", k, err)
		}
		value, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshaling option %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
