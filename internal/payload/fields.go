package payload

import (
	"bytes"
	"encoding/json"
)

// Fields is a JSON object that marshals its keys in insertion order.
// Stable ordering keeps repeated builds of the same row byte-identical and
// lets the typed payload mirror the CSV column order.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty ordered object.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Set adds or replaces a key. A replaced key keeps its original position.
func (f *Fields) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether it is present.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	return f.keys
}

// MarshalJSON emits the object with keys in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
