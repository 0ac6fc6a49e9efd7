package table

import (
	"bytes"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// Field is a single key/value pair.
type Field struct {
	Key   string
	Value Value
}

// F builds a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Fields is an insertion-ordered mapping from field key to value.
// The zero value is an empty mapping ready to use. Fields shares its
// backing storage on assignment; use Clone before handing a copy out.
type Fields struct {
	keys []string
	vals map[string]Value
}

// FieldsOf builds a mapping from pairs in order. Later duplicates overwrite
// earlier values without moving the key.
func FieldsOf(pairs ...Field) Fields {
	var f Fields
	for _, p := range pairs {
		f.Set(p.Key, p.Value)
	}
	return f
}

// Len returns the number of keys.
func (f Fields) Len() int { return len(f.keys) }

// Get returns the value for key and whether it is present.
func (f Fields) Get(key string) (Value, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Value returns the value for key, or Null when absent.
func (f Fields) Value(key string) Value {
	return f.vals[key]
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.vals[key]
	return ok
}

// Set stores v under key. New keys are appended to the order.
func (f *Fields) Set(key string, v Value) {
	if f.vals == nil {
		f.vals = make(map[string]Value)
	}
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = v
}

// Delete removes key if present.
func (f *Fields) Delete(key string) {
	if _, ok := f.vals[key]; !ok {
		return
	}
	delete(f.vals, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i:i], f.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (f Fields) Keys() []string {
	if len(f.keys) == 0 {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Each calls fn for every pair in order.
func (f Fields) Each(fn func(key string, v Value)) {
	for _, k := range f.keys {
		fn(k, f.vals[k])
	}
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if len(f.keys) == 0 {
		return Fields{}
	}
	out := Fields{
		keys: make([]string, len(f.keys)),
		vals: make(map[string]Value, len(f.vals)),
	}
	copy(out.keys, f.keys)
	for k, v := range f.vals {
		out.vals[k] = v
	}
	return out
}

// Merge overlays every pair of other onto f. Keys absent from other are
// left untouched.
func (f *Fields) Merge(other Fields) {
	other.Each(func(k string, v Value) {
		f.Set(k, v)
	})
}

// Equal reports whether both mappings hold the same pairs, ignoring order.
func (f Fields) Equal(other Fields) bool {
	if f.Len() != other.Len() {
		return false
	}
	for k, v := range f.vals {
		ov, ok := other.vals[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
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
		vb, err := f.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of scalars, keeping key order.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("table: fields must be a JSON object")
	}
	*f = Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v Value
		if err := dec.Decode(&v); err != nil {
			return err
		}
		f.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML encodes the mapping as an ordered YAML map.
func (f Fields) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range f.keys {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		native, _ := f.vals[k].MarshalYAML()
		if err := vn.Encode(native); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}
