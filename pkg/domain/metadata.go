package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Metadata is an ordered string-to-string mapping.
// Keys keep the position of their first insertion; the zero value is empty and ready to use.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata builds a Metadata from alternating key/value arguments.
// A trailing key without a value is ignored.
func NewMetadata(kv ...string) Metadata {
	var m Metadata
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set stores value under key. Re-setting a key replaces its value in place.
func (m *Metadata) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of pairs.
func (m Metadata) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m Metadata) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Map returns an unordered copy of the pairs.
func (m Metadata) Map() map[string]string {
	out := make(map[string]string, len(m.keys))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both mappings hold the same pairs, ignoring order.
func (m Metadata) Equal(other Metadata) bool {
	if m.Len() != other.Len() {
		return false
	}
	for k, v := range m.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalJSON writes the pairs as an object in insertion order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string values, preserving key order.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	*m = Metadata{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metadata: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("metadata: expected key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("metadata: value for %q: %w", key, err)
		}
		m.Set(key, value)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML writes the pairs as a mapping in insertion order.
func (m Metadata) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.values[k]},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping, preserving key order.
func (m *Metadata) UnmarshalYAML(value *yaml.Node) error {
	*m = Metadata{}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("metadata: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		m.Set(value.Content[i].Value, value.Content[i+1].Value)
	}
	return nil
}
