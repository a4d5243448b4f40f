package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Spec is one entry of a product specification sheet
type Spec struct {
	Key   string
	Value string
}

// Specifications is an ordered key/value sheet. It encodes as a JSON object
// and keeps the key order through a decode.
type Specifications []Spec

// Get returns the value stored under key
func (s Specifications) Get(key string) (string, bool) {
	for _, sp := range s {
		if sp.Key == key {
			return sp.Value, true
		}
	}
	return "", false
}

// Keys returns the keys in display order
func (s Specifications) Keys() []string {
	keys := make([]string, len(s))
	for i, sp := range s {
		keys[i] = sp.Key
	}
	return keys
}

func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sp := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sp.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(sp.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Specifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}

	var out Specifications
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("specifications: expected string key, got %v", kt)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("specifications: value for %q: %w", key, err)
		}
		out = append(out, Spec{Key: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}
