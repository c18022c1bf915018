package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// CodeField is the canonical identifier key present on every record.
	CodeField = "CODE"
	// ExcelRowField holds the 1-based worksheet row the record came from.
	ExcelRowField = "_excel_row"
)

// Record is one normalized row. Keys keep insertion order so the encoded
// JSON follows the header order of the source sheet.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord returns an empty record sized for n fields.
func NewRecord(n int) Record {
	return Record{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// Set stores v under key. Setting an existing key replaces its value and
// keeps its original position.
func (r *Record) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.keys) }

// Code returns the CODE field, or "" if the record has none.
func (r Record) Code() string {
	v, ok := r.values[CodeField]
	if !ok {
		return ""
	}
	return v.Text()
}

// ExcelRow returns the _excel_row field, or 0 if the record has none.
func (r Record) ExcelRow() int {
	v, ok := r.values[ExcelRowField]
	if !ok || v.Kind != KindNumber {
		return 0
	}
	return int(v.Num)
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the field order of the input.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = NewRecord(0)
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		r.Set(key, v)
		return nil
	})
}

// decodeObject walks the members of a JSON object in document order.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
