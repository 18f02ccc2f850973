// Package schema validates request payloads against declarative field rule
// sets. A Schema is plain data; Validate is the only interpreter.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Type is the JSON-level kind a field must have.
type Type int

const (
	String Type = iota
	Number
	Date
)

func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case Date:
		return "date"
	default:
		return "string"
	}
}

// Field describes one accepted key. Rules is a go-playground/validator tag
// list applied after type coercion (e.g. "email,domainsegments=2").
type Field struct {
	Name     string
	Type     Type
	Required bool
	Rules    string
	Default  any
}

// Schema is a named set of fields. Keys not declared are rejected.
type Schema struct {
	Name   string
	Fields []Field
}

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ValidationError lists every field-level failure of one payload.
type ValidationError struct {
	Schema   string
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Values holds the coerced values of the fields present in a valid payload:
// string for String, float64 for Number, time.Time for Date.
type Values map[string]any

// Validate checks payload against s and returns the coerced values. On
// failure the error is a *ValidationError carrying every message.
func Validate(s Schema, payload map[string]any) (Values, error) {
	var msgs []string
	values := make(Values, len(payload))

	unknown := make([]string, 0)
	for key := range payload {
		if _, ok := s.field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, f := range s.Fields {
		raw, present := payload[f.Name]
		if !present || (raw == nil && f.Required) {
			if f.Required {
				msgs = append(msgs, fmt.Sprintf("%q is required", f.Name))
			}
			continue
		}

		v, msg := coerce(f, raw)
		if msg != "" {
			msgs = append(msgs, fmt.Sprintf("%q %s", f.Name, msg))
			continue
		}
		if f.Rules != "" {
			if msg := checkRules(v, f.Rules); msg != "" {
				msgs = append(msgs, fmt.Sprintf("%q %s", f.Name, msg))
				continue
			}
		}
		values[f.Name] = v
	}

	for _, key := range unknown {
		msgs = append(msgs, fmt.Sprintf("%q is not allowed", key))
	}

	if len(msgs) > 0 {
		return nil, &ValidationError{Schema: s.Name, Messages: msgs}
	}
	return values, nil
}

func coerce(f Field, raw any) (any, string) {
	switch f.Type {
	case Number:
		return toNumber(raw)
	case Date:
		return toDate(raw)
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		if s == "" {
			return nil, "is not allowed to be empty"
		}
		return s, ""
	}
}

func toNumber(raw any) (any, string) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, "must be a number"
		}
		f = parsed
	default:
		return nil, "must be a number"
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, "must be a number"
	}
	return f, ""
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func toDate(raw any) (any, string) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, "must be a valid date"
		}
		return time.UnixMilli(int64(v)).UTC(), ""
	case string:
		s := strings.TrimSpace(v)
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), ""
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), ""
			}
		}
	}
	return nil, "must be a valid date"
}

// WithDefaults returns a copy of v with the declared default of every absent
// field filled in.
func (v Values) WithDefaults(s Schema) Values {
	out := make(Values, len(v)+len(s.Fields))
	for k, val := range v {
		out[k] = val
	}
	for _, f := range s.Fields {
		if _, ok := out[f.Name]; !ok && f.Default != nil {
			out[f.Name] = f.Default
		}
	}
	return out
}

// String returns the string value of name, if present.
func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// Float returns the numeric value of name, if present.
func (v Values) Float(name string) (float64, bool) {
	f, ok := v[name].(float64)
	return f, ok
}

// Time returns the date value of name, if present.
func (v Values) Time(name string) (time.Time, bool) {
	t, ok := v[name].(time.Time)
	return t, ok
}
