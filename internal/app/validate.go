package app

import (
	"bytes"
	"encoding/json"
	"math"
)

// DecodeEvents parses a JSON document and validates it into events
func DecodeEvents(data []byte) ([]Event, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &SchemaError{Reason: "malformed JSON: " + err.Error(), Index: -1}
	}
	return Validate(raw)
}

// Validate checks a decoded JSON value against the event schema and
// returns a normalized copy of every record. The first invalid record
// aborts the whole validation.
func Validate(raw any) ([]Event, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &SchemaError{Reason: "not a sequence", Index: -1}
	}

	events := make([]Event, 0, len(items))
	seen := make(map[int]bool, len(items))

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &SchemaError{Reason: "element not an object", Index: i}
		}

		var ev Event
		var err error
		if ev.ID, err = intField(obj, "id", i); err != nil {
			return nil, err
		}
		if ev.Year, err = intField(obj, "year", i); err != nil {
			return nil, err
		}
		if ev.Title, err = stringField(obj, "title", i); err != nil {
			return nil, err
		}
		if ev.Title == "" {
			return nil, &SchemaError{Field: "title", Index: i, Expected: "a non-empty string"}
		}
		if ev.Description, err = stringField(obj, "description", i); err != nil {
			return nil, err
		}
		if ev.Category, err = stringField(obj, "category", i); err != nil {
			return nil, err
		}
		if v, present := obj["imageURL"]; present && v != nil {
			s, ok := v.(string)
			if !ok {
				return nil, &SchemaError{Field: "imageURL", Index: i, Expected: "a string"}
			}
			ev.ImageURL = s
		}

		if seen[ev.ID] {
			return nil, &SchemaError{Field: "id", Index: i, Expected: "unique"}
		}
		seen[ev.ID] = true
		events = append(events, ev)
	}

	return events, nil
}

func intField(obj map[string]any, field string, index int) (int, error) {
	var f float64
	switch v := obj[field].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			f = float64(n)
			break
		}
		parsed, err := v.Float64()
		if err != nil {
			return 0, &SchemaError{Field: field, Index: index, Expected: "a number"}
		}
		f = parsed
	case float64:
		f = v
	case int:
		f = float64(v)
	default:
		return 0, &SchemaError{Field: field, Index: index, Expected: "a number"}
	}

	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, &SchemaError{Field: field, Index: index, Expected: "an integer"}
	}
	return int(f), nil
}

func stringField(obj map[string]any, field string, index int) (string, error) {
	s, ok := obj[field].(string)
	if !ok {
		return "", &SchemaError{Field: field, Index: index, Expected: "a string"}
	}
	return s, nil
}
