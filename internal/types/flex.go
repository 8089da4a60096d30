// Package types provides type definitions for structured data used throughout the plan-reconciler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a descriptor while tolerating the loose numeric
// shapes generators produce: sets as a number or numeric string, reps
// and weight as a scalar or an array, numeric strings inside arrays.
// If either array contains a value that cannot be coerced, both arrays
// are dropped so no partially-typed prescription survives the boundary;
// prescription normalization later installs neutral defaults.
func (d *ExerciseDescriptor) UnmarshalJSON(data []byte) error {
	type alias ExerciseDescriptor
	aux := struct {
		*alias
		Sets   json.RawMessage `json:"sets,omitempty"`
		Reps   json.RawMessage `json:"reps,omitempty"`
		Weight json.RawMessage `json:"weight,omitempty"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	d.Sets, _ = coerceInt(aux.Sets)
	reps, repsOK := coerceIntSlice(aux.Reps)
	weight, weightOK := coerceFloatSlice(aux.Weight)
	if !repsOK || !weightOK {
		reps, weight = nil, nil
	}
	d.Reps = reps
	d.Weight = weight
	return nil
}

// absentJSON reports whether a raw field is missing or JSON null.
func absentJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// coerceFloat parses a JSON number or numeric string. A missing field
// coerces to zero successfully; junk does not.
func coerceFloat(raw json.RawMessage) (float64, bool) {
	if absentJSON(raw) {
		return 0, true
	}
	return coerceFloatValue(raw)
}

func coerceFloatValue(raw json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func coerceInt(raw json.RawMessage) (int, bool) {
	f, ok := coerceFloat(raw)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// coerceIntSlice accepts an array of coercible values or a bare scalar,
// which is wrapped into a one-element slice.
func coerceIntSlice(raw json.RawMessage) ([]int, bool) {
	items, ok := sliceElements(raw)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		f, ok := coerceFloatValue(item)
		if !ok {
			return nil, false
		}
		out = append(out, int(f))
	}
	return out, true
}

func coerceFloatSlice(raw json.RawMessage) ([]float64, bool) {
	items, ok := sliceElements(raw)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := coerceFloatValue(item)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// sliceElements splits a raw field into its array elements, wrapping a
// bare scalar as a single element. Missing and null both yield no
// elements without error.
func sliceElements(raw json.RawMessage) ([]json.RawMessage, bool) {
	if absentJSON(raw) {
		return nil, true
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, false
	}
	return []json.RawMessage{raw}, true
}
