package model

import (
	"bytes"
	"encoding/json"
	"maps"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// AnsweredItem is one backend maturity entry for a project and category.
// Fields other than label, level and justification are kept verbatim and
// written back on marshal, together with the injected benchmark field.
type AnsweredItem struct {
	Label         string
	Level         *types.Level
	Justification *string
	Benchmark     *types.Level

	fields map[string]json.RawMessage
}

var jsonNull = []byte("null")

// UnmarshalJSON parses a backend item. label is required and must be a string.
func (x *AnsweredItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "maturity entry is not a JSON object")
	}

	rawLabel, ok := raw["label"]
	if !ok {
		return goerr.Wrap(ErrMissingLabel, "maturity entry without label")
	}
	if bytes.Equal(bytes.TrimSpace(rawLabel), jsonNull) {
		return goerr.Wrap(ErrInvalidLabelType, "maturity entry label is null")
	}
	var label string
	if err := json.Unmarshal(rawLabel, &label); err != nil {
		return goerr.Wrap(ErrInvalidLabelType, "maturity entry label is not a string", goerr.V("label", string(rawLabel)))
	}

	item := AnsweredItem{Label: label}

	if v, ok := raw["level"]; ok {
		var level int
		if err := json.Unmarshal(v, &level); err == nil && !bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			l := types.Level(level)
			item.Level = &l
		}
	}
	if v, ok := raw["justification"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil && !bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			item.Justification = &s
		}
	}

	// benchmark is always computed locally
	delete(raw, "benchmark")
	item.fields = raw

	*x = item
	return nil
}

// MarshalJSON writes all original fields plus benchmark, which is null when unmatched
func (x AnsweredItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(x.fields)+2)
	for k, v := range x.fields {
		out[k] = v
	}
	out["label"] = x.Label
	if x.Level != nil {
		out["level"] = int(*x.Level)
	}
	if x.Justification != nil {
		out["justification"] = *x.Justification
	}
	if x.Benchmark != nil {
		out["benchmark"] = int(*x.Benchmark)
	} else {
		out["benchmark"] = nil
	}
	return json.Marshal(out)
}

// WithBenchmark returns a copy of the item carrying benchmark. Other fields are untouched.
func (x AnsweredItem) WithBenchmark(benchmark *types.Level) AnsweredItem {
	clone := x.Clone()
	if benchmark != nil {
		b := *benchmark
		clone.Benchmark = &b
	} else {
		clone.Benchmark = nil
	}
	return clone
}

// Clone returns a deep copy
func (x AnsweredItem) Clone() AnsweredItem {
	clone := AnsweredItem{Label: x.Label, fields: maps.Clone(x.fields)}
	if x.Level != nil {
		l := *x.Level
		clone.Level = &l
	}
	if x.Justification != nil {
		j := *x.Justification
		clone.Justification = &j
	}
	if x.Benchmark != nil {
		b := *x.Benchmark
		clone.Benchmark = &b
	}
	return clone
}

// Field returns a raw backend field by name
func (x AnsweredItem) Field(name string) (json.RawMessage, bool) {
	v, ok := x.fields[name]
	return v, ok
}

// HasBenchmark reports whether a benchmark entry matched this item
func (x AnsweredItem) HasBenchmark() bool {
	return x.Benchmark != nil
}

// Gap returns level - benchmark when both are known
func (x AnsweredItem) Gap() (int, bool) {
	if x.Level == nil || x.Benchmark == nil {
		return 0, false
	}
	return int(*x.Level) - int(*x.Benchmark), true
}
