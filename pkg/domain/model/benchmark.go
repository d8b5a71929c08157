package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// BenchmarkEntry is a reference maturity level for one question topic
type BenchmarkEntry struct {
	Label         string      `toml:"label" json:"label"`
	Level         types.Level `toml:"level" json:"level"`
	Justification string      `toml:"justification" json:"justification"`
}

// GetLabel returns the label compared by the matcher
func (e BenchmarkEntry) GetLabel() string {
	return e.Label
}

// BenchmarkSet holds benchmark entries grouped by maturity category. It is immutable after load.
type BenchmarkSet struct {
	entries map[types.MaturityCategory][]BenchmarkEntry
}

// NewBenchmarkSet validates entries and builds a BenchmarkSet. Slices are copied.
func NewBenchmarkSet(entries map[types.MaturityCategory][]BenchmarkEntry) (*BenchmarkSet, error) {
	set := &BenchmarkSet{entries: make(map[types.MaturityCategory][]BenchmarkEntry, len(entries))}

	for category, list := range entries {
		if !category.IsValid() {
			return nil, goerr.Wrap(types.ErrUnknownCategory, "invalid benchmark category", goerr.V(CategoryKey, category))
		}
		for i, e := range list {
			if e.Label == "" {
				return nil, goerr.Wrap(ErrMissingLabel, "benchmark entry without label",
					goerr.V(CategoryKey, category), goerr.V(IndexKey, i))
			}
			if err := e.Level.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid benchmark entry",
					goerr.V(CategoryKey, category), goerr.V(LabelKey, e.Label))
			}
		}
		set.entries[category] = append([]BenchmarkEntry(nil), list...)
	}

	return set, nil
}

// Entries returns the entries of a category in dataset order
func (s *BenchmarkSet) Entries(category types.MaturityCategory) []BenchmarkEntry {
	if s == nil {
		return nil
	}
	return append([]BenchmarkEntry(nil), s.entries[category]...)
}

// Len returns the total number of entries across categories
func (s *BenchmarkSet) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, list := range s.entries {
		n += len(list)
	}
	return n
}

// DuplicateLabels lists labels appearing more than once within a category.
// Uniqueness is expected but not enforced.
func (s *BenchmarkSet) DuplicateLabels() map[types.MaturityCategory][]string {
	dups := make(map[types.MaturityCategory][]string)
	if s == nil {
		return dups
	}
	for category, list := range s.entries {
		seen := make(map[string]int, len(list))
		for _, e := range list {
			seen[e.Label]++
			if seen[e.Label] == 2 {
				dups[category] = append(dups[category], e.Label)
			}
		}
	}
	return dups
}
