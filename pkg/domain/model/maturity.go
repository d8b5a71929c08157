package model

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// MaturityData maps each category to its benchmark-enriched items
type MaturityData map[types.MaturityCategory][]AnsweredItem

// NewMaturityData returns data with an empty sequence for every category
func NewMaturityData() MaturityData {
	data := make(MaturityData, 4)
	for _, c := range types.AllMaturityCategories() {
		data[c] = []AnsweredItem{}
	}
	return data
}

// Clone returns a deep copy
func (d MaturityData) Clone() MaturityData {
	if d == nil {
		return nil
	}
	clone := make(MaturityData, len(d))
	for c, items := range d {
		copied := make([]AnsweredItem, len(items))
		for i, item := range items {
			copied[i] = item.Clone()
		}
		clone[c] = copied
	}
	return clone
}

// MarshalJSON writes every category as an array, never null
func (d MaturityData) MarshalJSON() ([]byte, error) {
	out := make(map[string][]AnsweredItem, len(d))
	for c, items := range d {
		if items == nil {
			items = []AnsweredItem{}
		}
		out[c.String()] = items
	}
	return json.Marshal(out)
}

// CategorySummary aggregates the items of one category
type CategorySummary struct {
	Category      types.MaturityCategory `json:"category"`
	Answered      int                    `json:"answered"`
	Matched       int                    `json:"matched"`
	MeanLevel     *float64               `json:"mean_level"`
	MeanBenchmark *float64               `json:"mean_benchmark"`
}

// Summaries returns one summary per category in query order
func (d MaturityData) Summaries() []CategorySummary {
	summaries := make([]CategorySummary, 0, len(d))
	for _, c := range types.AllMaturityCategories() {
		items, ok := d[c]
		if !ok {
			continue
		}
		s := CategorySummary{Category: c, Answered: len(items)}
		var levelSum, benchSum, levelN int
		for _, item := range items {
			if item.Level != nil {
				levelSum += int(*item.Level)
				levelN++
			}
			if item.Benchmark != nil {
				benchSum += int(*item.Benchmark)
				s.Matched++
			}
		}
		if levelN > 0 {
			v := float64(levelSum) / float64(levelN)
			s.MeanLevel = &v
		}
		if s.Matched > 0 {
			v := float64(benchSum) / float64(s.Matched)
			s.MeanBenchmark = &v
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// MaturityLoadResult reports the outcome of loading one project's maturity data.
// Data always holds all four categories; failed categories are empty.
type MaturityLoadResult struct {
	ProjectID types.ProjectID
	Data      MaturityData
	Failures  map[types.MaturityCategory]error
}

// Failed returns the failed categories in query order
func (r *MaturityLoadResult) Failed() []types.MaturityCategory {
	failed := slices.Collect(maps.Keys(r.Failures))
	order := types.AllMaturityCategories()
	slices.SortFunc(failed, func(a, b types.MaturityCategory) int {
		return slices.Index(order, a) - slices.Index(order, b)
	})
	return failed
}

// Err returns the per-category failures joined into one error, or nil
func (r *MaturityLoadResult) Err() error {
	var merr *multierror.Error
	for _, c := range r.Failed() {
		merr = multierror.Append(merr, goerr.Wrap(r.Failures[c], "category load failed", goerr.V(CategoryKey, c)))
	}
	return merr.ErrorOrNil()
}

// ProjectsLoadFailureMessage is shown to the user when projects cannot be fetched
const ProjectsLoadFailureMessage = "Oops! It seems that we could not load your projects. There seem to be a connection problem."

// ProjectsLoadResult reports the outcome of loading the project list.
// Notify is set for transport and parse failures, which should interrupt the user.
type ProjectsLoadResult struct {
	Projects []Project
	Err      error
	Notify   bool
	Message  string
}

// OK reports whether projects were loaded
func (r *ProjectsLoadResult) OK() bool {
	return r.Err == nil
}
