package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/types"
)

// Question is one questionnaire item. Options are indexed by level 0..5.
type Question struct {
	Label            string   `toml:"label" json:"label"`
	Category         string   `toml:"category" json:"category"`
	MaturityCategory string   `toml:"maturity_category" json:"maturity_category"`
	Count            int      `toml:"count" json:"count"`
	Options          []string `toml:"options" json:"options"`
}

// Validate checks the question has a known category and one option per level
func (q *Question) Validate() error {
	if q.Label == "" {
		return goerr.Wrap(ErrMissingLabel, "question without label", goerr.V("count", q.Count))
	}
	if _, err := types.ParseMaturityCategory(q.MaturityCategory); err != nil {
		return goerr.Wrap(err, "invalid question category", goerr.V(LabelKey, q.Label))
	}
	if len(q.Options) != int(types.MaxLevel-types.MinLevel)+1 {
		return goerr.Wrap(ErrInvalidOptionCount, "invalid question",
			goerr.V(LabelKey, q.Label), goerr.V("options", len(q.Options)))
	}
	return nil
}

// MaturityArea returns the maturity category, mapping the questionnaire spelling "Organization"
func (q *Question) MaturityArea() types.MaturityCategory {
	c, err := types.ParseMaturityCategory(q.MaturityCategory)
	if err != nil {
		return ""
	}
	return c
}

// Option returns the answer text for a level, or "" when out of range
func (q *Question) Option(level types.Level) string {
	if level.Validate() != nil || int(level) >= len(q.Options) {
		return ""
	}
	return q.Options[level]
}
