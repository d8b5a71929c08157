package questionnaire

import (
	_ "embed"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
)

//go:embed data/questions.toml
var defaultQuestions []byte

type questionsFile struct {
	Questions []model.Question `toml:"question"`
}

var loadDefault = sync.OnceValues(func() ([]model.Question, error) {
	return Parse(defaultQuestions)
})

// Default returns the built-in question catalogue. The returned slice is a copy.
func Default() ([]model.Question, error) {
	questions, err := loadDefault()
	if err != nil {
		return nil, err
	}
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out, nil
}

// Parse decodes and validates a TOML question catalogue
func Parse(data []byte) ([]model.Question, error) {
	var f questionsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse questionnaire TOML")
	}
	for i := range f.Questions {
		if err := f.Questions[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid question", goerr.V(model.IndexKey, i))
		}
	}
	return f.Questions, nil
}

// ByCategory filters questions of one maturity category, preserving order
func ByCategory(questions []model.Question, category types.MaturityCategory) []model.Question {
	var out []model.Question
	for _, q := range questions {
		if q.MaturityArea() == category {
			out = append(out, q)
		}
	}
	return out
}
