package usecase

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/service/matcher"
	"github.com/chek-project/chek-kma/pkg/service/metrics"
)

type UseCases struct {
	benchmarks *model.BenchmarkSet
	questions  []model.Question
	matcher    *matcher.Matcher
	metrics    *metrics.Metrics
	Sessions   *SessionUseCase
}

type Option func(*UseCases)

func WithQuestions(questions []model.Question) Option {
	return func(uc *UseCases) {
		uc.questions = questions
	}
}

func WithLabelMatcher(m *matcher.Matcher) Option {
	return func(uc *UseCases) {
		uc.matcher = m
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func New(benchmarks *model.BenchmarkSet, newAPI APIFactory, opts ...Option) (*UseCases, error) {
	if benchmarks == nil {
		return nil, goerr.New("benchmark set is required")
	}
	if newAPI == nil {
		return nil, goerr.New("API factory is required")
	}

	uc := &UseCases{
		benchmarks: benchmarks,
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.Sessions = NewSessionUseCase(newAPI, uc.NewMaturityStore)
	return uc, nil
}

// NewMaturityStore creates a store sharing the configured benchmarks, matcher and metrics
func (uc *UseCases) NewMaturityStore(api interfaces.MaturityAPI) (*MaturityStore, error) {
	opts := []StoreOption{WithStoreMetrics(uc.metrics)}
	if uc.matcher != nil {
		opts = append(opts, WithMatcher(uc.matcher))
	}
	return NewMaturityStore(api, uc.benchmarks, opts...)
}

// Benchmarks returns the benchmark dataset
func (uc *UseCases) Benchmarks() *model.BenchmarkSet {
	return uc.benchmarks
}

// Questions returns the question catalogue
func (uc *UseCases) Questions() []model.Question {
	return uc.questions
}
