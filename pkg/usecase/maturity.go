package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/repository/memory"
	"github.com/chek-project/chek-kma/pkg/service/chek"
	"github.com/chek-project/chek-kma/pkg/service/matcher"
	"github.com/chek-project/chek-kma/pkg/service/metrics"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

// MaturityStore owns the project list and the per-project maturity data of one session.
// Its actions never fail as a whole: failures are reported through the returned results.
type MaturityStore struct {
	api        interfaces.MaturityAPI
	state      interfaces.MaturityState
	benchmarks *model.BenchmarkSet
	matcher    *matcher.Matcher
	metrics    *metrics.Metrics
}

// StoreOption configures a MaturityStore
type StoreOption func(*MaturityStore)

// WithState replaces the in-memory state
func WithState(state interfaces.MaturityState) StoreOption {
	return func(s *MaturityStore) {
		s.state = state
	}
}

// WithMatcher replaces the default label matcher
func WithMatcher(m *matcher.Matcher) StoreOption {
	return func(s *MaturityStore) {
		s.matcher = m
	}
}

// WithStoreMetrics records load and match outcomes
func WithStoreMetrics(m *metrics.Metrics) StoreOption {
	return func(s *MaturityStore) {
		s.metrics = m
	}
}

// NewMaturityStore creates a store reading from api and matching against benchmarks
func NewMaturityStore(api interfaces.MaturityAPI, benchmarks *model.BenchmarkSet, opts ...StoreOption) (*MaturityStore, error) {
	if api == nil {
		return nil, goerr.New("maturity API is required")
	}
	if benchmarks == nil {
		return nil, goerr.New("benchmark set is required")
	}

	s := &MaturityStore{
		api:        api,
		benchmarks: benchmarks,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.state == nil {
		s.state = memory.New()
	}
	if s.matcher == nil {
		m, err := matcher.New()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create default matcher")
		}
		s.matcher = m
	}

	return s, nil
}

// Projects returns the loaded projects, nil when absent
func (s *MaturityStore) Projects() []model.Project {
	return s.state.Projects()
}

// MaturityData returns the committed data of a project
func (s *MaturityStore) MaturityData(projectID types.ProjectID) (model.MaturityData, bool) {
	return s.state.MaturityData(projectID)
}

// LoadedProjectIDs lists projects with committed maturity data
func (s *MaturityStore) LoadedProjectIDs() []types.ProjectID {
	return s.state.ProjectIDs()
}

// LoadProjects fetches the project list and replaces the stored one.
//
// On failure projects become nil. Transport and decoding failures set Notify with
// ProjectsLoadFailureMessage; a non-success status is only logged.
func (s *MaturityStore) LoadProjects(ctx context.Context) *model.ProjectsLoadResult {
	logger := logging.From(ctx)

	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		s.state.SetProjects(nil)
		s.metrics.ObserveLoad("projects", false)

		result := &model.ProjectsLoadResult{Err: err}

		var se *chek.StatusError
		switch {
		case errors.As(err, &se):
			logger.Warn("projects request was not successful",
				slog.Int("status", se.StatusCode),
				slog.String("status_text", se.Status),
			)
		case errors.Is(err, chek.ErrNoToken):
			logger.Warn("projects request skipped without access token")
		default:
			logger.Error("failed to load projects", slog.Any("error", err))
			result.Notify = true
			result.Message = model.ProjectsLoadFailureMessage
		}
		return result
	}

	if projects == nil {
		projects = []model.Project{}
	}
	s.state.SetProjects(projects)
	s.metrics.ObserveLoad("projects", true)
	logger.Info("projects loaded", slog.Int("count", len(projects)))

	return &model.ProjectsLoadResult{Projects: s.state.Projects()}
}

// UnloadProjects drops the project list
func (s *MaturityStore) UnloadProjects() {
	s.state.SetProjects(nil)
}

// Reset drops the project list and all maturity data
func (s *MaturityStore) Reset() {
	s.state.Reset()
}

// LoadMaturityData fetches the four categories of a project concurrently, attaches the
// matched benchmark level to every item and commits the result in one replacement.
// A failed category is stored as an empty sequence and reported in the result.
// Concurrent loads of the same project are last-write-wins.
//
// An invalid project id issues no request and commits nothing; every category is
// reported as failed with ErrInvalidProjectID.
func (s *MaturityStore) LoadMaturityData(ctx context.Context, projectID types.ProjectID) *model.MaturityLoadResult {
	logger := logging.From(ctx).With(slog.Any(ProjectIDKey, projectID))
	categories := types.AllMaturityCategories()

	if err := projectID.Validate(); err != nil {
		result := &model.MaturityLoadResult{
			ProjectID: projectID,
			Data:      model.NewMaturityData(),
			Failures:  make(map[types.MaturityCategory]error, len(categories)),
		}
		for _, category := range categories {
			result.Failures[category] = goerr.Wrap(ErrInvalidProjectID, "cannot load maturity data",
				goerr.V(ProjectIDKey, projectID), goerr.V("cause", err.Error()))
		}
		s.metrics.ObserveLoad("maturity", false)
		logger.Warn("maturity load skipped for invalid project id")
		return result
	}

	items := make([][]model.AnsweredItem, len(categories))
	errs := make([]error, len(categories))

	var eg errgroup.Group
	for i, category := range categories {
		eg.Go(func() error {
			fetched, err := s.api.GetMaturityEntries(ctx, category, projectID)
			if err != nil {
				errs[i] = err
				return nil
			}
			items[i] = s.enrich(category, fetched)
			return nil
		})
	}
	_ = eg.Wait()

	result := &model.MaturityLoadResult{
		ProjectID: projectID,
		Data:      model.NewMaturityData(),
		Failures:  make(map[types.MaturityCategory]error),
	}
	for i, category := range categories {
		if errs[i] != nil {
			result.Failures[category] = errs[i]
			logCategoryFailure(logger, category, errs[i])
			continue
		}
		if items[i] != nil {
			result.Data[category] = items[i]
		}
	}

	s.state.SetMaturityData(projectID, result.Data)
	s.metrics.ObserveLoad("maturity", len(result.Failures) == 0)
	logger.Info("maturity data committed",
		slog.Int("failed_categories", len(result.Failures)),
	)

	return result
}

func logCategoryFailure(logger *slog.Logger, category types.MaturityCategory, err error) {
	var se *chek.StatusError
	if errors.As(err, &se) {
		logger.Warn("maturity entries request was not successful",
			slog.String(CategoryKey, category.String()),
			slog.Int("status", se.StatusCode),
			slog.String("status_text", se.Status),
		)
		return
	}
	logger.Error("failed to load maturity entries",
		slog.String(CategoryKey, category.String()),
		slog.Any("error", err),
	)
}

// enrich returns copies of items with the benchmark level of the best matching entry.
// Items without a match carry a nil benchmark. Order is preserved.
func (s *MaturityStore) enrich(category types.MaturityCategory, items []model.AnsweredItem) []model.AnsweredItem {
	entries := s.benchmarks.Entries(category)
	labels := matcher.Labels(entries)

	enriched := make([]model.AnsweredItem, len(items))
	for i, item := range items {
		res := s.matcher.BestMatch(labels, item.Label)
		s.metrics.ObserveMatch(category.String(), res.Matched())
		if !res.Matched() {
			enriched[i] = item.WithBenchmark(nil)
			continue
		}
		level := entries[res.Index].Level
		enriched[i] = item.WithBenchmark(&level)
	}
	return enriched
}

// MatchBenchmark returns the benchmark entry best matching label within category
func (s *MaturityStore) MatchBenchmark(category types.MaturityCategory, label string) (*model.BenchmarkEntry, matcher.Result) {
	entries := s.benchmarks.Entries(category)
	res := s.matcher.BestMatch(matcher.Labels(entries), label)
	if !res.Matched() {
		return nil, res
	}
	entry := entries[res.Index]
	return &entry, res
}
