package matcher_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/service/matcher"
)

func entries(labels ...string) []model.BenchmarkEntry {
	out := make([]model.BenchmarkEntry, len(labels))
	for i, l := range labels {
		out[i] = model.BenchmarkEntry{Label: l}
	}
	return out
}

func TestSimilarity(t *testing.T) {
	t.Run("identical strings score 1", func(t *testing.T) {
		for _, s := range []string{"a", "Internal staff", "Data storage/ repository", "Größe"} {
			gt.V(t, matcher.Similarity(s, s)).Equal(1.0)
		}
	})

	t.Run("disjoint character sets score 0", func(t *testing.T) {
		gt.V(t, matcher.Similarity("abc", "xyz")).Equal(0.0)
		gt.V(t, matcher.Similarity("aaa", "b")).Equal(0.0)
	})

	t.Run("same multiset is symmetric", func(t *testing.T) {
		gt.V(t, matcher.Similarity("listen", "silent")).Equal(1.0)
		gt.V(t, matcher.Similarity("silent", "listen")).Equal(1.0)
		gt.V(t, matcher.Similarity("abcd", "abce")).Equal(matcher.Similarity("abce", "abcd"))
	})

	t.Run("different lengths are asymmetric", func(t *testing.T) {
		gt.V(t, matcher.Similarity("aa", "a")).Equal(0.5)
		gt.V(t, matcher.Similarity("a", "aa")).Equal(1.0)
	})

	t.Run("empty inputs", func(t *testing.T) {
		gt.V(t, matcher.Similarity("", "")).Equal(0.0)
		gt.V(t, matcher.Similarity("", "abc")).Equal(0.0)
		gt.V(t, matcher.Similarity("abc", "")).Equal(0.0)
	})

	t.Run("partial overlap", func(t *testing.T) {
		// matching = 2 (a, b); total = 3 (a, b, c) + 1 (d)
		gt.V(t, matcher.Similarity("abc", "abd")).Equal(0.5)
	})
}

func TestBestMatchIndex(t *testing.T) {
	t.Run("empty candidates", func(t *testing.T) {
		gt.V(t, matcher.BestMatchIndex([]model.BenchmarkEntry{}, "Internal staff")).Equal(matcher.NoMatch)
		gt.V(t, matcher.BestMatchIndex[model.BenchmarkEntry](nil, "")).Equal(matcher.NoMatch)
	})

	t.Run("all candidates below threshold", func(t *testing.T) {
		gt.V(t, matcher.BestMatchIndex(entries("Internal staff"), "Data storage/repository")).Equal(matcher.NoMatch)
	})

	t.Run("exact match wins", func(t *testing.T) {
		got := matcher.BestMatchIndex(entries("Higher management", "Internal staff"), "Higher management")
		gt.V(t, got).Equal(0)
		got = matcher.BestMatchIndex(entries("Higher management", "Internal staff"), "Internal staff")
		gt.V(t, got).Equal(1)
	})

	t.Run("first of equal scores wins", func(t *testing.T) {
		gt.V(t, matcher.BestMatchIndex(entries("Internal staff", "Internal staff"), "Internal staff")).Equal(0)
		// anagrams score identically
		gt.V(t, matcher.BestMatchIndex(entries("staff Internal", "Internal staff"), "Internal staff")).Equal(0)
	})

	t.Run("tolerates small textual drift", func(t *testing.T) {
		got := matcher.BestMatchIndex(entries("Communication system", "Data storage/ repository"), "Data storage/repository")
		gt.V(t, got).Equal(1)
		gt.V(t, matcher.BestMatchIndex(entries("Internal staff"), "Internal Staff")).Equal(0)
	})

	t.Run("no-match sentinel differs from index 0", func(t *testing.T) {
		gt.Number(t, matcher.NoMatch).NotEqual(0)
	})
}

func TestMatcher(t *testing.T) {
	t.Run("default configuration", func(t *testing.T) {
		m, err := matcher.New()
		gt.NoError(t, err).Required()
		gt.V(t, m.Strategy()).Equal(matcher.StrategyCharFrequency)
		gt.V(t, m.Threshold()).Equal(matcher.DefaultThreshold)

		r := m.BestMatch([]string{"Internal staff"}, "Internal staff")
		gt.Bool(t, r.Matched()).True()
		gt.V(t, r.Score).Equal(1.0)

		r = m.BestMatch([]string{"Internal staff"}, "Completely unrelated xyz")
		gt.Bool(t, r.Matched()).False()
		gt.V(t, r.Index).Equal(matcher.NoMatch)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		m, err := matcher.New(matcher.WithThreshold(0.5))
		gt.NoError(t, err).Required()
		gt.V(t, m.BestMatch([]string{"abd"}, "abc").Index).Equal(0)
	})

	t.Run("levenshtein strategy", func(t *testing.T) {
		m, err := matcher.New(matcher.WithStrategy(matcher.StrategyLevenshtein))
		gt.NoError(t, err).Required()
		gt.V(t, m.BestMatch([]string{"Data storage/ repository"}, "Data storage/repository").Index).Equal(0)
		// anagrams fool character frequency but not edit distance
		gt.V(t, m.BestMatch([]string{"silent"}, "listen").Index).Equal(matcher.NoMatch)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := matcher.New(matcher.WithStrategy("soundex"))
		gt.Error(t, err).Is(matcher.ErrUnknownStrategy)

		_, err = matcher.New(matcher.WithThreshold(0))
		gt.Error(t, err)
		_, err = matcher.New(matcher.WithThreshold(1.5))
		gt.Error(t, err)
	})
}

func TestLevenshteinSimilarity(t *testing.T) {
	gt.V(t, matcher.LevenshteinSimilarity("", "")).Equal(0.0)
	gt.V(t, matcher.LevenshteinSimilarity("abc", "abc")).Equal(1.0)
	gt.V(t, matcher.LevenshteinSimilarity("abc", "")).Equal(0.0)
	gt.V(t, matcher.LevenshteinSimilarity("abcd", "abce")).Equal(0.75)
}

func TestParseStrategy(t *testing.T) {
	s, err := matcher.ParseStrategy("")
	gt.NoError(t, err).Required()
	gt.V(t, s).Equal(matcher.StrategyCharFrequency)

	s, err = matcher.ParseStrategy("levenshtein")
	gt.NoError(t, err).Required()
	gt.V(t, s).Equal(matcher.StrategyLevenshtein)

	_, err = matcher.ParseStrategy("other")
	gt.Error(t, err).Is(matcher.ErrUnknownStrategy)
}
