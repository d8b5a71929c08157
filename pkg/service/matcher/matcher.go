// Package matcher finds the benchmark entry whose label best matches a free-text
// question label returned by the backend.
package matcher

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultThreshold is the minimum similarity for a candidate to count as a match
	DefaultThreshold = 0.85

	// NoMatch is returned by BestMatchIndex when no candidate reaches the threshold
	NoMatch = -1
)

// Labeled is anything carrying a label that can be matched
type Labeled interface {
	GetLabel() string
}

// Strategy names a similarity function
type Strategy string

const (
	// StrategyCharFrequency compares character multisets. It is the default.
	StrategyCharFrequency Strategy = "charfreq"
	// StrategyLevenshtein scores by normalized edit distance. Thresholds tuned for
	// StrategyCharFrequency do not carry over.
	StrategyLevenshtein Strategy = "levenshtein"
)

var ErrUnknownStrategy = goerr.New("unknown match strategy")

// ParseStrategy parses a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCharFrequency, StrategyLevenshtein:
		return Strategy(s), nil
	case "":
		return StrategyCharFrequency, nil
	default:
		return "", goerr.Wrap(ErrUnknownStrategy, "failed to parse match strategy", goerr.V("strategy", s))
	}
}

// SimilarityFunc scores two strings in [0, 1]
type SimilarityFunc func(a, b string) float64

// Similarity scores a against b by character frequency.
//
// matching counts, for every character of a, min(count in a, count in b).
// total counts every character of a plus the characters of b that never occur in a.
// The score is matching/total. It is not symmetric when the strings differ in
// length: Similarity("a", "aa") is 1 while Similarity("aa", "a") is 0.5.
// Two empty strings score 0.
func Similarity(a, b string) float64 {
	freqA := charFrequency(a)
	freqB := charFrequency(b)

	var matching, total int
	for c, n := range freqA {
		total += n
		matching += min(n, freqB[c])
	}
	for c, n := range freqB {
		if _, ok := freqA[c]; !ok {
			total += n
		}
	}

	if total == 0 {
		return 0
	}
	return float64(matching) / float64(total)
}

func charFrequency(s string) map[rune]int {
	freq := make(map[rune]int, len(s))
	for _, r := range s {
		freq[r]++
	}
	return freq
}

// LevenshteinSimilarity scores two strings as 1 - distance/max(len(a), len(b)),
// counting runes. Two empty strings score 0.
func LevenshteinSimilarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Result describes the best candidate found by a Matcher
type Result struct {
	Index int
	Score float64
}

// Matched reports whether Result points at a candidate
func (r Result) Matched() bool {
	return r.Index != NoMatch
}

// Matcher selects the best matching label with a configurable threshold and strategy
type Matcher struct {
	strategy   Strategy
	similarity SimilarityFunc
	threshold  float64
}

// Option configures a Matcher
type Option func(*Matcher)

// WithStrategy selects the similarity function
func WithStrategy(s Strategy) Option {
	return func(m *Matcher) {
		m.strategy = s
	}
}

// WithThreshold sets the minimum score for a match
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// New creates a Matcher. Without options it uses character frequency and DefaultThreshold.
func New(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		strategy:  StrategyCharFrequency,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}

	switch m.strategy {
	case StrategyCharFrequency:
		m.similarity = Similarity
	case StrategyLevenshtein:
		m.similarity = LevenshteinSimilarity
	default:
		return nil, goerr.Wrap(ErrUnknownStrategy, "invalid matcher strategy", goerr.V("strategy", m.strategy))
	}

	if m.threshold <= 0 || m.threshold > 1 {
		return nil, goerr.New("match threshold must be in (0, 1]", goerr.V("threshold", m.threshold))
	}

	return m, nil
}

// Strategy returns the configured strategy
func (m *Matcher) Strategy() Strategy {
	return m.strategy
}

// Threshold returns the configured threshold
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// BestMatch scores query against every label in order. Only a strictly greater
// score replaces the current best, so the first of equal candidates wins.
// Result.Index is NoMatch when the best score is below the threshold.
func (m *Matcher) BestMatch(labels []string, query string) Result {
	best := Result{Index: NoMatch}
	for i, label := range labels {
		score := m.similarity(query, label)
		if score > best.Score {
			best = Result{Index: i, Score: score}
		}
	}

	if best.Score < m.threshold {
		return Result{Index: NoMatch, Score: best.Score}
	}
	return best
}

// Labels extracts the labels of candidates
func Labels[T Labeled](candidates []T) []string {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.GetLabel()
	}
	return labels
}

var defaultMatcher = &Matcher{
	strategy:   StrategyCharFrequency,
	similarity: Similarity,
	threshold:  DefaultThreshold,
}

// BestMatchIndex returns the index of the candidate best matching query with
// the default matcher, or NoMatch.
func BestMatchIndex[T Labeled](candidates []T, query string) int {
	return defaultMatcher.BestMatch(Labels(candidates), query).Index
}
