package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/service/matcher"
)

// Matcher selects the label matching algorithm
type Matcher struct {
	algorithm string
	threshold float64
}

func (x *Matcher) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "match-algorithm",
			Usage:       "Label similarity algorithm (charfreq, levenshtein)",
			Category:    "Matcher",
			Value:       string(matcher.StrategyCharFrequency),
			Destination: &x.algorithm,
			Sources:     cli.EnvVars("CHEK_KMA_MATCH_ALGORITHM"),
		},
		&cli.FloatFlag{
			Name:        "match-threshold",
			Usage:       "Minimum similarity for a benchmark match",
			Category:    "Matcher",
			Value:       matcher.DefaultThreshold,
			Destination: &x.threshold,
			Sources:     cli.EnvVars("CHEK_KMA_MATCH_THRESHOLD"),
		},
	}
}

func (x Matcher) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("algorithm", x.algorithm),
		slog.Float64("threshold", x.threshold),
	)
}

func (x *Matcher) Configure() (*matcher.Matcher, error) {
	strategy, err := matcher.ParseStrategy(x.algorithm)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid --match-algorithm")
	}

	threshold := x.threshold
	if threshold == 0 {
		threshold = matcher.DefaultThreshold
	}

	m, err := matcher.New(matcher.WithStrategy(strategy), matcher.WithThreshold(threshold))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure matcher")
	}
	return m, nil
}
