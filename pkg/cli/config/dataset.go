package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/service/benchmark"
	"github.com/chek-project/chek-kma/pkg/service/questionnaire"
)

// Dataset selects the benchmark dataset. The embedded one is used unless a file is given.
type Dataset struct {
	benchmarkFile string
}

func (x *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "benchmark-file",
			Usage:       "TOML file replacing the embedded benchmark dataset",
			Category:    "Dataset",
			Destination: &x.benchmarkFile,
			Sources:     cli.EnvVars("CHEK_KMA_BENCHMARK_FILE"),
		},
	}
}

func (x Dataset) LogValue() slog.Value {
	if x.benchmarkFile == "" {
		return slog.StringValue("embedded")
	}
	return slog.StringValue(x.benchmarkFile)
}

// Configure loads the benchmark set
func (x *Dataset) Configure() (*model.BenchmarkSet, error) {
	if x.benchmarkFile == "" {
		set, err := benchmark.Default()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load embedded benchmarks")
		}
		return set, nil
	}

	set, err := benchmark.LoadFile(x.benchmarkFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load benchmark file", goerr.V(PathKey, x.benchmarkFile))
	}
	return set, nil
}

// Questions loads the embedded question catalogue
func (x *Dataset) Questions() ([]model.Question, error) {
	questions, err := questionnaire.Default()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load question catalogue")
	}
	return questions, nil
}
