package benchmark

import (
	"bytes"
	_ "embed"
	"os"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

//go:embed data/benchmarks.toml
var defaultDataset []byte

type datasetFile struct {
	Process      []model.BenchmarkEntry `toml:"Process"`
	Organisation []model.BenchmarkEntry `toml:"Organisation"`
	Technology   []model.BenchmarkEntry `toml:"Technology"`
	Information  []model.BenchmarkEntry `toml:"Information"`
}

var loadDefault = sync.OnceValues(func() (*model.BenchmarkSet, error) {
	return Parse(defaultDataset)
})

// Default returns the built-in benchmark dataset
func Default() (*model.BenchmarkSet, error) {
	return loadDefault()
}

// LoadFile reads a benchmark dataset in the built-in TOML layout
func LoadFile(path string) (*model.BenchmarkSet, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read benchmark dataset", goerr.V("path", path))
	}
	set, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load benchmark dataset", goerr.V("path", path))
	}
	return set, nil
}

// Parse decodes a TOML benchmark dataset. Every category must have at least one entry.
func Parse(data []byte) (*model.BenchmarkSet, error) {
	var f datasetFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse benchmark TOML")
	}

	entries := map[types.MaturityCategory][]model.BenchmarkEntry{
		types.MaturityCategoryProcess:      f.Process,
		types.MaturityCategoryOrganisation: f.Organisation,
		types.MaturityCategoryTechnology:   f.Technology,
		types.MaturityCategoryInformation:  f.Information,
	}
	for category, list := range entries {
		if len(list) == 0 {
			return nil, goerr.Wrap(model.ErrEmptyBenchmark, "benchmark category is empty", goerr.V(model.CategoryKey, category))
		}
	}

	set, err := model.NewBenchmarkSet(entries)
	if err != nil {
		return nil, err
	}

	for category, labels := range set.DuplicateLabels() {
		logging.Default().Warn("duplicate benchmark labels", "category", category, "labels", labels)
	}

	return set, nil
}
