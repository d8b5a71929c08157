package cli

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/cli/config"
	"github.com/chek-project/chek-kma/pkg/usecase"
)

// storeConfig bundles the flag groups a one-shot store command needs
type storeConfig struct {
	api     config.API
	dataset config.Dataset
	matcher config.Matcher
}

func (x *storeConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.api.Flags()...)
	flags = append(flags, x.dataset.Flags()...)
	flags = append(flags, x.matcher.Flags()...)
	return flags
}

// Configure builds a store backed by a static token from the command line
func (x *storeConfig) Configure() (*usecase.MaturityStore, error) {
	token, err := x.api.StaticToken()
	if err != nil {
		return nil, err
	}
	client, err := x.api.Configure(token, nil)
	if err != nil {
		return nil, err
	}
	benchmarks, err := x.dataset.Configure()
	if err != nil {
		return nil, err
	}
	m, err := x.matcher.Configure()
	if err != nil {
		return nil, err
	}

	store, err := usecase.NewMaturityStore(client, benchmarks, usecase.WithMatcher(m))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create maturity store")
	}
	return store, nil
}
