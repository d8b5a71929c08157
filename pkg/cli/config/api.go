package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/service/chek"
	"github.com/chek-project/chek-kma/pkg/service/metrics"
	"github.com/chek-project/chek-kma/pkg/usecase"
)

// API holds the backend connection settings
type API struct {
	baseURL   string
	timeout   time.Duration
	token     string
	tokenFile string
}

func (x *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Base URL of the CHEK backend API",
			Category:    "API",
			Value:       chek.DefaultBaseURL,
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("CHEK_KMA_API_URL"),
		},
		&cli.DurationFlag{
			Name:        "api-timeout",
			Usage:       "Timeout of one backend request",
			Category:    "API",
			Value:       chek.DefaultTimeout,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("CHEK_KMA_API_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Bearer access token for the backend",
			Category:    "API",
			Destination: &x.token,
			Sources:     cli.EnvVars("CHEK_KMA_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "token-file",
			Usage:       "File containing the bearer access token",
			Category:    "API",
			Destination: &x.tokenFile,
			Sources:     cli.EnvVars("CHEK_KMA_TOKEN_FILE"),
		},
	}
}

func (x API) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.baseURL),
		slog.Duration("timeout", x.timeout),
		slog.Int("token.len", len(x.token)),
		slog.String("token_file", x.tokenFile),
	)
}

// BaseURL returns the configured API base URL
func (x *API) BaseURL() string {
	if x.baseURL == "" {
		return chek.DefaultBaseURL
	}
	return x.baseURL
}

// Timeout returns the configured request timeout
func (x *API) Timeout() time.Duration {
	if x.timeout <= 0 {
		return chek.DefaultTimeout
	}
	return x.timeout
}

// StaticToken returns the token given by --token or --token-file
func (x *API) StaticToken() (chek.StaticToken, error) {
	if x.token != "" && x.tokenFile != "" {
		return "", goerr.Wrap(ErrTokenConflict, "invalid token configuration")
	}
	if x.tokenFile != "" {
		// #nosec G304 - path is provided by CLI argument
		data, err := os.ReadFile(x.tokenFile)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read token file", goerr.V(PathKey, x.tokenFile))
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", goerr.Wrap(ErrMissingToken, "token file is empty", goerr.V(PathKey, x.tokenFile))
		}
		return chek.StaticToken(token), nil
	}
	if x.token == "" {
		return "", goerr.Wrap(ErrMissingToken, "set --token or --token-file")
	}
	return chek.StaticToken(x.token), nil
}

// Configure creates a backend client reading its token from tokens
func (x *API) Configure(tokens interfaces.TokenSource, m *metrics.Metrics) (*chek.Client, error) {
	client, err := chek.New(x.BaseURL(), tokens,
		chek.WithHTTPClient(chek.NewHTTPClient(x.Timeout())),
		chek.WithMetrics(m),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure backend client")
	}
	return client, nil
}

// Factory returns an APIFactory creating one client per session
func (x *API) Factory(m *metrics.Metrics) usecase.APIFactory {
	httpClient := chek.NewHTTPClient(x.Timeout())
	baseURL := x.BaseURL()
	return func(tokens interfaces.TokenSource) (interfaces.MaturityAPI, error) {
		return chek.New(baseURL, tokens, chek.WithHTTPClient(httpClient), chek.WithMetrics(m))
	}
}
