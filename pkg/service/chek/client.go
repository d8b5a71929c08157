package chek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/chek-project/chek-kma/pkg/domain/interfaces"
	"github.com/chek-project/chek-kma/pkg/domain/model"
	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/service/metrics"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
	"github.com/chek-project/chek-kma/pkg/utils/safe"
)

const (
	// DefaultBaseURL is the public CHEK API
	DefaultBaseURL = "https://chek1.fraunhofer.app/api/v1"
	// DefaultTimeout bounds every request including reading the body
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 10 << 20

	projectsPath        = "projects/"
	maturityEntriesPath = "get_maturity_entries_"
)

// Client calls the CHEK backend. The bearer token is read from the TokenSource on every request.
type Client struct {
	baseURL    *url.URL
	tokens     interfaces.TokenSource
	httpClient *http.Client
	metrics    *metrics.Metrics
}

var _ interfaces.MaturityAPI = &Client{}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(x *Client) {
		x.httpClient = c
	}
}

// WithMetrics records request counts and latency
func WithMetrics(m *metrics.Metrics) Option {
	return func(x *Client) {
		x.metrics = m
	}
}

// NewHTTPClient returns an HTTP client with dial, TLS and overall timeouts
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConnsPerHost: 4,
		},
	}
}

// New creates a backend client for baseURL
func New(baseURL string, tokens interfaces.TokenSource, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, goerr.New("token source is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid API base URL", goerr.V("base_url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("API base URL must be http or https", goerr.V("base_url", baseURL))
	}

	c := &Client{
		baseURL: u,
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(DefaultTimeout)
	}

	return c, nil
}

// BaseURL returns the configured API base
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListProjects calls GET /projects/
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	body, err := c.get(ctx, projectsPath, nil)
	if err != nil {
		return nil, err
	}

	if err := expectArray(body); err != nil {
		return nil, goerr.Wrap(err, "projects response", goerr.V(EndpointKey, projectsPath))
	}
	var projects []model.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "failed to decode projects",
			goerr.V(EndpointKey, projectsPath), goerr.V("cause", err.Error()))
	}
	return projects, nil
}

// GetMaturityEntries calls GET /get_maturity_entries_<category>?project_id=<id>
func (c *Client) GetMaturityEntries(ctx context.Context, category types.MaturityCategory, projectID types.ProjectID) ([]model.AnsweredItem, error) {
	if !category.IsValid() {
		return nil, goerr.Wrap(types.ErrUnknownCategory, "cannot fetch maturity entries", goerr.V(CategoryKey, category))
	}

	path := maturityEntriesPath + category.EndpointName()
	query := url.Values{"project_id": []string{projectID.String()}}

	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch maturity entries",
			goerr.V(CategoryKey, category), goerr.V(ProjectIDKey, projectID))
	}

	if err := expectArray(body); err != nil {
		return nil, goerr.Wrap(err, "maturity entries response", goerr.V(EndpointKey, path))
	}
	var items []model.AnsweredItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "failed to decode maturity entries",
			goerr.V(EndpointKey, path), goerr.V("cause", err.Error()))
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (body []byte, err error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		c.metrics.ObserveAPIRequest(path, outcome, time.Since(start))
	}()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		outcome = "no_token"
		return nil, goerr.Wrap(err, "failed to read access token", goerr.V(EndpointKey, path))
	}

	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		outcome = "transport_error"
		return nil, goerr.Wrap(ErrTransport, "failed to build request", goerr.V(EndpointKey, path), goerr.V("cause", err.Error()))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	logging.From(ctx).Debug("calling backend", "method", req.Method, "url", u.Redacted())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "transport_error"
		return nil, goerr.Wrap(ErrTransport, "backend request failed",
			goerr.V(EndpointKey, path), goerr.V("cause", err.Error()))
	}
	defer safe.DrainAndClose(ctx, resp.Body, maxResponseBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_status"
		return nil, &StatusError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		outcome = "transport_error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, goerr.Wrap(ErrTransport, "backend response interrupted", goerr.V(EndpointKey, path), goerr.V("cause", err.Error()))
		}
		return nil, goerr.Wrap(ErrMalformedResponse, "failed to read backend response", goerr.V(EndpointKey, path), goerr.V("cause", err.Error()))
	}
	if len(body) > maxResponseBytes {
		outcome = "malformed"
		return nil, goerr.Wrap(ErrMalformedResponse, "backend response too large", goerr.V(EndpointKey, path))
	}

	return body, nil
}

func expectArray(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return goerr.Wrap(ErrMalformedResponse, "expected a JSON array")
	}
	return nil
}
