package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/chek-project/chek-kma/pkg/service/metrics"
)

func TestMetrics_Observe(t *testing.T) {
	m := metrics.New()
	m.ObserveAPIRequest("projects", "ok", 10*time.Millisecond)
	m.ObserveAPIRequest("projects", "ok", 20*time.Millisecond)
	m.ObserveMatch("Organisation", true)
	m.ObserveMatch("Organisation", false)
	m.ObserveLoad("maturity", true)

	count, err := testutil.GatherAndCount(m.Registry(),
		"chek_kma_api_requests_total",
		"chek_kma_benchmark_matches_total",
		"chek_kma_store_loads_total",
	)
	gt.NoError(t, err).Required()
	// one series for api requests, two for matches, one for loads
	gt.V(t, count).Equal(4)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveLoad("projects", false)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()

	gt.V(t, resp.StatusCode).Equal(http.StatusOK)
	gt.S(t, string(body)).Contains(`chek_kma_store_loads_total{kind="projects",result="failed"} 1`)
}

func TestMetrics_Nil(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveAPIRequest("projects", "ok", time.Second)
	m.ObserveMatch("Process", true)
	m.ObserveLoad("maturity", true)
	gt.Value(t, m.Registry()).Nil()
}
