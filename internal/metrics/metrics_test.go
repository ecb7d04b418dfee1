package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersMove(t *testing.T) {
	before := testutil.ToFloat64(fallbacks.WithLabelValues("station_jobs"))
	FallbackServed("station_jobs")
	if got := testutil.ToFloat64(fallbacks.WithLabelValues("station_jobs")); got != before+1 {
		t.Fatalf("expected fallback counter to grow by one, got %v -> %v", before, got)
	}

	errBefore := testutil.ToFloat64(upstreamRequests.WithLabelValues("login", "error"))
	UpstreamCall("login", errors.New("boom"))
	UpstreamCall("login", nil)
	if got := testutil.ToFloat64(upstreamRequests.WithLabelValues("login", "error")); got != errBefore+1 {
		t.Fatalf("expected one error outcome, got %v", got-errBefore)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTP(http.MethodGet, "/health", "200", 10*time.Millisecond)
	TokenCleared()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"regadmin_http_requests_total", "regadmin_session_token_clears_total", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in exposition", name)
		}
	}
}
