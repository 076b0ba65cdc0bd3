package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteAndFoldsUnmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/articles/:id", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.POST("/declarations", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/articles/:id", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", UnmatchedPath, "404"))
	base204 := testutil.ToFloat64(httpReqs.WithLabelValues("POST", "/declarations", "204"))

	for _, target := range []string{"/articles/a1", "/articles/a2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s -> %d", target, w.Code)
		}
	}
	for _, target := range []string{"/wp-login.php", "/.env"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("GET %s -> %d", target, w.Code)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/declarations", nil))

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/articles/:id", "200")); got != baseOK+2 {
		t.Fatalf("route counter = %v; want %v", got, baseOK+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", UnmatchedPath, "404")); got != base404+2 {
		t.Fatalf("unmatched counter = %v; want %v", got, base404+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("POST", "/declarations", "204")); got != base204+1 {
		t.Fatalf("204 counter = %v; want %v", got, base204+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}

func TestRecordToggle(t *testing.T) {
	base := testutil.ToFloat64(toggleTotal.WithLabelValues("reaction", "added"))
	RecordToggle("reaction", "added")
	RecordToggle("reaction", "added")
	RecordToggle("declaration", "conflict")

	if got := testutil.ToFloat64(toggleTotal.WithLabelValues("reaction", "added")); got != base+2 {
		t.Fatalf("reaction/added = %v; want %v", got, base+2)
	}
	if got := testutil.ToFloat64(toggleTotal.WithLabelValues("declaration", "conflict")); got < 1 {
		t.Fatalf("declaration/conflict = %v; want >= 1", got)
	}
}

func TestObserveAggregate(t *testing.T) {
	before := testutil.CollectAndCount(aggregateLat)
	ObserveAggregate(3*time.Millisecond, true)
	ObserveAggregate(time.Millisecond, false)
	if after := testutil.CollectAndCount(aggregateLat); after < before || after < 2 {
		t.Fatalf("aggregate series = %d (before %d); want >= 2", after, before)
	}
}
