package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	if metrics.HTTPRequestsTotal == nil || metrics.HTTPRequestDuration == nil {
		t.Fatal("HTTP metrics not initialized")
	}
	if metrics.ExportLookupsTotal == nil || metrics.MutationsTotal == nil {
		t.Fatal("domain metrics not initialized")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("registering twice should panic")
		}
	}()
	NewMetrics(registry)
}

func TestHTTPMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	router := mux.NewRouter()
	router.Use(HTTPMetricsMiddleware(metrics))
	router.HandleFunc("/api/permissions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest("DELETE", "/api/permissions/"+id, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("DELETE", "/api/permissions/{id}", "204"))
	if got != 3 {
		t.Errorf("requests counted = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(metrics.HTTPRequestDuration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestObserveExport(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.ObserveExport(ExportFound)
	metrics.ObserveExport(ExportNotFound)
	metrics.ObserveExport(ExportNotFound)

	if got := testutil.ToFloat64(metrics.ExportLookupsTotal.WithLabelValues(ExportNotFound)); got != 2 {
		t.Errorf("not_found = %v, want 2", got)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveExport(ExportFound)
	nilMetrics.ObserveMutation("project", "create", true)
}

func TestObserveMutation(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.ObserveMutation("group", "delete", true)
	metrics.ObserveMutation("group", "delete", false)

	if got := testutil.ToFloat64(metrics.MutationsTotal.WithLabelValues("group", "delete", "failure")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	metrics.ObserveExport(ExportFound)

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	RegisterDBStats(registry, db)

	rr := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `permctl_export_lookups_total{result="found"} 1`) {
		t.Errorf("export counter missing from output:\n%s", body)
	}
	if !strings.Contains(string(body), "go_sql_open_connections") {
		t.Errorf("db stats missing from output")
	}
}
