// Package metrics exposes prometheus counters for the main domain events and
// a small HTTP server serving /metrics and /healthz.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UsersCreated counts user registrations
	UsersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xperiencia_users_created_total",
		Help: "Total number of users registered",
	})

	// UsersDeleted counts user removals
	UsersDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xperiencia_users_deleted_total",
		Help: "Total number of users removed",
	})

	// BetsRecorded counts recorded bets by result label
	BetsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xperiencia_bets_recorded_total",
		Help: "Total number of bets recorded, by result",
	}, []string{"result"})

	// ReflectionsRecorded counts recorded reflections
	ReflectionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xperiencia_reflections_recorded_total",
		Help: "Total number of reflections recorded",
	})

	// ReportsGenerated counts generated reports by kind (user, system, period)
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xperiencia_reports_generated_total",
		Help: "Total number of reports generated, by kind",
	}, []string{"kind"})
)

// HealthFunc reports whether the service dependencies are reachable
type HealthFunc func(ctx context.Context) error

// StartMetricsServer starts a lightweight HTTP server for /metrics and
// /healthz in a background goroutine and returns it for shutdown.
func StartMetricsServer(port string, healthFn HealthFunc) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
