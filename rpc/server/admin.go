package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewAdminRouter returns the http handler of the admin endpoint:
//
//	GET /metrics - server and process metrics in the prometheus text format
//	GET /healthz - liveness probe
func NewAdminRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		m.WritePrometheus(w)
		metrics.WriteProcessMetrics(w)
	})
	return r
}

// serveAdmin runs the admin http server until ctx is cancelled
func serveAdmin(ctx context.Context, endpoint string, m *Metrics) {
	srv := &http.Server{
		Addr:              endpoint,
		Handler:           NewAdminRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	Logger.Infof("admin endpoint listening on http://%s", endpoint)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Logger.Errorf("admin endpoint stopped: %v", err)
	}
}
