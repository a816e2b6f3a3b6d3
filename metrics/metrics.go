// Package metrics serves Prometheus metrics on a dedicated listener and
// defines the service's instruments.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "certificate_registry"

var (
	// UploadsTotal counts accepted document uploads.
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Number of certificate documents accepted for issuance.",
	})

	// IssuancesTotal counts confirmed ledger issuances, including attached
	// client-submitted transactions.
	IssuancesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issuances_total",
		Help:      "Number of certificates anchored on the ledger.",
	})

	// VerificationsTotal counts verification reads across all three lookup
	// paths.
	VerificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Number of verification requests served.",
	})

	// RevocationsTotal counts confirmed revocations.
	RevocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revocations_total",
		Help:      "Number of certificates revoked.",
	})

	// UploadSizeBytes tracks accepted document sizes up to the 10 MiB cap.
	UploadSizeBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of accepted certificate documents.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	})
)

// MetricsServer exposes the default Prometheus registry over HTTP.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given listen address. An empty address
// yields a server that never starts; callers gate ListenAndServe on the
// address being set.
func New(listenAddr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:         listenAddr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving the metrics endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
