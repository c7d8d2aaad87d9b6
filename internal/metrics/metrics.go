// Package metrics exposes the service's Prometheus instrumentation: HTTP
// request counters and latencies plus the provisioning-specific series.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once
	registerErr  error

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	provisionAttemptsTotal  *prometheus.CounterVec
	storeWriteFailuresTotal *prometheus.CounterVec
)

// Provision results.
const (
	ProvisionCreated = "created"
	ProvisionExists  = "exists"
	ProvisionError   = "error"
)

// Store labels for write failures.
const (
	StoreDocument = "document"
	StoreRealtime = "realtime"
)

// Register initializes and registers all collectors and returns the handler
// for /metrics. Safe to call more than once.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "In-flight HTTP requests by method and path",
		}, []string{"method", "path"})

		provisionAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provision_attempts_total",
			Help: "Account provisioning attempts by result",
		}, []string{"result"}) // result: created|exists|error

		storeWriteFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_write_failures_total",
			Help: "Failed writes by backing store",
		}, []string{"store"}) // store: document|realtime

		for _, c := range []prometheus.Collector{
			httpRequestsTotal,
			httpRequestDuration,
			httpInflight,
			provisionAttemptsTotal,
			storeWriteFailuresTotal,
		} {
			if err := register(reg, c); err != nil {
				registerErr = err
				return
			}
		}
	})
	if registerErr != nil {
		return nil, registerErr
	}

	return promhttp.Handler(), nil
}

// WithMetrics instruments HTTP requests with counters, latency, and inflight
// gauges.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httpRequestsTotal == nil {
			next.ServeHTTP(w, r)
			return
		}

		method := strings.ToUpper(r.Method)
		pathLabel := normalizePath(r.URL.Path)

		httpInflight.WithLabelValues(method, pathLabel).Inc()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			httpInflight.WithLabelValues(method, pathLabel).Dec()
			httpRequestDuration.WithLabelValues(method, pathLabel).Observe(time.Since(start).Seconds())

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			httpRequestsTotal.WithLabelValues(method, pathLabel, strconv.Itoa(status)).Inc()
		}()

		next.ServeHTTP(rec, r)
	})
}

// RecordProvision counts one provisioning attempt.
func RecordProvision(result string) {
	if provisionAttemptsTotal != nil {
		provisionAttemptsTotal.WithLabelValues(result).Inc()
	}
}

// RecordStoreWriteFailure counts one failed write against a backing store.
func RecordStoreWriteFailure(store string) {
	if storeWriteFailuresTotal != nil {
		storeWriteFailuresTotal.WithLabelValues(store).Inc()
	}
}

func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses id-looking segments so the path label stays low
// cardinality.
func normalizePath(p string) string {
	clean := strings.SplitN(p, "?", 2)[0]
	segments := strings.Split(clean, "/")

	var out []string
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if isDynamicSegment(seg) {
			out = append(out, ":param")
		} else {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

func isDynamicSegment(seg string) bool {
	if len(seg) > 24 {
		return true
	}
	if _, err := strconv.Atoi(seg); err == nil {
		return true
	}
	return false
}
