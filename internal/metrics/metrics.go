package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "publicaciones"

// Metrics holds the HTTP and file store collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fileOpDuration  *prometheus.HistogramVec
	fileOpErrors    *prometheus.CounterVec
	uploadedBytes   prometheus.Counter
}

// New registers all collectors on reg. A collector already registered by an
// earlier call is reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		fileOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filestore_operation_duration_seconds",
			Help:      "Latency of file store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		fileOpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filestore_operation_errors_total",
			Help:      "Failed file store operations.",
		}, []string{"operation"}),
		uploadedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filestore_uploaded_bytes_total",
			Help:      "Bytes successfully written to the file store.",
		}),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.requestDuration, err = register(reg, m.requestDuration); err != nil {
		return nil, err
	}
	if m.fileOpDuration, err = register(reg, m.fileOpDuration); err != nil {
		return nil, err
	}
	if m.fileOpErrors, err = register(reg, m.fileOpErrors); err != nil {
		return nil, err
	}
	if m.uploadedBytes, err = register(reg, m.uploadedBytes); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveSave(d time.Duration, size int64, err error) {
	m.fileOpDuration.WithLabelValues("save").Observe(d.Seconds())
	if err != nil {
		m.fileOpErrors.WithLabelValues("save").Inc()
		return
	}
	if size > 0 {
		m.uploadedBytes.Add(float64(size))
	}
}

func (m *Metrics) ObserveRemove(d time.Duration, err error) {
	m.fileOpDuration.WithLabelValues("remove").Observe(d.Seconds())
	if err != nil {
		m.fileOpErrors.WithLabelValues("remove").Inc()
	}
}

// Handler exposes g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
