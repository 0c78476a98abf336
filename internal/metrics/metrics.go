package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты запросов к ЦБ
const (
	FetchOK       = "ok"
	FetchNotFound = "not_found"
	FetchError    = "error"
)

var (
	upstreamFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tcmb_upstream_fetches_total",
		Help: "Number of publication fetches from the central bank feed by result.",
	}, []string{"result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tcmb_http_requests_total",
		Help: "Number of handled HTTP requests by method and status.",
	}, []string{"method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tcmb_http_request_duration_seconds",
		Help:    "HTTP request latency, including upstream fetches.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// ObserveFetch учитывает один запрос к источнику курсов
func ObserveFetch(result string) {
	upstreamFetches.WithLabelValues(result).Inc()
}

// ObserveRequest учитывает обработанный HTTP запрос
func ObserveRequest(method string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler отдаёт метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
