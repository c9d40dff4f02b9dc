package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     *prometheus.CounterVec
}

type BusinessMetrics struct {
	TransactionsTotal       *prometheus.CounterVec
	NotificationsDelivered  *prometheus.CounterVec
	LoansBuiltTotal         *prometheus.CounterVec
	InterestCalculations    *prometheus.CounterVec
	InterestAccrualDuration prometheus.Histogram
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_engine_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "banking_engine_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
		RateLimited: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_engine_http_rate_limited_total",
				Help: "Total number of HTTP requests rejected by the rate limiter.",
			},
			[]string{"path"},
		),
	}

	Business = BusinessMetrics{
		TransactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_engine_transactions_total",
				Help: "Total number of account transactions by operation and outcome.",
			},
			[]string{"operation", "status"},
		),
		NotificationsDelivered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_engine_notifications_delivered_total",
				Help: "Total number of notification deliveries per sink.",
			},
			[]string{"sink", "status"},
		),
		LoansBuiltTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_engine_loans_built_total",
				Help: "Total number of loan agreements built per preset.",
			},
			[]string{"preset"},
		),
		InterestCalculations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "banking_engine_interest_calculations_total",
				Help: "Total number of interest calculations per strategy.",
			},
			[]string{"strategy"},
		),
		InterestAccrualDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "banking_engine_interest_accrual_duration_seconds",
				Help:    "Duration of interest accrual job runs.",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordRateLimited(path string) {
	HTTP.RateLimited.WithLabelValues(path).Inc()
}

func RecordTransaction(operation, status string) {
	Business.TransactionsTotal.WithLabelValues(operation, status).Inc()
}

func RecordDelivery(sink, status string) {
	Business.NotificationsDelivered.WithLabelValues(sink, status).Inc()
}

func RecordLoanBuilt(preset string) {
	Business.LoansBuiltTotal.WithLabelValues(preset).Inc()
}

func RecordInterestCalculation(strategy string) {
	Business.InterestCalculations.WithLabelValues(strategy).Inc()
}

func RecordInterestAccrual(duration time.Duration) {
	Business.InterestAccrualDuration.Observe(duration.Seconds())
}
