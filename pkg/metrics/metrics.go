package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	IngestEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_events_total",
			Help: "Total number of webhook events received by ingest service (count)",
		},
		[]string{"status"},
	)

	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of analysis requests processed (count)",
		},
		[]string{"status"},
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_ms",
			Help:    "Duration of a full window analysis in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"status"},
	)

	WindowMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "window_messages",
			Help: "Number of messages currently held in the analysis window (count)",
		},
	)

	DedupMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dedup_messages_total",
			Help: "Total number of messages checked for duplicates (count)",
		},
		[]string{"status"},
	)

	DirectoryLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_lookups_total",
			Help: "Total number of user directory lookups (count)",
		},
		[]string{"source", "status"},
	)

	DirectoryLookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_lookup_duration_ms",
			Help:    "Duration of user directory lookups in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"source"},
	)

	SummarizerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_requests_total",
			Help: "Total number of summarizer requests (count)",
		},
		[]string{"status"},
	)

	FallbackUsageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_usage_total",
			Help: "Total number of times fallback strategies were used (count)",
		},
		[]string{"service", "strategy", "reason"},
	)

	RetryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of retry attempts (count)",
		},
		[]string{"service", "topic"},
	)

	DLQMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dlq_messages_total",
			Help: "Total number of messages sent to DLQ (count)",
		},
		[]string{"service", "topic", "reason"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)

	KafkaMessagesReadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_read_total",
			Help: "Total number of messages read from Kafka (count)",
		},
		[]string{"service", "topic"},
	)

	KafkaMessagesWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_written_total",
			Help: "Total number of messages written to Kafka (count)",
		},
		[]string{"service", "topic"},
	)

	KafkaConsumerLag = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kafka_consumer_lag",
			Help: "Kafka consumer lag (difference between latest offset and committed offset) (count)",
		},
		[]string{"service", "topic", "partition"},
	)
)

func RegisterIngestMetrics() {
	prometheus.MustRegister(IngestEventsTotal)
	registerFallbackUsageTotalOnce()
}

func RegisterAnalysisMetrics() {
	prometheus.MustRegister(AnalysisRequestsTotal)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(WindowMessages)
	prometheus.MustRegister(SummarizerRequestsTotal)
	registerFallbackUsageTotalOnce()
}

func RegisterDedupMetrics() {
	prometheus.MustRegister(DedupMessagesTotal)
}

func RegisterDirectoryMetrics() {
	prometheus.MustRegister(DirectoryLookupsTotal)
	prometheus.MustRegister(DirectoryLookupDuration)
}

func RegisterBrokerMetrics() {
	prometheus.MustRegister(RetryAttemptsTotal)
	prometheus.MustRegister(DLQMessagesTotal)
	prometheus.MustRegister(KafkaMessagesReadTotal)
	prometheus.MustRegister(KafkaMessagesWrittenTotal)
	prometheus.MustRegister(KafkaConsumerLag)
}

func RegisterCircuitBreakerMetrics() {
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(CircuitBreakerRequests)
	prometheus.MustRegister(CircuitBreakerFailures)
}

func RegisterRateLimitMetrics() {
	prometheus.MustRegister(RateLimitRequestsTotal)
}

var fallbackRegistered bool

func registerFallbackUsageTotalOnce() {
	if fallbackRegistered {
		return
	}
	fallbackRegistered = true
	prometheus.MustRegister(FallbackUsageTotal)
}

func ObserveAnalysisDuration(duration time.Duration, status string) {
	AnalysisDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func SetWindowMessages(count int) {
	WindowMessages.Set(float64(count))
}

func IncDirectoryLookup(source, status string) {
	DirectoryLookupsTotal.WithLabelValues(source, status).Inc()
}

func ObserveDirectoryLookupDuration(source string, duration time.Duration) {
	DirectoryLookupDuration.WithLabelValues(source).Observe(float64(duration.Milliseconds()))
}

func IncKafkaMessagesRead(service, topic string) {
	KafkaMessagesReadTotal.WithLabelValues(service, topic).Inc()
}

func IncKafkaMessagesWritten(service, topic string) {
	KafkaMessagesWrittenTotal.WithLabelValues(service, topic).Inc()
}

func SetKafkaConsumerLag(service, topic string, partition int, lag int64) {
	KafkaConsumerLag.WithLabelValues(service, topic, fmt.Sprintf("%d", partition)).Set(float64(lag))
}
