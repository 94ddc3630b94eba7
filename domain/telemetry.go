package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// dex_quote_requests_total
	//
	// counter that measures the number of quote requests handled by the router
	//
	// Has the following labels:
	// * mode - "single" when a venue was requested explicitly, "aggregate" otherwise
	// * outcome - "ok" or the error code returned to the caller
	DexQuoteRequestsMetricName = "dex_quote_requests_total"

	// dex_venue_quote_errors_total
	//
	// counter that measures the number of quote errors returned by venue adapters,
	// including the ones swallowed during aggregate quoting
	//
	// Has the following labels:
	// * venue - the venue identifier
	// * code - the domain error code
	DexVenueQuoteErrorsMetricName = "dex_venue_quote_errors_total"

	// dex_venue_call_duration_seconds
	//
	// histogram of the latency of single adapter calls
	//
	// Has the following labels:
	// * venue - the venue identifier
	// * operation - the adapter operation
	DexVenueCallDurationMetricName = "dex_venue_call_duration_seconds"

	// dex_best_quote_wins_total
	//
	// counter that measures how often a venue wins aggregate quoting
	//
	// Has the following labels:
	// * venue - the venue identifier
	DexBestQuoteWinsMetricName = "dex_best_quote_wins_total"

	// dex_venue_healthy
	//
	// gauge set to 1 when the last health check of a venue succeeded, 0 otherwise
	//
	// Has the following labels:
	// * venue - the venue identifier
	DexVenueHealthyMetricName = "dex_venue_healthy"

	DexQuoteRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: DexQuoteRequestsMetricName,
			Help: "Total number of quote requests handled by the router",
		},
		[]string{"mode", "outcome"},
	)

	DexVenueQuoteErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: DexVenueQuoteErrorsMetricName,
			Help: "Total number of quote errors returned by venue adapters",
		},
		[]string{"venue", "code"},
	)

	DexVenueCallDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    DexVenueCallDurationMetricName,
			Help:    "Histogram of venue adapter call latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"venue", "operation"},
	)

	DexBestQuoteWinsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: DexBestQuoteWinsMetricName,
			Help: "Total number of aggregate quotes won by a venue",
		},
		[]string{"venue"},
	)

	DexVenueHealthyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: DexVenueHealthyMetricName,
			Help: "Whether the last health check of a venue succeeded",
		},
		[]string{"venue"},
	)
)

func init() {
	prometheus.MustRegister(DexQuoteRequestsCounter)
	prometheus.MustRegister(DexVenueQuoteErrorsCounter)
	prometheus.MustRegister(DexVenueCallDurationHistogram)
	prometheus.MustRegister(DexBestQuoteWinsCounter)
	prometheus.MustRegister(DexVenueHealthyGauge)
}
