package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	emmaProxy = "emma_proxy"

	tokenRefreshesTotal         = "token_refreshes_total"
	tokenRefreshFailuresCurrent = "token_refresh_failures_current"
	tokenExpiryTimestampSeconds = "token_expiry_timestamp_seconds"
	vendorRequestsTotal         = "vendor_requests_total"

	// Labels
	resultLabel   = "result"
	resourceLabel = "resource"
	codeLabel     = "code"
)

/**
* Metrics definition
**/
var tokenRefreshesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: emmaProxy,
		Name:      tokenRefreshesTotal,
		Help:      "number of vendor token refresh attempts partitioned by result",
	},
	[]string{resultLabel},
)

var tokenRefreshFailuresCurrentMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: emmaProxy,
		Name:      tokenRefreshFailuresCurrent,
		Help:      "number of consecutive failed vendor token refreshes",
	},
)

var tokenExpiryTimestampMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: emmaProxy,
		Name:      tokenExpiryTimestampSeconds,
		Help:      "unix timestamp at which the current vendor token expires",
	},
)

var vendorRequestsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: emmaProxy,
		Name:      vendorRequestsTotal,
		Help:      "number of outbound vendor API requests partitioned by resource and status code",
	},
	[]string{resourceLabel, codeLabel},
)

func IncreaseTokenRefreshesTotalMetric(result string) {
	tokenRefreshesTotalMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func SetTokenRefreshFailuresMetric(count int) {
	tokenRefreshFailuresCurrentMetric.Set(float64(count))
}

func SetTokenExpiryTimestampMetric(unixSeconds float64) {
	tokenExpiryTimestampMetric.Set(unixSeconds)
}

func IncreaseVendorRequestsTotalMetric(resource string, code string) {
	vendorRequestsTotalMetric.With(prometheus.Labels{resourceLabel: resource, codeLabel: code}).Inc()
}

func init() {
	prometheus.MustRegister(
		tokenRefreshesTotalMetric,
		tokenRefreshFailuresCurrentMetric,
		tokenExpiryTimestampMetric,
		vendorRequestsTotalMetric,
	)
}
