package gateway

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const statusClassError = "error"

var sendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portal_gateway_requests_total",
	Help: "Query endpoint requests by response status class",
}, []string{"status_class"})

func recordSend(class string) {
	sendTotal.WithLabelValues(class).Inc()
}

// statusClass buckets an HTTP status as "2xx", "4xx" and so on.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}
