package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector the service exposes. It is private so that
// tests and the /metrics endpoint see the same, isolated set.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	httpRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	resumesSavedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "resumes_saved_total",
		Help: "Resume documents persisted, by operation.",
	}, []string{"op"})

	documentCoercionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "document_coercions_total",
		Help: "Malformed document fragments replaced by defaults, by kind.",
	}, []string{"kind"})

	paymentsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_total",
		Help: "Manual payment lifecycle events.",
	}, []string{"event"})

	creditsDeductedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "credits_deducted_total",
		Help: "Credits consumed by users.",
	})

	rephraseRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "rephrase_requests_total",
		Help: "AI rephrase requests by outcome.",
	}, []string{"outcome"})

	rephraseDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "rephrase_duration_seconds",
		Help:    "Latency of AI rephrase provider calls.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveHTTPRequest counts one finished request.
func ObserveHTTPRequest(method, route, status string) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
}

// IncResumeSaved counts a persisted resume; op is create, update or patch.
func IncResumeSaved(op string) {
	resumesSavedTotal.WithLabelValues(op).Inc()
}

// IncDocumentCoercion counts a malformed fragment replaced by a default.
func IncDocumentCoercion(kind string) {
	documentCoercionsTotal.WithLabelValues(kind).Inc()
}

// DocumentCoercions returns the coercion counter for kind.
func DocumentCoercions(kind string) prometheus.Counter {
	return documentCoercionsTotal.WithLabelValues(kind)
}

// IncPayment counts a payment event: recorded, confirmed, revoked or duplicate.
func IncPayment(event string) {
	paymentsTotal.WithLabelValues(event).Inc()
}

// AddCreditsDeducted adds n consumed credits.
func AddCreditsDeducted(n int) {
	if n > 0 {
		creditsDeductedTotal.Add(float64(n))
	}
}

// ObserveRephrase records the outcome and latency of one provider call.
func ObserveRephrase(outcome string, elapsed time.Duration) {
	rephraseRequestsTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		rephraseDuration.Observe(elapsed.Seconds())
	}
}

// RephraseRequests returns the counter for one rephrase outcome.
func RephraseRequests(outcome string) prometheus.Counter {
	return rephraseRequestsTotal.WithLabelValues(outcome)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
	return gin.WrapH(h)
}
