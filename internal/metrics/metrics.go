package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MeetingTransitionsTotal    = "meeting_transitions_total"
	BidsPlacedTotal            = "bids_placed_total"
	SettlementsTotal           = "settlements_total"
	SweepRunsTotal             = "sweep_runs_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
)

var (
	MeetingTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: MeetingTransitionsTotal,
		Help: "Count of meeting transition attempts by rule and whether they changed the meeting",
	}, []string{"transition", "applied"})

	BidsPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: BidsPlacedTotal,
		Help: "Count of bid placement attempts by result",
	}, []string{"result"})

	Settlements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: SettlementsTotal,
		Help: "Count of refund and payout requests by kind and result",
	}, []string{"kind", "result"})

	SweepRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: SweepRunsTotal,
		Help: "Count of scheduled job runs by job and result",
	}, []string{"job", "result"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: HTTPRequestDurationSeconds,
		Help: "Duration of all HTTP requests",
	}, []string{"method", "status_code"})
)

// NewHandler exposes the engine collectors together with the Go runtime collectors
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(MeetingTransitions, BidsPlaced, Settlements, SweepRuns, HTTPRequestDuration)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Applied renders a transition result as a label value
func Applied(applied bool) string {
	if applied {
		return "true"
	}
	return "false"
}

// Result renders an error as a label value
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
