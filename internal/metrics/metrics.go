// Package metrics records bot activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the bot's collectors. A nil *Recorder records nothing.
type Recorder struct {
	eventsTotal      *prometheus.CounterVec
	rateLimitedTotal prometheus.Counter
	sendsTotal       *prometheus.CounterVec
	sendDuration     *prometheus.HistogramVec
	finalizeTotal    *prometheus.CounterVec
	notifyTotal      *prometheus.CounterVec
	aiTotal          *prometheus.CounterVec
	aiDuration       prometheus.Histogram
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		eventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hirebot_events_total",
				Help: "Inbound conversation events by kind and flow",
			},
			[]string{"kind", "flow"},
		),
		rateLimitedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hirebot_rate_limited_total",
			Help: "Inbound events rejected by the per-user rate limiter",
		}),
		sendsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hirebot_sends_total",
				Help: "Outbound Telegram calls by action and status",
			},
			[]string{"action", "status"},
		),
		sendDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hirebot_send_duration_seconds",
				Help:    "Duration of outbound Telegram calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		finalizeTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hirebot_finalize_total",
				Help: "Finalize attempts by record kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		notifyTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hirebot_notify_total",
				Help: "Best-effort notifications by sink and status",
			},
			[]string{"sink", "status"},
		),
		aiTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hirebot_ai_replies_total",
				Help: "AI fallback attempts by outcome",
			},
			[]string{"outcome"},
		),
		aiDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hirebot_ai_duration_seconds",
			Help:    "Duration of AI fallback calls",
			Buckets: []float64{0.5, 1, 2, 4, 8, 12, 15},
		}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (r *Recorder) Event(kind, flow string) {
	if r == nil {
		return
	}
	r.eventsTotal.WithLabelValues(kind, flow).Inc()
}

func (r *Recorder) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimitedTotal.Inc()
}

// Send records one outbound call.
func (r *Recorder) Send(action string, err error, d time.Duration) {
	if r == nil {
		return
	}
	r.sendsTotal.WithLabelValues(action, status(err)).Inc()
	r.sendDuration.WithLabelValues(action).Observe(d.Seconds())
}

// Finalize records a commit attempt. kind is "application" or "contact".
func (r *Recorder) Finalize(kind string, err error) {
	if r == nil {
		return
	}
	outcome := "committed"
	if err != nil {
		outcome = "persist_failed"
	}
	r.finalizeTotal.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) Notify(sink string, err error) {
	if r == nil {
		return
	}
	r.notifyTotal.WithLabelValues(sink, status(err)).Inc()
}

// AI records a fallback attempt. outcome is one of replied, empty, quota.
func (r *Recorder) AI(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.aiTotal.WithLabelValues(outcome).Inc()
	if d > 0 {
		r.aiDuration.Observe(d.Seconds())
	}
}
