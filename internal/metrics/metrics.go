package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Chat backend (Dify) metrics
	BackendRequestsTotal   *prometheus.CounterVec
	BackendDurationSeconds prometheus.Histogram

	// Reply transport metrics
	ReplyRequestsTotal *prometheus.CounterVec

	// Answer parser metrics
	ParserFallbacksTotal *prometheus.CounterVec

	// Carousel metrics
	CarouselCardsRendered prometheus.Histogram
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "swatch_webhook_requests_total",
				Help: "Total number of webhook requests by HTTP status",
			},
			[]string{"status"}, // status: HTTP status code ("200", "401", "502", ...)
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swatch_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by outcome",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60}, // Backend runs can take tens of seconds
			},
			[]string{"status"},
		),

		BackendRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "swatch_backend_requests_total",
				Help: "Total number of chat backend requests by status",
			},
			[]string{"status"}, // status: success, error
		),

		BackendDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "swatch_backend_duration_seconds",
				Help:    "Chat backend request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),

		ReplyRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "swatch_reply_requests_total",
				Help: "Total number of LINE reply API calls by status",
			},
			[]string{"status"}, // status: success, error
		),

		ParserFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "swatch_parser_fallbacks_total",
				Help: "Total number of answer parser degradations by kind",
			},
			[]string{"kind"}, // kind: malformed_block, plain_text, single_block_meta, empty_reply
		),

		CarouselCardsRendered: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "swatch_carousel_cards_rendered",
				Help:    "Number of cards rendered per carousel reply",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
			},
		),
	}

	return m
}

// RecordWebhook records a webhook request outcome
func (m *Metrics) RecordWebhook(status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(status).Observe(duration)
}

// RecordBackendRequest records a chat backend request with status
func (m *Metrics) RecordBackendRequest(status string, duration float64) {
	m.BackendRequestsTotal.WithLabelValues(status).Inc()
	m.BackendDurationSeconds.Observe(duration)
}

// RecordReply records a reply transport call
func (m *Metrics) RecordReply(status string) {
	m.ReplyRequestsTotal.WithLabelValues(status).Inc()
}

// RecordParserFallback records an answer parser degradation
func (m *Metrics) RecordParserFallback(kind string) {
	m.ParserFallbacksTotal.WithLabelValues(kind).Inc()
}

// RecordCarouselCards records the card count of a rendered carousel
func (m *Metrics) RecordCarouselCards(count int) {
	m.CarouselCardsRendered.Observe(float64(count))
}
