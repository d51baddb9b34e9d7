package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Auction lifecycle transitions recorded by AuctionTransitions
const (
	TransitionCreated  = "created"
	TransitionApproved = "approved"
	TransitionEdited   = "edited"
	TransitionDeleted  = "deleted"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auction_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	AuctionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_lifecycle_transitions_total",
		Help: "Auction lifecycle transitions",
	}, []string{"transition"})

	BidsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_placed_total",
		Help: "Accepted bids by auction type",
	}, []string{"auction_type"})

	BidsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_bids_rejected_total",
		Help: "Bids rejected by validation",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_uploads_total",
		Help: "Stored uploads by kind",
	}, []string{"kind"})
)

// RecordTransition counts one auction lifecycle transition
func RecordTransition(transition string) {
	AuctionTransitions.WithLabelValues(transition).Inc()
}
