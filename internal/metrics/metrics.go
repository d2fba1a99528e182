package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ContentFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_total",
			Help: "Content endpoint fetches by source and result",
		},
		[]string{"source", "result"},
	)

	ContentFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Content endpoint fetch latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	ContentRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_records_skipped_total",
			Help: "Malformed content records dropped while decoding",
		},
		[]string{"source"},
	)

	FeedEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feed_entries",
		Help: "Entries in the last normalized feed snapshot",
	})

	FeedCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_total",
			Help: "Feed snapshot lookups by cache level and result",
		},
		[]string{"level", "result"},
	)

	SlideshowSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slideshow_sessions",
		Help: "Open slideshow websocket sessions",
	})

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Image uploads by host and result",
		},
		[]string{"host", "result"},
	)
)
