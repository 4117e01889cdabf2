// Package metrics declares the prometheus collectors of the content service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RepositoryOperations counts repository calls by entity kind, operation and outcome kind.
	RepositoryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_repository_operations_total",
		Help: "Total number of content repository operations",
	}, []string{"kind", "op", "result"})

	// MediaOperations counts media commits and releases by folder and outcome.
	MediaOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_media_operations_total",
		Help: "Total number of media lifecycle operations",
	}, []string{"op", "folder", "result"})

	// MediaUploadBytes observes committed upload sizes.
	MediaUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_media_upload_bytes",
		Help:    "Size of committed media uploads",
		Buckets: prometheus.ExponentialBuckets(16*1024, 4, 7),
	})

	// FormSaveDuration observes form submissions from validation to outcome.
	FormSaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_form_save_duration_seconds",
		Help:    "Duration of content form submissions",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind", "result"})

	// CopywriterRequests counts copywriting calls by provider and outcome.
	CopywriterRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "copywriter_requests_total",
		Help: "Total number of copywriting requests",
	}, []string{"provider", "result"})
)

// Result maps an error to a metric label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
