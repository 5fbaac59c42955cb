package thumbnails

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_thumbnail_updates_total",
			Help: "Thumbnail update commands by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_thumbnail_upload_bytes",
			Help:    "Size of uploaded logo images in bytes",
			Buckets: prometheus.ExponentialBuckets(4<<10, 4, 7),
		},
	)
)
