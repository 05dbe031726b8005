package service

import "github.com/prometheus/client_golang/prometheus"

const (
	resultHit      = "hit"
	resultMiss     = "miss"
	resultFallback = "fallback"
)

var thumbnailRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "framesync_thumbnail_requests_total",
		Help: "Thumbnail requests by cache result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(thumbnailRequestsTotal)
}
