package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rankTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "interestd",
		Name:      "rank_requests_total",
		Help:      "Ranking requests by outcome; anything but ranked returned the input order.",
	},
	[]string{"outcome"},
)
