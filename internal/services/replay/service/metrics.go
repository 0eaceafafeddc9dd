package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var checksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "interestd",
		Name:      "replay_checks_total",
		Help:      "Replay guard decisions by result.",
	},
	[]string{"result"},
)
