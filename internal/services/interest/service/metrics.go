package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "interestd",
			Name:      "accumulator_updates_total",
			Help:      "Per tag index accumulator writes by outcome.",
		},
		[]string{"outcome"},
	)

	casRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "interestd",
			Name:      "cas_retries_total",
			Help:      "Accumulator read-add-write cycles repeated after a lost version check.",
		},
	)
)
