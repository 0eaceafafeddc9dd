package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var itemsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "interestd",
		Name:      "ingest_items_total",
		Help:      "Ingested event items by outcome.",
	},
	[]string{"outcome"},
)
