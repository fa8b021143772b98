package miner

import "github.com/prometheus/client_golang/prometheus"

var (
	hashesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "litpow",
		Subsystem: "miner",
		Name:      "hashes_total",
		Help:      "Number of header hashes computed while mining.",
	}, []string{"algorithm"})

	solutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "litpow",
		Subsystem: "miner",
		Name:      "solutions_total",
		Help:      "Number of headers solved.",
	}, []string{"algorithm"})
)

func init() {
	prometheus.MustRegister(hashesTotal, solutionsTotal)
}
