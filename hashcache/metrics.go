package hashcache

import "github.com/prometheus/client_golang/prometheus"

var lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "litpow",
	Subsystem: "hashcache",
	Name:      "lookups_total",
	Help:      "Digest lookups by algorithm and the tier that answered them.",
}, []string{"algorithm", "result"})

func init() {
	prometheus.MustRegister(lookups)
}
