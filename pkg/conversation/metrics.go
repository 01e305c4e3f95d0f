package conversation

import "github.com/prometheus/client_golang/prometheus"

var (
	mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "convstore_mutations_total",
		Help: "Applied snapshot mutations by operation.",
	}, []string{"op"})

	mutationMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "convstore_mutation_misses_total",
		Help: "Mutations dropped as silent no-ops (stale thread or message reference).",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(mutations, mutationMisses)
}
