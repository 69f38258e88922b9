// Package metrics exposes the session counters through Prometheus.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "roomclient"

type Metrics struct {
	PacketsIn           prometheus.Counter
	PacketsMalformed    prometheus.Counter
	PacketsUnknown      prometheus.Counter
	PeersCreated        prometheus.Counter
	NegotiationFailures prometheus.Counter
	PresenterChanges    prometheus.Counter
}

// New registers the counter set. A nil registerer targets the default
// registry; tests pass their own to avoid cross-test collisions.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		PacketsIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "packets_in_total",
			Help: "Signaling packets dispatched.",
		}),
		PacketsMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "packets_malformed_total",
			Help: "Signaling packets dropped as malformed.",
		}),
		PacketsUnknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "packets_unknown_total",
			Help: "Signaling packets of an unknown kind.",
		}),
		PeersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "peers_created_total",
			Help: "Peer connections opened.",
		}),
		NegotiationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "negotiation_failures_total",
			Help: "Peer connections that failed to negotiate.",
		}),
		PresenterChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "presenter_changes_total",
			Help: "Presentation slot claims, local and remote.",
		}),
	}
	reg.MustRegister(
		m.PacketsIn, m.PacketsMalformed, m.PacketsUnknown,
		m.PeersCreated, m.NegotiationFailures, m.PresenterChanges,
	)
	return m
}
