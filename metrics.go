package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/tinytrainer/hooks"
)

// metricsRegistry holds the Prometheus collectors for one process.
type metricsRegistry struct {
	registry *prometheus.Registry

	TicksTotal          prometheus.Counter
	FaultsInjectedTotal prometheus.Counter
	FaultsClearedTotal  *prometheus.CounterVec
	TransitionsTotal    *prometheus.CounterVec
	BusActivityNodes    prometheus.Gauge
	ResetsTotal         prometheus.Counter
	WSClients           prometheus.Gauge
}

func newMetricsRegistry() *metricsRegistry {
	reg := prometheus.NewRegistry()
	m := &metricsRegistry{registry: reg}

	m.TicksTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "tinytrainer_ticks_total",
		Help: "Simulation ticks executed",
	})
	m.FaultsInjectedTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "tinytrainer_faults_injected_total",
		Help: "Faults injected by the simulation",
	})
	m.FaultsClearedTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "tinytrainer_faults_cleared_total",
		Help: "Faults cleared, by mechanism (ack or auto)",
	}, []string{"mechanism"})
	m.TransitionsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "tinytrainer_transitions_total",
		Help: "User-triggered lifecycle transitions, by resulting state",
	}, []string{"to"})
	m.BusActivityNodes = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "tinytrainer_bus_activity_nodes",
		Help: "Nodes flagged with bus activity on the last tick",
	})
	m.ResetsTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "tinytrainer_resets_total",
		Help: "Topology resets",
	})
	m.WSClients = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "tinytrainer_websocket_clients",
		Help: "Connected websocket clients",
	})

	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *metricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Subscribe wires the collectors to session events on the broker.
func (m *metricsRegistry) Subscribe(broker *hooks.Broker) {
	if m == nil || broker == nil {
		return
	}
	broker.RegisterBundle(hooks.ListenerDescriptor{
		Name:        "prometheus",
		Category:    hooks.CategoryInstrumentation,
		Description: "process-wide Prometheus collectors",
	}, hooks.Bundle{
		OnTick: []hooks.TickHook{func(ctx *hooks.TickContext) {
			m.TicksTotal.Inc()
			m.BusActivityNodes.Set(float64(ctx.ActiveCount))
		}},
		OnFault: []hooks.FaultHook{func(ctx *hooks.FaultContext) {
			m.FaultsInjectedTotal.Inc()
		}},
		OnFaultCleared: []hooks.FaultHook{func(ctx *hooks.FaultContext) {
			mechanism := "ack"
			if ctx.Auto {
				mechanism = "auto"
			}
			m.FaultsClearedTotal.WithLabelValues(mechanism).Inc()
		}},
		OnTransition: []hooks.TransitionHook{func(ctx *hooks.TransitionContext) {
			m.TransitionsTotal.WithLabelValues(string(ctx.To)).Inc()
		}},
		OnReset: []hooks.ResetHook{func() {
			m.ResetsTotal.Inc()
		}},
	})
}
