package observability

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/anthill/pkg/domain"
)

// Metrics holds the collectors fed by Hooks.
type Metrics struct {
	registry *prometheus.Registry

	turns          prometheus.Counter
	orders         *prometheus.CounterVec
	games          prometheus.Counter
	protocolErrors prometheus.Counter
	agentErrors    prometheus.Counter
	agentSeconds   *prometheus.HistogramVec
	visibleAnts    *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anthill_turns_total",
			Help: "Turns played by the agent.",
		}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anthill_orders_total",
			Help: "Orders sent to the engine, by direction.",
		}, []string{"direction"}),
		games: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anthill_games_total",
			Help: "Games that reached the end block.",
		}),
		protocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anthill_protocol_errors_total",
			Help: "Games aborted because engine and bot lost synchronization.",
		}),
		agentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "anthill_agent_errors_total",
			Help: "Games aborted by an error returned from the agent.",
		}),
		agentSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "anthill_agent_seconds",
			Help:    "Time spent inside agent callbacks.",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		}, []string{"phase"}),
		visibleAnts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "anthill_visible_ants",
			Help: "Live ants in the latest snapshot, by owner.",
		}, []string{"owner"}),
	}
	m.registry.MustRegister(
		m.turns, m.orders, m.games, m.protocolErrors, m.agentErrors, m.agentSeconds, m.visibleAnts,
	)
	return m
}

// Registry exposes the private registry, for tests or an embedding HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that update the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSetup: func(_ context.Context, e *domain.SetupEvent) {
			m.agentSeconds.WithLabelValues("setup").Observe(e.Elapsed.Seconds())
		},
		OnTurnStart: func(_ context.Context, e *domain.TurnEvent) {
			m.visibleAnts.Reset()
			if e.World == nil {
				return
			}
			for owner, ants := range e.World.LiveAnts {
				m.visibleAnts.WithLabelValues(strconv.Itoa(owner)).Set(float64(len(ants)))
			}
		},
		OnTurnEnd: func(_ context.Context, e *domain.TurnEvent) {
			m.turns.Inc()
			m.agentSeconds.WithLabelValues("turn").Observe(e.Elapsed.Seconds())
			for _, o := range e.Orders.Moving() {
				m.orders.WithLabelValues(o.Dir.String()).Inc()
			}
		},
		OnGameEnd: func(_ context.Context, e *domain.GameEndEvent) {
			m.games.Inc()
			m.agentSeconds.WithLabelValues("end").Observe(e.Elapsed.Seconds())
		},
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			switch {
			case errors.Is(e.Err, domain.ErrProtocolDesync):
				m.protocolErrors.Inc()
			case errors.Is(e.Err, domain.ErrAgent):
				m.agentErrors.Inc()
			}
		},
	}
}

// WriteTextfile writes the current values in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
