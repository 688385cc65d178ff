package observability

import (
	"net/http"

	"github.com/aretw0/parley/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parley"

// Metrics holds the dialogue collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	NodeVisits       *prometheus.CounterVec
	ChoicesSelected  *prometheus.CounterVec
	ActionsExecuted  *prometheus.CounterVec
	ConditionsFailed *prometheus.CounterVec
	DialoguesEnded   *prometheus.CounterVec
}

// NewMetrics registers the dialogue collectors on registry.
// A nil registry gets a fresh one, so tests never touch the global default.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		NodeVisits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_visits_total",
				Help:      "Total number of processed nodes.",
			},
			[]string{"tree_id", "node_id"},
		),
		ChoicesSelected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "choices_selected_total",
				Help:      "Total number of selected choices.",
			},
			[]string{"tree_id", "node_id", "choice_id"},
		),
		ActionsExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_executed_total",
				Help:      "Total number of applied actions, partitioned by action type.",
			},
			[]string{"tree_id", "type"},
		),
		ConditionsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conditions_failed_total",
				Help:      "Total number of nodes skipped because a condition did not hold.",
			},
			[]string{"tree_id", "node_id"},
		),
		DialoguesEnded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dialogues_ended_total",
				Help:      "Total number of dialogues that reached a terminal node.",
			},
			[]string{"tree_id"},
		),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.TreeID, e.NodeID).Inc()
		},
		OnChoiceSelected: func(e *domain.ChoiceEvent) {
			m.ChoicesSelected.WithLabelValues(e.TreeID, e.NodeID, e.ChoiceID).Inc()
		},
		OnActionExecuted: func(e *domain.ActionEvent) {
			m.ActionsExecuted.WithLabelValues(e.TreeID, actionLabel(e.Action)).Inc()
		},
		OnConditionFailed: func(e *domain.NodeEvent) {
			m.ConditionsFailed.WithLabelValues(e.TreeID, e.NodeID).Inc()
		},
		OnDialogueEnd: func(e *domain.NodeEvent) {
			m.DialoguesEnded.WithLabelValues(e.TreeID).Inc()
		},
	}
}

func actionLabel(a domain.Action) string {
	if a.Script != "" {
		return string(domain.ActionScript)
	}
	return string(a.Type)
}
