package monitoring

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	Namespace string
}

// Service owns a private Prometheus registry with the service counters
type Service struct {
	config    Config
	registry  *prometheus.Registry
	events    *prometheus.CounterVec
	mutations *prometheus.CounterVec
}

// NewService creates a new monitoring service
func NewService(config Config) *Service {
	if config.Namespace == "" {
		config.Namespace = "stationhub"
	}

	s := &Service{
		config:   config,
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "cleanup_events_total",
			Help:      "Cleanup events emitted after cascading deletes.",
		}, []string{"event"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "mutations_total",
			Help:      "Committed mutations by history action.",
		}, []string{"action"}),
	}

	s.registry.MustRegister(
		s.events,
		s.mutations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	s.events.WithLabelValues(eventName).Inc()
	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// RecordMutation counts one committed mutation
func (s *Service) RecordMutation(action string) {
	s.mutations.WithLabelValues(action).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// Counts returns the current value of every labelled counter of one metric,
// keyed by label value. name is the metric name without namespace.
func (s *Service) Counts(name string) (map[string]float64, error) {
	families, err := s.registry.Gather()
	if err != nil {
		return nil, err
	}

	full := s.config.Namespace + "_" + name
	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != full {
			continue
		}
		for _, metric := range family.GetMetric() {
			var key []string
			for _, label := range metric.GetLabel() {
				key = append(key, label.GetValue())
			}
			counts[strings.Join(key, ",")] = metric.GetCounter().GetValue()
		}
	}
	return counts, nil
}
