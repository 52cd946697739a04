// Package metrics exposes inventory gauges and mutation counters to Prometheus
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/models"
)

const namespace = "freshkeep"

// Mutation results recorded by the mutation counter
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Snapshotter returns the current inventory
type Snapshotter interface {
	List() []models.FoodItem
	Now() time.Time
}

// Metrics owns a registry with the inventory collectors
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
}

// New creates a registry with Go runtime collectors and the mutation counter
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_mutations_total",
			Help:      "Inventory mutations by operation and result.",
		}, []string{"op", "result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.mutations,
	)
	return m
}

// ObserveMutation counts one store mutation. Its signature matches
// inventory.Observer.
func (m *Metrics) ObserveMutation(op string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

// TrackInventory registers a gauge of items per status computed from src at
// scrape time
func (m *Metrics) TrackInventory(src Snapshotter) error {
	return m.registry.Register(&inventoryCollector{
		src: src,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "inventory", "items"),
			"Tracked food items by freshness status.",
			[]string{"status"}, nil,
		),
	})
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type inventoryCollector struct {
	src  Snapshotter
	desc *prometheus.Desc
}

func (c *inventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *inventoryCollector) Collect(ch chan<- prometheus.Metric) {
	now := c.src.Now()
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, item := range c.src.List() {
		counts[expiry.StatusAt(item.ExpiryDate, now)]++
	}
	// Every status is exported so dashboards see zeros
	for _, status := range models.Statuses {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(counts[status]), string(status))
	}
}
