// Package metrics instruments bridge processing with prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "axbridge"

// Bridge holds the collectors of one bridge. A nil *Bridge records nothing.
type Bridge struct {
	Events         *prometheus.CounterVec
	Dropped        *prometheus.CounterVec
	Updates        prometheus.Counter
	LiveRegions    prometheus.Counter
	FocusFallbacks prometheus.Counter
	MalformedEdges *prometheus.CounterVec
	EventDuration  prometheus.Histogram
	ClientNodes    prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Bridge {
	m := &Bridge{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Android accessibility events received, by event type.",
		}, []string{"type"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events ignored without dispatch, by reason.",
		}, []string{"reason"}),
		Updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tree_updates_total",
			Help:      "Tree updates dispatched.",
		}),
		LiveRegions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_region_changes_total",
			Help:      "Live region change events synthesized.",
		}),
		FocusFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "focus_fallbacks_total",
			Help:      "Events whose focus fell back to the tree root.",
		}),
		MalformedEdges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_records_total",
			Help:      "Records and edges dropped while indexing snapshots, by kind.",
		}, []string{"kind"}),
		EventDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Time spent processing one event.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		ClientNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "client_tree_nodes",
			Help:      "Nodes the consumer holds after the last dispatch.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Events, m.Dropped, m.Updates, m.LiveRegions,
			m.FocusFallbacks, m.MalformedEdges, m.EventDuration, m.ClientNodes)
	}
	return m
}

// ObserveEvent counts an event of the given type.
func (m *Bridge) ObserveEvent(eventType string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(eventType).Inc()
}

// ObserveDrop counts an event ignored for reason.
func (m *Bridge) ObserveDrop(reason string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(reason).Inc()
}

// ObserveDispatch counts the updates and live region events of one batch.
func (m *Bridge) ObserveDispatch(updates, liveRegions int) {
	if m == nil {
		return
	}
	m.Updates.Add(float64(updates))
	m.LiveRegions.Add(float64(liveRegions))
}

// ObserveFocusFallback counts a fallback to the root.
func (m *Bridge) ObserveFocusFallback() {
	if m == nil {
		return
	}
	m.FocusFallbacks.Inc()
}

// ObserveMalformed counts n dropped records or edges of a kind.
func (m *Bridge) ObserveMalformed(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.MalformedEdges.WithLabelValues(kind).Add(float64(n))
}

// ObserveDuration records the processing time of one event.
func (m *Bridge) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.EventDuration.Observe(d.Seconds())
}

// ObserveClientNodes sets the size of the consumer's tree.
func (m *Bridge) ObserveClientNodes(n int) {
	if m == nil {
		return
	}
	m.ClientNodes.Set(float64(n))
}
