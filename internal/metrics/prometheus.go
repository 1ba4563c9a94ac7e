// Package metrics records netlink round trips and configured interfaces in
// a Prometheus registry. A setup run is short-lived, so the registry is
// exported to a node-exporter textfile instead of being scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds all pflask metrics. A nil *Registry is valid and records
// nothing.
type Registry struct {
	reg *prometheus.Registry

	NetlinkRequests   *prometheus.CounterVec
	NetlinkLatency    *prometheus.HistogramVec
	InterfacesCreated *prometheus.CounterVec
}

// New creates a Registry backed by its own prometheus.Registry.
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.NetlinkRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pflask_netlink_requests_total",
		Help: "Netlink link requests by operation and result",
	}, []string{"op", "result"})

	r.NetlinkLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pflask_netlink_request_duration_seconds",
		Help:    "Netlink request round-trip time",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"op"})

	r.InterfacesCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pflask_interfaces_configured_total",
		Help: "Interfaces relocated into a target namespace by request kind",
	}, []string{"kind"})

	r.reg.MustRegister(r.NetlinkRequests, r.NetlinkLatency, r.InterfacesCreated)
	return r
}

// Observe records one netlink round trip.
func (r *Registry) Observe(op string, d time.Duration, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.NetlinkRequests.WithLabelValues(op, result).Inc()
	r.NetlinkLatency.WithLabelValues(op).Observe(d.Seconds())
}

// Configured records an interface that reached its target namespace.
func (r *Registry) Configured(kind string) {
	if r == nil {
		return
	}
	r.InterfacesCreated.WithLabelValues(kind).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically, for the node-exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
