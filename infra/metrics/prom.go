// Package metrics provides the Prometheus implementation of the core
// metrics sink.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/clientry/clientry/core/metrics"
)

// PromSink records registry events in Prometheus metrics.
type PromSink struct {
	resolutions   prometheus.Counter
	tableEntries  prometheus.Gauge
	cacheLookups  *prometheus.CounterVec
	constructions *prometheus.CounterVec
}

// NewPromSink registers the registry metrics on the default Prometheus
// registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	resolutions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clientry_resolutions_total",
		Help: "Total number of resolution passes over a client document",
	})
	tableEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "clientry_table_entries",
		Help: "Number of entries in the most recently resolved table",
	})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clientry_cache_lookups_total",
		Help: "Resolution cache lookups",
	}, []string{"hit"})
	constructions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clientry_constructions_total",
		Help: "Client constructions by name and outcome",
	}, []string{"client", "failed"})

	if err := reg.Register(resolutions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			resolutions = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(tableEntries); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			tableEntries = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cacheLookups); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cacheLookups = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(constructions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			constructions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		resolutions:   resolutions,
		tableEntries:  tableEntries,
		cacheLookups:  cacheLookups,
		constructions: constructions,
	}, nil
}

// RecordResolution counts a resolution pass and tracks the table size.
func (s *PromSink) RecordResolution(entries int) {
	s.resolutions.Inc()
	s.tableEntries.Set(float64(entries))
}

// RecordCacheLookup counts a resolution-cache hit or miss.
func (s *PromSink) RecordCacheLookup(hit bool) {
	s.cacheLookups.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

// RecordConstruction counts a construction attempt per client.
func (s *PromSink) RecordConstruction(client string, err error) {
	s.constructions.WithLabelValues(client, strconv.FormatBool(err != nil)).Inc()
}
