// Package metrics exposes event bus and log counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"eecsim-go/event"
	"eecsim-go/logx"
)

// Collector reads live counters from the bus and logger on every scrape.
type Collector struct {
	bus *event.Bus
	log *logx.Logger

	published *prometheus.Desc
	processed *prometheus.Desc
	dropped   *prometheus.Desc
	queueLen  *prometheus.Desc
	evicted   *prometheus.Desc
}

func NewCollector(bus *event.Bus, log *logx.Logger) *Collector {
	return &Collector{
		bus: bus,
		log: log,
		published: prometheus.NewDesc(
			"eecsim_events_published_total",
			"Events accepted onto the bus queue",
			nil, nil,
		),
		processed: prometheus.NewDesc(
			"eecsim_events_processed_total",
			"Events delivered to subscribers",
			nil, nil,
		),
		dropped: prometheus.NewDesc(
			"eecsim_events_dropped_total",
			"Events rejected because the queue was full",
			nil, nil,
		),
		queueLen: prometheus.NewDesc(
			"eecsim_event_queue_length",
			"Events currently waiting in the bus queue",
			nil, nil,
		),
		evicted: prometheus.NewDesc(
			"eecsim_log_evicted_total",
			"Log entries evicted from the in-memory ring",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.published
	ch <- c.processed
	ch <- c.dropped
	ch <- c.queueLen
	ch <- c.evicted
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.bus.Stats()
	ch <- prometheus.MustNewConstMetric(c.published, prometheus.CounterValue, float64(st.Published))
	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(st.Processed))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(st.Dropped))
	ch <- prometheus.MustNewConstMetric(c.queueLen, prometheus.GaugeValue, float64(st.QueueLen))
	if c.log != nil {
		ch <- prometheus.MustNewConstMetric(c.evicted, prometheus.CounterValue, float64(c.log.Evicted()))
	}
}

// NewRegistry returns a registry with the simulator collector installed.
func NewRegistry(bus *event.Bus, log *logx.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(bus, log))
	return reg
}
