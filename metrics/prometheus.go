// Package metrics exports counters.Stats to Prometheus.
package metrics

import (
	"github.com/llxisdsh/counters"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector walks the chain of a Counters on every scrape.
type Collector struct {
	c *counters.Counters

	blocks     *prometheus.Desc
	capacity   *prometheus.Desc
	bound      *prometheus.Desc
	increments *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(c *counters.Counters) *Collector {
	return &Collector{
		c:          c,
		blocks:     prometheus.NewDesc("counters_blocks", "Number of blocks in the chain", nil, nil),
		capacity:   prometheus.NewDesc("counters_capacity", "Number of counter slots in all blocks", nil, nil),
		bound:      prometheus.NewDesc("counters_bound", "Number of distinct keys with a counter", nil, nil),
		increments: prometheus.NewDesc("counters_increments_total", "Increments applied to all counters", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.blocks
	ch <- c.capacity
	ch <- c.bound
	ch <- c.increments
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.c.Stats()
	ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(s.Blocks))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.bound, prometheus.GaugeValue, float64(s.Bound))
	ch <- prometheus.MustNewConstMetric(c.increments, prometheus.CounterValue, float64(s.Total))
}
