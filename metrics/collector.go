// Package metrics exports buffer pool and symbol resolver statistics as
// Prometheus collectors.
//
// Collectors read a snapshot on every scrape, so they never fall out of sync
// with the pool or resolver they observe:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(
//	    metrics.NewPoolCollector("flow", pool),
//	    metrics.NewResolverCollector("npp", dynload.NPP()),
//	)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/nvof/cache"
	"github.com/gogpu/nvof/opticalflow"
)

const namespace = "nvof"

// PoolSource is implemented by *opticalflow.Pool.
type PoolSource interface {
	Stats() opticalflow.PoolStats
}

// ResolverSource is implemented by *dynload.Resolver.
type ResolverSource interface {
	Stats() cache.Stats
}

// PoolCollector reports the state of one buffer pool.
type PoolCollector struct {
	src PoolSource

	budgetBytes *prometheus.Desc
	usedBytes   *prometheus.Desc
	buffers     *prometheus.Desc
	allocations *prometheus.Desc
	reuses      *prometheus.Desc
	evictions   *prometheus.Desc
}

// NewPoolCollector returns a collector for src. name is attached to every
// series as the "pool" label.
func NewPoolCollector(name string, src PoolSource) *PoolCollector {
	labels := prometheus.Labels{"pool": name}
	desc := func(metric, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", metric), help, variable, labels)
	}
	return &PoolCollector{
		src:         src,
		budgetBytes: desc("budget_bytes", "Device memory budget of the buffer pool."),
		usedBytes:   desc("used_bytes", "Device memory held by live and idle pooled buffers."),
		buffers:     desc("buffers", "Buffers tracked by the pool.", "state"),
		allocations: desc("allocations_total", "Buffers created by the pool."),
		reuses:      desc("reuses_total", "Acquire calls served from idle buffers."),
		evictions:   desc("evictions_total", "Idle buffers destroyed to stay within budget."),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.budgetBytes
	ch <- c.usedBytes
	ch <- c.buffers
	ch <- c.allocations
	ch <- c.reuses
	ch <- c.evictions
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.budgetBytes, prometheus.GaugeValue, float64(s.TotalBytes))
	ch <- prometheus.MustNewConstMetric(c.usedBytes, prometheus.GaugeValue, float64(s.UsedBytes))
	ch <- prometheus.MustNewConstMetric(c.buffers, prometheus.GaugeValue, float64(s.Live), "live")
	ch <- prometheus.MustNewConstMetric(c.buffers, prometheus.GaugeValue, float64(s.Idle), "idle")
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.reuses, prometheus.CounterValue, float64(s.Reuses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions))
}

// ResolverCollector reports symbol cache activity of one resolver.
type ResolverCollector struct {
	src ResolverSource

	entries  *prometheus.Desc
	hits     *prometheus.Desc
	misses   *prometheus.Desc
	failures *prometheus.Desc
}

// NewResolverCollector returns a collector for src, labeled with
// resolver=name.
func NewResolverCollector(name string, src ResolverSource) *ResolverCollector {
	labels := prometheus.Labels{"resolver": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "symbol_cache", metric), help, nil, labels)
	}
	return &ResolverCollector{
		src:      src,
		entries:  desc("entries", "Symbols with a memoized availability answer."),
		hits:     desc("hits_total", "Availability lookups answered from the cache."),
		misses:   desc("misses_total", "Availability lookups that resolved the symbol."),
		failures: desc("load_failures_total", "Resolutions that failed because a library could not be opened."),
	}
}

// Describe implements prometheus.Collector.
func (c *ResolverCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.hits
	ch <- c.misses
	ch <- c.failures
}

// Collect implements prometheus.Collector.
func (c *ResolverCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Len))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
}
