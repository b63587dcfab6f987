// Package bloommetrics exposes Bloom filter diagnostics as Prometheus metrics.
package bloommetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/forestrie/go-bloombox/bloom"
)

const namespace = "bloom"

// Collector reports the Stats of one locked filter on every scrape. Each
// metric carries a constant "filter" label so several collectors can share a
// registry.
type Collector struct {
	filter *bloom.Locked

	bitLength       *prometheus.Desc
	hashCount       *prometheus.Desc
	inserted        *prometheus.Desc
	setBits         *prometheus.Desc
	fillRatio       *prometheus.Desc
	estimatedFPRate *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector labelled filter=name that reads f on
// every scrape.
func NewCollector(name string, f *bloom.Locked) *Collector {
	labels := prometheus.Labels{"filter": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, labels)
	}
	return &Collector{
		filter:          f,
		bitLength:       desc("bit_length", "Number of bits in the filter."),
		hashCount:       desc("hash_count", "Number of bit positions per element."),
		inserted:        desc("inserted_total", "Number of insert operations."),
		setBits:         desc("set_bits", "Number of bits currently set."),
		fillRatio:       desc("fill_ratio", "Fraction of bits currently set."),
		estimatedFPRate: desc("estimated_fp_rate", "Estimated false positive probability."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.bitLength
	ch <- c.hashCount
	ch <- c.inserted
	ch <- c.setBits
	ch <- c.fillRatio
	ch <- c.estimatedFPRate
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.filter.Stats()
	ch <- prometheus.MustNewConstMetric(c.bitLength, prometheus.GaugeValue, float64(st.BitLength))
	ch <- prometheus.MustNewConstMetric(c.hashCount, prometheus.GaugeValue, float64(st.HashCount))
	ch <- prometheus.MustNewConstMetric(c.inserted, prometheus.CounterValue, float64(st.InsertedCount))
	ch <- prometheus.MustNewConstMetric(c.setBits, prometheus.GaugeValue, float64(st.SetBits))
	ch <- prometheus.MustNewConstMetric(c.fillRatio, prometheus.GaugeValue, st.FillRatio)
	ch <- prometheus.MustNewConstMetric(c.estimatedFPRate, prometheus.GaugeValue, st.EstimatedFPRate)
}
