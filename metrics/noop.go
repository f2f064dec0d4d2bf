package metrics

import "github.com/go-gost/core/metrics"

var (
	noop metrics.Metrics = noopMetrics{}
)

// Noop returns metrics whose collectors discard every update.
func Noop() metrics.Metrics {
	return noop
}

type noopMetrics struct{}

func (noopMetrics) Counter(name metrics.MetricName, labels metrics.Labels) metrics.Counter {
	return noopCollector{}
}

func (noopMetrics) Gauge(name metrics.MetricName, labels metrics.Labels) metrics.Gauge {
	return noopCollector{}
}

func (noopMetrics) Observer(name metrics.MetricName, labels metrics.Labels) metrics.Observer {
	return noopCollector{}
}

// noopCollector satisfies Counter, Gauge and Observer at once.
type noopCollector struct{}

func (noopCollector) Inc()              {}
func (noopCollector) Dec()              {}
func (noopCollector) Add(v float64)     {}
func (noopCollector) Set(v float64)     {}
func (noopCollector) Observe(v float64) {}
