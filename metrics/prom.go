package metrics

import (
	"os"

	"github.com/go-gost/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type promMetrics struct {
	host       string
	gauges     map[metrics.MetricName]*prometheus.GaugeVec
	counters   map[metrics.MetricName]*prometheus.CounterVec
	histograms map[metrics.MetricName]*prometheus.HistogramVec
}

func NewMetrics() metrics.Metrics {
	host, _ := os.Hostname()
	m := &promMetrics{
		host: host,
		gauges: map[metrics.MetricName]*prometheus.GaugeVec{
			MetricProbesPendingGauge: prometheus.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: string(MetricProbesPendingGauge),
					Help: "Current number of probes without a verdict",
				},
				[]string{"host", "pass"}),
		},
		counters: map[metrics.MetricName]*prometheus.CounterVec{
			MetricProbesSentCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: string(MetricProbesSentCounter),
					Help: "Total number of probes sent",
				},
				[]string{"host", "pass"}),
			MetricSendErrorsCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: string(MetricSendErrorsCounter),
					Help: "Total number of failed probe sends",
				},
				[]string{"host", "pass"}),
			MetricVerdictsCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: string(MetricVerdictsCounter),
					Help: "Total number of verdict units received",
				},
				[]string{"host", "pass", "result"}),
			MetricTransferInputBytesCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: string(MetricTransferInputBytesCounter),
					Help: "Total transport input data transfer size in bytes",
				},
				[]string{"host", "transport", "peer"}),
			MetricTransferOutputBytesCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: string(MetricTransferOutputBytesCounter),
					Help: "Total transport output data transfer size in bytes",
				},
				[]string{"host", "transport", "peer"}),
			MetricRecorderRecordsCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: string(MetricRecorderRecordsCounter),
					Help: "Total number of recorded objects",
				},
				[]string{"host", "recorder"}),
		},
		histograms: map[metrics.MetricName]*prometheus.HistogramVec{
			MetricVerdictLatencyObserver: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name: string(MetricVerdictLatencyObserver),
					Help: "Distribution of probe to verdict latencies",
					Buckets: []float64{
						.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
					},
				},
				[]string{"host", "pass"}),
		},
	}
	for k := range m.gauges {
		prometheus.MustRegister(m.gauges[k])
	}
	for k := range m.counters {
		prometheus.MustRegister(m.counters[k])
	}
	for k := range m.histograms {
		prometheus.MustRegister(m.histograms[k])
	}

	return m
}

func (m *promMetrics) Gauge(name metrics.MetricName, labels metrics.Labels) metrics.Gauge {
	v, ok := m.gauges[name]
	if !ok {
		return nil
	}
	return v.With(m.labels(labels))
}

func (m *promMetrics) Counter(name metrics.MetricName, labels metrics.Labels) metrics.Counter {
	v, ok := m.counters[name]
	if !ok {
		return nil
	}
	return v.With(m.labels(labels))
}

func (m *promMetrics) Observer(name metrics.MetricName, labels metrics.Labels) metrics.Observer {
	v, ok := m.histograms[name]
	if !ok {
		return nil
	}
	return v.With(m.labels(labels))
}

func (m *promMetrics) labels(labels metrics.Labels) prometheus.Labels {
	l := prometheus.Labels{}
	for k, v := range labels {
		l[k] = v
	}
	l["host"] = m.host
	return l
}
