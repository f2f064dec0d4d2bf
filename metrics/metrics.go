package metrics

import (
	"sync/atomic"

	"github.com/go-gost/core/metrics"
)

const (
	// Total probes handed to the transport. Labels: host, pass.
	MetricProbesSentCounter metrics.MetricName = "seermon_probes_sent_total"
	// Total probe sends rejected by the transport. Labels: host, pass.
	MetricSendErrorsCounter metrics.MetricName = "seermon_send_errors_total"
	// Total verdict units seen by the listener. Labels: host, pass, result.
	MetricVerdictsCounter metrics.MetricName = "seermon_verdicts_total"
	// Number of probes still waiting for a verdict. Labels: host, pass.
	MetricProbesPendingGauge metrics.MetricName = "seermon_probes_pending"
	// Time between dispatching a probe and receiving its verdict. Labels: host, pass.
	MetricVerdictLatencyObserver metrics.MetricName = "seermon_verdict_latency_seconds"
	// Total transport input bytes. Labels: host, transport, peer.
	MetricTransferInputBytesCounter metrics.MetricName = "seermon_transfer_input_bytes_total"
	// Total transport output bytes. Labels: host, transport, peer.
	MetricTransferOutputBytesCounter metrics.MetricName = "seermon_transfer_output_bytes_total"
	// Total records written by recorders. Labels: host, recorder.
	MetricRecorderRecordsCounter metrics.MetricName = "seermon_recorder_records_total"
)

// Verdict results used as the "result" label of MetricVerdictsCounter.
const (
	ResultMatched   = "matched"
	ResultUnmatched = "unmatched"
	ResultMalformed = "malformed"
)

var (
	defaultMetrics metrics.Metrics = NewMetrics()
	enabled        atomic.Bool
)

func Enable(b bool) {
	enabled.Store(b)
}

func IsEnabled() bool {
	return enabled.Load()
}

func GetCounter(name metrics.MetricName, labels metrics.Labels) metrics.Counter {
	if IsEnabled() {
		return defaultMetrics.Counter(name, labels)
	}
	return noop.Counter(name, labels)
}

func GetGauge(name metrics.MetricName, labels metrics.Labels) metrics.Gauge {
	if IsEnabled() {
		return defaultMetrics.Gauge(name, labels)
	}
	return noop.Gauge(name, labels)
}

func GetObserver(name metrics.MetricName, labels metrics.Labels) metrics.Observer {
	if IsEnabled() {
		return defaultMetrics.Observer(name, labels)
	}
	return noop.Observer(name, labels)
}
