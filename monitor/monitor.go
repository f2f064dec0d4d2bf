// Package monitor runs an evaluation pass: it dispatches every probe of a
// corpus to the classifier, correlates the verdicts that come back with
// the probes they are about and reports once every probe has one.
//
// The listener runs in a background goroutine bound to the context given
// to Listen or Run. The monitor itself never stops it; cancel that
// context or close the transport to do so.
package monitor

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/core/metrics"
	"github.com/go-gost/seermon/corpus"
	xlogger "github.com/go-gost/seermon/logger"
	xmetrics "github.com/go-gost/seermon/metrics"
	"github.com/go-gost/seermon/recorder"
	"github.com/go-gost/seermon/report"
	"github.com/go-gost/seermon/seer"
	"github.com/go-gost/seermon/stats"
	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"
)

var (
	ErrIncompletePass = errors.New("monitor: report requested on incomplete pass")
	ErrAlreadyStarted = errors.New("monitor: already started")
	ErrNoTransport    = errors.New("monitor: no transport")
)

const banner = "##############################################"

type Monitor struct {
	id     string
	corpus *corpus.Corpus
	stats  *stats.Stats
	diag   *cache.Cache
	log    logger.Logger

	dispatchStarted atomic.Bool
	sending         atomic.Bool
	dispatched      atomic.Bool
	listening       atomic.Bool
	stalled         atomic.Bool
	failed          atomic.Bool
	completedAt     atomic.Int64

	options Options
}

// New creates a monitor for one pass over c. c must not change
// while the pass is running.
func New(c *corpus.Corpus, opts ...Option) *Monitor {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.DiagnosticTTL <= 0 {
		options.DiagnosticTTL = DefaultDiagnosticTTL
	}

	if options.Stats == nil {
		options.Stats = stats.NewStats()
	}

	id := xid.New().String()

	log := options.Logger
	if log == nil {
		log = xlogger.Nop()
	}
	log = log.WithFields(map[string]any{
		"kind": "monitor",
		"pass": id,
	})

	return &Monitor{
		id:      id,
		corpus:  c,
		stats:   options.Stats,
		diag:    cache.New(options.DiagnosticTTL, 2*options.DiagnosticTTL),
		log:     log,
		options: options,
	}
}

// ID identifies the pass in logs, records, metrics and the report.
func (m *Monitor) ID() string {
	return m.id
}

func (m *Monitor) Corpus() *corpus.Corpus {
	return m.corpus
}

func (m *Monitor) Stats() *stats.Stats {
	return m.stats
}

// Run dispatches every probe and then starts listening. Verdicts that
// arrive before the listener is running are only seen if the transport
// queues them; with ListenFirst the listener is started before dispatch.
func (m *Monitor) Run(ctx context.Context) error {
	if m.options.ListenFirst {
		if err := m.Listen(ctx); err != nil {
			return err
		}
		return m.Dispatch(ctx)
	}

	if err := m.Dispatch(ctx); err != nil {
		return err
	}
	return m.Listen(ctx)
}

// Dispatch sends every probe in corpus order. The first send failure
// aborts the pass and is returned.
func (m *Monitor) Dispatch(ctx context.Context) (err error) {
	tr := m.options.Transport
	if tr == nil {
		return ErrNoTransport
	}
	if !m.dispatchStarted.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	m.sending.Store(true)
	defer func() {
		if err != nil {
			m.failed.Store(true)
		}
		m.sending.Store(false)
	}()

	m.logf(m.options.Verbosity, banner)
	m.logf(m.options.Verbosity, "STARTING...")
	m.setPending()

	labels := metrics.Labels{"pass": m.id}
	for i, p := range m.corpus.Probes() {
		if m.options.RateLimiter != nil {
			if err := m.options.RateLimiter.Wait(ctx); err != nil {
				return fmt.Errorf("monitor: probe %d: %w", i, err)
			}
		}

		m.logf(m.options.Verbosity, "SENT: probe %d to Method with value: %s", i, corpus.PredictionOf(p.Malicious()))

		p.MarkSent(time.Now())
		if err := tr.Send(ctx, p.Payload()); err != nil {
			m.stats.Add(stats.KindSendErrors, 1)
			xmetrics.GetCounter(xmetrics.MetricSendErrorsCounter, labels).Inc()
			m.log.Errorf("send probe %d: %v", i, err)
			return fmt.Errorf("monitor: send probe %d: %w", i, err)
		}
		m.stats.Add(stats.KindProbesSent, 1)
		xmetrics.GetCounter(xmetrics.MetricProbesSentCounter, labels).Inc()
	}

	m.dispatched.Store(true)
	m.log.Debugf("%d probes dispatched", m.corpus.Len())
	return nil
}

// Listen starts the background listener and returns immediately.
func (m *Monitor) Listen(ctx context.Context) error {
	tr := m.options.Transport
	if tr == nil {
		return ErrNoTransport
	}
	if !m.listening.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	if err := tr.Listen(ctx, m.options.Filter, m.handleArrival); err != nil {
		m.listening.Store(false)
		return fmt.Errorf("monitor: listen: %w", err)
	}
	m.log.Debugf("listening on %v, filter %q", tr.Addr(), m.options.Filter.String())
	return nil
}

func (m *Monitor) handleArrival(b []byte, addr net.Addr) {
	v, err := seer.Decode(b)
	if err != nil {
		m.stats.Add(stats.KindMalformed, 1)
		xmetrics.GetCounter(xmetrics.MetricVerdictsCounter, metrics.Labels{
			"pass":   m.id,
			"result": xmetrics.ResultMalformed,
		}).Inc()
		m.diagnose(fmt.Sprintf("malformed:%v:%v", addr, err), "malformed unit from %v: %v", addr, err)
		return
	}
	m.handleVerdict(v, addr)
}

// HandleVerdict applies v to the probe it names and reports whether
// one was found. A later verdict for the same probe replaces the earlier.
func (m *Monitor) HandleVerdict(v seer.Verdict) bool {
	return m.handleVerdict(v, nil)
}

func (m *Monitor) handleVerdict(v seer.Verdict, addr net.Addr) bool {
	now := time.Now()
	m.stats.Add(stats.KindVerdicts, 1)

	prediction := corpus.PredictionOf(v.Malicious)
	m.logf(m.options.Verbosity, "RECEIVED: Prediction from Method with value: %s", prediction)

	ro := &recorder.VerdictRecorderObject{
		Pass:       m.id,
		Payload:    hex.EncodeToString(v.Payload),
		Prediction: prediction.String(),
		Time:       now,
	}
	if addr != nil {
		ro.RemoteAddr = addr.String()
	}

	p := m.corpus.Lookup(v.Payload)
	if p == nil {
		m.stats.Add(stats.KindUnmatched, 1)
		xmetrics.GetCounter(xmetrics.MetricVerdictsCounter, metrics.Labels{
			"pass":   m.id,
			"result": xmetrics.ResultUnmatched,
		}).Inc()
		m.diagnose("unmatched:"+ro.Payload, "no probe for verdict payload %s", ro.Payload)
		m.record(ro)
		return false
	}

	p.SetPrediction(v.Malicious)

	labels := metrics.Labels{"pass": m.id}
	xmetrics.GetCounter(xmetrics.MetricVerdictsCounter, metrics.Labels{
		"pass":   m.id,
		"result": xmetrics.ResultMatched,
	}).Inc()
	if sentAt := p.SentAt(); !sentAt.IsZero() {
		ro.Latency = now.Sub(sentAt)
		xmetrics.GetObserver(xmetrics.MetricVerdictLatencyObserver, labels).Observe(ro.Latency.Seconds())
	}
	m.setPending()

	ro.Matched = true
	ro.Truth = corpus.PredictionOf(p.Malicious()).String()
	ro.Correct = p.Correct()
	m.record(ro)

	return true
}

// IsComplete reports whether every probe has a prediction. An empty
// corpus is complete.
func (m *Monitor) IsComplete() bool {
	for _, p := range m.corpus.Probes() {
		if !p.Completed() {
			return false
		}
	}
	m.completedAt.CompareAndSwap(0, time.Now().UnixNano())
	return true
}

// Report derives the pass figures. It fails with ErrIncompletePass
// while any probe is still waiting for its verdict.
func (m *Monitor) Report() (*report.Report, error) {
	if !m.IsComplete() {
		return nil, ErrIncompletePass
	}

	r := report.Compute(m.corpus)
	r.PassID = m.id
	r.Time = time.Unix(0, m.completedAt.Load())
	return &r, nil
}

func (m *Monitor) State() State {
	if !m.dispatchStarted.Load() && !m.listening.Load() {
		return StateNotStarted
	}
	if m.sending.Load() {
		return StateSending
	}
	if m.failed.Load() {
		return StateFailed
	}
	if m.IsComplete() && (m.dispatched.Load() || m.listening.Load()) {
		return StateComplete
	}
	if m.stalled.Load() {
		return StateStalled
	}
	if m.listening.Load() {
		return StateListening
	}
	return StateSending
}

type Progress struct {
	Total     int `json:"total" yaml:"total"`
	Sent      int `json:"sent" yaml:"sent"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
}

func (m *Monitor) Progress() Progress {
	completed := len(m.corpus.Completed())
	return Progress{
		Total:     m.corpus.Len(),
		Sent:      int(m.stats.Get(stats.KindProbesSent)),
		Completed: completed,
		Pending:   m.corpus.Len() - completed,
	}
}

func (m *Monitor) setPending() {
	if !xmetrics.IsEnabled() {
		return
	}
	xmetrics.GetGauge(xmetrics.MetricProbesPendingGauge, metrics.Labels{"pass": m.id}).
		Set(float64(len(m.corpus.Pending())))
}

func (m *Monitor) logf(v Verbosity, format string, args ...any) {
	if v >= VerbosityVerbose {
		m.log.Infof(format, args...)
		return
	}
	m.log.Debugf(format, args...)
}

// diagnose logs at most once per key per diagnostic TTL.
func (m *Monitor) diagnose(key string, format string, args ...any) {
	if err := m.diag.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		return
	}
	m.log.Debugf(format, args...)
}

func (m *Monitor) record(ro *recorder.VerdictRecorderObject) {
	if m.options.Recorder == nil {
		return
	}
	if err := ro.Record(context.Background(), m.options.Recorder); err != nil {
		m.log.Warnf("record verdict: %v", err)
	}
}
