package stats

import (
	"sync/atomic"
)

type Kind int

const (
	KindProbesSent Kind = iota
	KindSendErrors
	KindVerdicts
	KindUnmatched
	KindMalformed
	KindFiltered
	KindInputBytes
	KindOutputBytes
)

// Stats holds the traffic counters of a pass.
type Stats struct {
	probesSent  atomic.Uint64
	sendErrors  atomic.Uint64
	verdicts    atomic.Uint64
	unmatched   atomic.Uint64
	malformed   atomic.Uint64
	filtered    atomic.Uint64
	inputBytes  atomic.Uint64
	outputBytes atomic.Uint64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) Add(kind Kind, n int64) {
	if s == nil || n <= 0 {
		return
	}
	if c := s.counter(kind); c != nil {
		c.Add(uint64(n))
	}
}

func (s *Stats) Get(kind Kind) uint64 {
	if s == nil {
		return 0
	}
	if c := s.counter(kind); c != nil {
		return c.Load()
	}
	return 0
}

func (s *Stats) Reset() {
	if s == nil {
		return
	}
	for _, kind := range []Kind{
		KindProbesSent, KindSendErrors, KindVerdicts, KindUnmatched,
		KindMalformed, KindFiltered, KindInputBytes, KindOutputBytes,
	} {
		s.counter(kind).Store(0)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	ProbesSent  uint64 `json:"probesSent" yaml:"probesSent"`
	SendErrors  uint64 `json:"sendErrors" yaml:"sendErrors"`
	Verdicts    uint64 `json:"verdicts" yaml:"verdicts"`
	Unmatched   uint64 `json:"unmatched" yaml:"unmatched"`
	Malformed   uint64 `json:"malformed" yaml:"malformed"`
	Filtered    uint64 `json:"filtered" yaml:"filtered"`
	InputBytes  uint64 `json:"inputBytes" yaml:"inputBytes"`
	OutputBytes uint64 `json:"outputBytes" yaml:"outputBytes"`
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		ProbesSent:  s.Get(KindProbesSent),
		SendErrors:  s.Get(KindSendErrors),
		Verdicts:    s.Get(KindVerdicts),
		Unmatched:   s.Get(KindUnmatched),
		Malformed:   s.Get(KindMalformed),
		Filtered:    s.Get(KindFiltered),
		InputBytes:  s.Get(KindInputBytes),
		OutputBytes: s.Get(KindOutputBytes),
	}
}

func (s *Stats) counter(kind Kind) *atomic.Uint64 {
	switch kind {
	case KindProbesSent:
		return &s.probesSent
	case KindSendErrors:
		return &s.sendErrors
	case KindVerdicts:
		return &s.verdicts
	case KindUnmatched:
		return &s.unmatched
	case KindMalformed:
		return &s.malformed
	case KindFiltered:
		return &s.filtered
	case KindInputBytes:
		return &s.inputBytes
	case KindOutputBytes:
		return &s.outputBytes
	}
	return nil
}
