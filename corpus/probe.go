package corpus

import (
	"sync/atomic"
	"time"
)

// Prediction is the classifier's observed verdict for a probe.
type Prediction uint32

const (
	PredictionUnset Prediction = iota
	PredictionBenign
	PredictionMalicious
)

func PredictionOf(malicious bool) Prediction {
	if malicious {
		return PredictionMalicious
	}
	return PredictionBenign
}

func (p Prediction) String() string {
	switch p {
	case PredictionBenign:
		return "BENIGN"
	case PredictionMalicious:
		return "MALICIOUS"
	default:
		return "UNSET"
	}
}

func (p Prediction) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Probe is one labeled unit of the corpus.
//
// The ground truth is fixed at construction. The prediction is written by
// the listener and read concurrently by progress and report queries, so it
// is kept in an atomic word; a reader that observes it set also observes
// every write that happened before it was stored.
type Probe struct {
	payload   []byte
	malicious bool

	prediction atomic.Uint32
	sentAt     atomic.Int64
}

// NewProbe creates a probe. The payload is not copied and must not be
// modified afterwards.
func NewProbe(payload []byte, malicious bool) *Probe {
	return &Probe{
		payload:   payload,
		malicious: malicious,
	}
}

func (p *Probe) Payload() []byte {
	return p.payload
}

// Malicious is the ground truth label.
func (p *Probe) Malicious() bool {
	return p.malicious
}

func (p *Probe) Prediction() Prediction {
	return Prediction(p.prediction.Load())
}

// SetPrediction records the observed verdict. A later call overwrites an
// earlier one.
func (p *Probe) SetPrediction(malicious bool) {
	p.prediction.Store(uint32(PredictionOf(malicious)))
}

func (p *Probe) Completed() bool {
	return p.Prediction() != PredictionUnset
}

// Outcome is how a probe's latest prediction compares to its label.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeCorrect
	OutcomeFalsePositive
	OutcomeFalseNegative
)

// Outcome classifies the probe from a single read of its prediction, so
// the result is consistent even while verdicts keep arriving.
func (p *Probe) Outcome() Outcome {
	switch pred := p.Prediction(); {
	case pred == PredictionUnset:
		return OutcomePending
	case pred == PredictionOf(p.malicious):
		return OutcomeCorrect
	case p.malicious:
		return OutcomeFalseNegative
	default:
		return OutcomeFalsePositive
	}
}

func (p *Probe) Correct() bool {
	return p.Outcome() == OutcomeCorrect
}

// FalsePositive reports a benign probe classified as malicious.
func (p *Probe) FalsePositive() bool {
	return p.Outcome() == OutcomeFalsePositive
}

// FalseNegative reports a malicious probe classified as benign.
func (p *Probe) FalseNegative() bool {
	return p.Outcome() == OutcomeFalseNegative
}

// MarkSent stamps the dispatch time.
func (p *Probe) MarkSent(t time.Time) {
	p.sentAt.Store(t.UnixNano())
}

// SentAt returns the dispatch time, zero if the probe was never sent.
func (p *Probe) SentAt() time.Time {
	ns := p.sentAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Reset clears the observed state so the probe can take part in a new pass.
func (p *Probe) Reset() {
	p.prediction.Store(uint32(PredictionUnset))
	p.sentAt.Store(0)
}
