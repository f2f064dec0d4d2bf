package corpus

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload     = errors.New("corpus: empty payload")
	ErrDuplicatePayload = errors.New("corpus: duplicate payload")
)

// Corpus is an ordered, fixed set of probes indexed by payload.
type Corpus struct {
	probes []*Probe
	index  map[string]*Probe
}

// New builds a corpus. Payloads are the correlation key of a pass, so an
// empty or repeated payload is rejected.
func New(probes ...*Probe) (*Corpus, error) {
	c := &Corpus{
		probes: make([]*Probe, 0, len(probes)),
		index:  make(map[string]*Probe, len(probes)),
	}
	for i, p := range probes {
		if p == nil || len(p.payload) == 0 {
			return nil, fmt.Errorf("probe %d: %w", i, ErrEmptyPayload)
		}
		key := string(p.payload)
		if _, ok := c.index[key]; ok {
			return nil, fmt.Errorf("probe %d: %w", i, ErrDuplicatePayload)
		}
		c.index[key] = p
		c.probes = append(c.probes, p)
	}
	return c, nil
}

// Len returns the number of probes.
func (c *Corpus) Len() int {
	return len(c.probes)
}

// Probes returns the probes in corpus order.
func (c *Corpus) Probes() []*Probe {
	probes := make([]*Probe, len(c.probes))
	copy(probes, c.probes)
	return probes
}

// Lookup finds the probe carrying payload, nil if there is none.
func (c *Corpus) Lookup(payload []byte) *Probe {
	return c.index[string(payload)]
}

func (c *Corpus) Completed() []*Probe {
	return c.filter((*Probe).Completed)
}

func (c *Corpus) Pending() []*Probe {
	return c.filter(func(p *Probe) bool { return !p.Completed() })
}

func (c *Corpus) Correct() []*Probe {
	return c.filter((*Probe).Correct)
}

func (c *Corpus) Malicious() []*Probe {
	return c.filter((*Probe).Malicious)
}

func (c *Corpus) Benign() []*Probe {
	return c.filter(func(p *Probe) bool { return !p.malicious })
}

func (c *Corpus) FalsePositives() []*Probe {
	return c.filter((*Probe).FalsePositive)
}

func (c *Corpus) FalseNegatives() []*Probe {
	return c.filter((*Probe).FalseNegative)
}

// Reset clears the observed state of every probe.
func (c *Corpus) Reset() {
	for _, p := range c.probes {
		p.Reset()
	}
}

func (c *Corpus) filter(f func(*Probe) bool) (probes []*Probe) {
	for _, p := range c.probes {
		if f(p) {
			probes = append(probes, p)
		}
	}
	return
}
