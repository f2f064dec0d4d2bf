package corpus

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// HexBytes is a byte string written as lowercase hex in corpus files.
type HexBytes []byte

func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

func (b *HexBytes) UnmarshalText(text []byte) error {
	v, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// Entry is the serialized form of a probe.
//
//   - payload: 888888888888666666666666080045...
//     malicious: true
type Entry struct {
	Payload   HexBytes `yaml:"payload" json:"payload"`
	Malicious bool     `yaml:"malicious" json:"malicious"`
}

// Decode reads a YAML (or JSON) list of entries.
func Decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("corpus: decode: %w", err)
	}
	return entries, nil
}

// DecodeEntry reads a single entry, as stored one per element in a list source.
func DecodeEntry(s string) (Entry, error) {
	var e Entry
	if err := yaml.Unmarshal([]byte(s), &e); err != nil {
		return e, fmt.Errorf("corpus: decode entry: %w", err)
	}
	return e, nil
}

// Encode writes entries as YAML.
func Encode(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)

	return enc.Encode(entries)
}

// FromEntries builds a corpus in entry order.
func FromEntries(entries []Entry) (*Corpus, error) {
	probes := make([]*Probe, 0, len(entries))
	for _, e := range entries {
		probes = append(probes, NewProbe([]byte(e.Payload), e.Malicious))
	}
	return New(probes...)
}

// Entries returns the serialized form of the corpus.
func (c *Corpus) Entries() []Entry {
	entries := make([]Entry, 0, len(c.probes))
	for _, p := range c.probes {
		entries = append(entries, Entry{
			Payload:   HexBytes(p.payload),
			Malicious: p.malicious,
		})
	}
	return entries
}
