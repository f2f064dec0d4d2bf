package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/go-gost/seermon/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newCorpus(t *testing.T, probes ...*corpus.Probe) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New(probes...)
	require.NoError(t, err)
	return c
}

func TestNewRate(t *testing.T) {
	assert.Equal(t, Rate{Value: 50, Defined: true}, NewRate(1, 2))
	assert.Equal(t, Rate{Value: 33.33, Defined: true}, NewRate(1, 3))
	assert.Equal(t, Rate{Value: 66.67, Defined: true}, NewRate(2, 3))
	assert.Equal(t, Rate{Value: 0, Defined: true}, NewRate(0, 1))
	assert.False(t, NewRate(0, 0).Defined)

	assert.Equal(t, "50%", NewRate(1, 2).String())
	assert.Equal(t, "33.33%", NewRate(1, 3).String())
	assert.Equal(t, "undefined", NewRate(1, 0).String())
}

func TestRateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Rate `json:"a"`
		B Rate `json:"b"`
	}{NewRate(1, 4), NewRate(0, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":25,"b":null}`, string(b))

	var r struct {
		A Rate `json:"a"`
		B Rate `json:"b"`
	}
	require.NoError(t, json.Unmarshal(b, &r))
	assert.Equal(t, NewRate(1, 4), r.A)
	assert.False(t, r.B.Defined)
}

func TestRateYAML(t *testing.T) {
	b, err := yaml.Marshal(map[string]Rate{"a": NewRate(1, 2), "b": {}})
	require.NoError(t, err)
	assert.Equal(t, "a: 50\nb: undefined\n", string(b))

	var m map[string]Rate
	require.NoError(t, yaml.Unmarshal(b, &m))
	assert.Equal(t, NewRate(1, 2), m["a"])
	assert.False(t, m["b"].Defined)
}

func TestComputeScenario(t *testing.T) {
	c := newCorpus(t,
		corpus.NewProbe([]byte("A"), true),
		corpus.NewProbe([]byte("B"), false),
	)
	c.Lookup([]byte("A")).SetPrediction(true)
	c.Lookup([]byte("B")).SetPrediction(true)

	r := Compute(c)
	assert.Equal(t, 2, r.TotalSent)
	assert.Equal(t, 1, r.TotalCorrect)
	assert.Equal(t, 1, r.NumMalicious)
	assert.Equal(t, 1, r.NumBenign)
	assert.Equal(t, 1, r.NumFalsePositive)
	assert.Equal(t, 0, r.NumFalseNegative)
	assert.Equal(t, NewRate(50, 100), r.AccuracyRate)
	assert.Equal(t, NewRate(100, 100), r.FalsePositiveRate)
	assert.Equal(t, Rate{Value: 0, Defined: true}, r.FalseNegativeRate)

	// pure over a fixed corpus state
	assert.Equal(t, r, Compute(c))
}

func TestComputeEmpty(t *testing.T) {
	r := Compute(newCorpus(t))
	assert.Zero(t, r.TotalSent)
	assert.False(t, r.AccuracyRate.Defined)
	assert.False(t, r.FalsePositiveRate.Defined)
	assert.False(t, r.FalseNegativeRate.Defined)
}

func TestComputeNoMalicious(t *testing.T) {
	c := newCorpus(t,
		corpus.NewProbe([]byte("A"), false),
		corpus.NewProbe([]byte("B"), false),
	)
	c.Lookup([]byte("A")).SetPrediction(false)
	c.Lookup([]byte("B")).SetPrediction(true)

	r := Compute(c)
	assert.False(t, r.FalseNegativeRate.Defined)
	assert.Equal(t, NewRate(1, 2), r.FalsePositiveRate)
	assert.Equal(t, r.TotalSent, r.TotalCorrect+r.NumFalsePositive+r.NumFalseNegative)
	assert.LessOrEqual(t, r.NumFalsePositive, r.NumBenign)
	assert.LessOrEqual(t, r.NumFalseNegative, r.NumMalicious)
}

func TestWriteText(t *testing.T) {
	r := Report{
		TotalSent:         2,
		TotalCorrect:      1,
		AccuracyRate:      NewRate(1, 2),
		FalsePositiveRate: NewRate(1, 1),
		FalseNegativeRate: NewRate(0, 0),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &r, ""))
	out := buf.String()
	assert.Contains(t, out, "RESULTS:")
	assert.Contains(t, out, "Total packets sent: 2\n")
	assert.Contains(t, out, "Percent correctly classified: 50%\n")
	assert.Contains(t, out, "False negative rate: undefined\n")
	assert.Contains(t, out, "False positive rate: 100%\n")
}

func TestWriteFormats(t *testing.T) {
	r := Report{PassID: "p1", TotalSent: 1, TotalCorrect: 1, AccuracyRate: NewRate(1, 1)}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &r, FormatJSON))
	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "p1", got.PassID)
	assert.Equal(t, r.AccuracyRate, got.AccuracyRate)
	assert.False(t, got.FalsePositiveRate.Defined)

	buf.Reset()
	require.NoError(t, Write(&buf, &r, FormatYAML))
	assert.Contains(t, buf.String(), "falseNegativeRate: undefined")

	assert.ErrorIs(t, Write(&buf, &r, "xml"), ErrUnknownFormat)
}

type memRecorder struct {
	records [][]byte
}

func (r *memRecorder) Record(ctx context.Context, b []byte) error {
	r.records = append(r.records, b)
	return nil
}

func TestRecord(t *testing.T) {
	r := Report{PassID: "p1", TotalSent: 1}
	rec := &memRecorder{}
	require.NoError(t, r.Record(context.Background(), rec))
	require.Len(t, rec.records, 1)

	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.records[0], &m))
	assert.Equal(t, "p1", m["pass"])
	assert.Equal(t, "recorder.monitor.reports", m["recorder"])
	assert.Nil(t, m["accuracyRate"])
}

func TestComputeWhileVerdictsChange(t *testing.T) {
	benign := corpus.NewProbe([]byte("B"), false)
	malicious := corpus.NewProbe([]byte("M"), true)
	c := newCorpus(t, benign, malicious)
	benign.SetPrediction(true)
	malicious.SetPrediction(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			benign.SetPrediction(i%2 == 0)
			malicious.SetPrediction(i%2 == 1)
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		r := Compute(c)
		assert.Equal(t, 2, r.TotalCorrect+r.NumFalsePositive+r.NumFalseNegative)
		assert.LessOrEqual(t, r.NumFalsePositive, 1)
		assert.LessOrEqual(t, r.NumFalseNegative, 1)
	}
}
