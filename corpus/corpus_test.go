package corpus

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := New(
		NewProbe([]byte("A"), true),
		NewProbe([]byte("B"), false),
		NewProbe([]byte("C"), true),
		NewProbe([]byte("D"), false),
	)
	require.NoError(t, err)
	return c
}

func TestNewRejectsDuplicatePayload(t *testing.T) {
	_, err := New(NewProbe([]byte("A"), true), NewProbe([]byte("A"), false))
	assert.ErrorIs(t, err, ErrDuplicatePayload)
}

func TestNewRejectsEmptyPayload(t *testing.T) {
	_, err := New(NewProbe(nil, true))
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestLookup(t *testing.T) {
	c := newTestCorpus(t)

	p := c.Lookup([]byte("C"))
	require.NotNil(t, p)
	assert.True(t, p.Malicious())
	assert.Nil(t, c.Lookup([]byte("Z")))
}

func TestViewsTrackPredictions(t *testing.T) {
	c := newTestCorpus(t)
	assert.Len(t, c.Completed(), 0)
	assert.Len(t, c.Pending(), 4)
	assert.Len(t, c.Malicious(), 2)
	assert.Len(t, c.Benign(), 2)

	c.Lookup([]byte("A")).SetPrediction(true)  // correct
	c.Lookup([]byte("B")).SetPrediction(true)  // false positive
	c.Lookup([]byte("C")).SetPrediction(false) // false negative

	assert.Len(t, c.Completed(), 3)
	assert.Len(t, c.Pending(), 1)
	assert.Len(t, c.Correct(), 1)
	assert.Len(t, c.FalsePositives(), 1)
	assert.Len(t, c.FalseNegatives(), 1)
	assert.Equal(t, []byte("B"), c.FalsePositives()[0].Payload())
	assert.Equal(t, []byte("C"), c.FalseNegatives()[0].Payload())

	c.Reset()
	assert.Len(t, c.Completed(), 0)
}

func TestProbeLastWriteWins(t *testing.T) {
	p := NewProbe([]byte("A"), false)
	assert.Equal(t, PredictionUnset, p.Prediction())
	assert.False(t, p.Correct())

	p.SetPrediction(true)
	p.SetPrediction(false)
	assert.Equal(t, PredictionBenign, p.Prediction())
	assert.True(t, p.Correct())
}

func TestProbeSentAt(t *testing.T) {
	p := NewProbe([]byte("A"), false)
	assert.True(t, p.SentAt().IsZero())

	now := time.Now()
	p.MarkSent(now)
	assert.Equal(t, now.UnixNano(), p.SentAt().UnixNano())
}

func TestProbesIsACopy(t *testing.T) {
	c := newTestCorpus(t)
	probes := c.Probes()
	probes[0] = nil
	assert.NotNil(t, c.Probes()[0])
}

func TestEntriesRoundTrip(t *testing.T) {
	c := newTestCorpus(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c.Entries()))
	assert.Contains(t, buf.String(), "payload: \"41\"")

	entries, err := Decode(&buf)
	require.NoError(t, err)
	c2, err := FromEntries(entries)
	require.NoError(t, err)
	require.Equal(t, c.Len(), c2.Len())
	for i, p := range c2.Probes() {
		assert.Equal(t, c.Probes()[i].Payload(), p.Payload())
		assert.Equal(t, c.Probes()[i].Malicious(), p.Malicious())
	}
}

func TestDecodeJSON(t *testing.T) {
	entries, err := Decode(strings.NewReader(`[{"payload":"0a0b","malicious":true}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, HexBytes{0x0a, 0x0b}, entries[0].Payload)
	assert.True(t, entries[0].Malicious)
}

func TestDecodeEmpty(t *testing.T) {
	entries, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecodeBadHex(t *testing.T) {
	_, err := Decode(strings.NewReader("- payload: zz\n"))
	assert.Error(t, err)
}

func TestDecodeEntry(t *testing.T) {
	e, err := DecodeEntry(`{payload: "ff00", malicious: false}`)
	require.NoError(t, err)
	assert.Equal(t, HexBytes{0xff, 0x00}, e.Payload)
	assert.False(t, e.Malicious)
}

func TestDefaultFixture(t *testing.T) {
	entries, err := Fixture(FixtureOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Malicious)

	pkt := gopacket.NewPacket(entries[0].Payload, layers.LayerTypeEthernet, gopacket.Default)
	eth, _ := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	require.NotNil(t, eth)
	assert.Equal(t, DefaultFixtureSrcMAC, eth.SrcMAC.String())
	assert.Equal(t, DefaultFixtureDstMAC, eth.DstMAC.String())

	ip, _ := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	require.NotNil(t, ip)
	assert.Equal(t, DefaultFixtureSrcIP, ip.SrcIP.String())
	assert.Equal(t, DefaultFixtureDstIP, ip.DstIP.String())
	assert.NotNil(t, pkt.Layer(layers.LayerTypeTCP))
}

func TestFixtureUniqueAndAlternating(t *testing.T) {
	entries, err := Fixture(FixtureOptions{Count: 6})
	require.NoError(t, err)

	c, err := FromEntries(entries)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())
	assert.Len(t, c.Malicious(), 3)
	assert.Len(t, c.Benign(), 3)
}

func TestFixtureInvalidAddress(t *testing.T) {
	_, err := Fixture(FixtureOptions{SrcIP: "::1"})
	assert.Error(t, err)
}

func TestFixtureDstPort(t *testing.T) {
	_, err := Fixture(FixtureOptions{DstPort: 70000})
	assert.Error(t, err)

	entries, err := Fixture(FixtureOptions{DstPort: 0xffff})
	require.NoError(t, err)
	pkt := gopacket.NewPacket(entries[0].Payload, layers.LayerTypeEthernet, gopacket.Default)
	tcp, _ := pkt.Layer(layers.LayerTypeTCP).(*layers.TCP)
	require.NotNil(t, tcp)
	assert.Equal(t, layers.TCPPort(0xffff), tcp.DstPort)
}

func TestOutcomeFromPrediction(t *testing.T) {
	p := NewProbe([]byte("A"), true)
	assert.Equal(t, OutcomePending, p.Outcome())
	p.SetPrediction(false)
	assert.Equal(t, OutcomeFalseNegative, p.Outcome())
	p.SetPrediction(true)
	assert.Equal(t, OutcomeCorrect, p.Outcome())

	b := NewProbe([]byte("B"), false)
	b.SetPrediction(true)
	assert.Equal(t, OutcomeFalsePositive, b.Outcome())
	assert.True(t, b.FalsePositive())
	assert.False(t, b.FalseNegative())
}
