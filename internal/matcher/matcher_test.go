package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrMatcher(t *testing.T) {
	m, err := AddrMatcher([]string{"192.168.1.7", "10.0.0.0/8", "172.16.*"})
	require.NoError(t, err)

	assert.True(t, m.Match("192.168.1.7"))
	assert.False(t, m.Match("192.168.1.8"))
	assert.True(t, m.Match("10.20.30.40"))
	assert.True(t, m.Match("172.16.5.5"))
	assert.False(t, m.Match("172.17.5.5"))
	assert.False(t, m.Match("not-an-ip"))
}

func TestAddrMatcherEmpty(t *testing.T) {
	m, err := AddrMatcher(nil)
	require.NoError(t, err)
	assert.False(t, m.Match("1.1.1.1"))
}

func TestAddrMatcherInvalid(t *testing.T) {
	_, err := AddrMatcher([]string{"nonsense"})
	assert.Error(t, err)
}

func TestIPMatcherNormalizes(t *testing.T) {
	m, err := AddrMatcher([]string{"::1"})
	require.NoError(t, err)
	assert.True(t, m.Match("0:0:0:0:0:0:0:1"))
}
