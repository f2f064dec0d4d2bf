package ftcp

import (
	"context"
	"testing"

	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/transport"
	"github.com/stretchr/testify/assert"
)

func TestRegistered(t *testing.T) {
	assert.True(t, registry.TransportRegistry().IsRegistered("ftcp"))
}

// Raw sockets need privileges, so only the paths that fail before
// touching the network are covered here.
func TestUninitialized(t *testing.T) {
	tr := NewTransport(transport.TargetOption("127.0.0.1:9"))
	assert.ErrorIs(t, tr.Send(context.Background(), []byte("A")), transport.ErrNotInit)
	assert.ErrorIs(t, tr.Listen(context.Background(), nil, nil), transport.ErrNotInit)
	assert.Nil(t, tr.Addr())

	assert.NoError(t, tr.Close())
	assert.ErrorIs(t, tr.Send(context.Background(), []byte("A")), transport.ErrClosed)
}

func TestInitWithoutAddresses(t *testing.T) {
	assert.ErrorIs(t, NewTransport().Init(), transport.ErrNoTarget)
}
