package wrapper

import (
	"net"

	"github.com/go-gost/core/metrics"
	xmetrics "github.com/go-gost/seermon/metrics"
)

// packetConn is a transport side PacketConn with metrics supported.
type packetConn struct {
	net.PacketConn
	transport string
}

func WrapPacketConn(transport string, pc net.PacketConn) net.PacketConn {
	if !xmetrics.IsEnabled() || pc == nil {
		return pc
	}
	return &packetConn{
		PacketConn: pc,
		transport:  transport,
	}
}

func (c *packetConn) ReadFrom(p []byte) (n int, addr net.Addr, err error) {
	n, addr, err = c.PacketConn.ReadFrom(p)
	if n > 0 {
		c.count(xmetrics.MetricTransferInputBytesCounter, addr, n)
	}
	return
}

func (c *packetConn) WriteTo(p []byte, addr net.Addr) (n int, err error) {
	n, err = c.PacketConn.WriteTo(p, addr)
	if n > 0 {
		c.count(xmetrics.MetricTransferOutputBytesCounter, addr, n)
	}
	return
}

func (c *packetConn) count(name metrics.MetricName, addr net.Addr, n int) {
	var peer string
	if addr != nil {
		peer, _, _ = net.SplitHostPort(addr.String())
	}

	if counter := xmetrics.GetCounter(name,
		metrics.Labels{
			"transport": c.transport,
			"peer":      peer,
		}); counter != nil {
		counter.Add(float64(n))
	}
}
