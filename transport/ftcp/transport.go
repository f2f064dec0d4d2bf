package ftcp

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/go-gost/core/logger"
	xnet "github.com/go-gost/seermon/internal/net"
	xlogger "github.com/go-gost/seermon/logger"
	metrics "github.com/go-gost/seermon/metrics/wrapper"
	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/stats"
	"github.com/go-gost/seermon/transport"
	"github.com/xtaci/tcpraw"
)

func init() {
	registry.TransportRegistry().Register("ftcp", NewTransport)
}

// ftcpTransport carries probes and verdicts as segments of a fake TCP
// connection, for classifiers that only inspect TCP traffic.
// Opening raw sockets requires CAP_NET_RAW.
type ftcpTransport struct {
	// dial is the fake connection to the target, rx receives verdicts.
	dial      net.PacketConn
	rx        net.PacketConn
	target    net.Addr
	listening atomic.Bool
	closed    chan struct{}
	closeOnce sync.Once
	logger    logger.Logger
	options   transport.Options
}

func NewTransport(opts ...transport.Option) transport.Transport {
	options := transport.Options{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = xlogger.Nop()
	}
	return &ftcpTransport{
		closed:  make(chan struct{}),
		logger:  options.Logger,
		options: options,
	}
}

// Init dials the target when one is configured and listens on Addr when
// one is configured. Without Addr verdicts are read from the dialed
// connection.
func (t *ftcpTransport) Init() (err error) {
	if t.options.Target == "" && t.options.Addr == "" {
		return transport.ErrNoTarget
	}

	lc := xnet.ListenConfig{
		Netns: t.options.Netns,
	}

	if t.options.Target != "" {
		network := xnet.Network("tcp", t.options.Target)
		if t.target, err = net.ResolveTCPAddr(network, t.options.Target); err != nil {
			return
		}
		var conn *tcpraw.TCPConn
		if err = lc.Do(func() (err error) {
			conn, err = tcpraw.Dial(network, t.options.Target)
			return
		}); err != nil {
			return
		}
		t.setReadBuffer(conn)
		t.dial = metrics.WrapPacketConn("ftcp", conn)
		t.rx = t.dial
	}

	if t.options.Addr != "" {
		var conn *tcpraw.TCPConn
		if err = lc.Do(func() (err error) {
			conn, err = tcpraw.Listen(xnet.Network("tcp", t.options.Addr), t.options.Addr)
			return
		}); err != nil {
			t.Close()
			return
		}
		t.setReadBuffer(conn)
		t.rx = metrics.WrapPacketConn("ftcp", conn)
	}

	t.logger.Debugf("ftcp transport receiving on %s, target %v", t.rx.LocalAddr(), t.target)
	return nil
}

func (t *ftcpTransport) setReadBuffer(conn net.PacketConn) {
	if t.options.ReadBufferSize <= 0 {
		return
	}
	if sb, ok := conn.(xnet.SetBuffer); ok {
		if err := sb.SetReadBuffer(t.options.ReadBufferSize); err != nil {
			t.logger.Warnf("set read buffer: %v", err)
		}
	}
}

func (t *ftcpTransport) Send(ctx context.Context, payload []byte) error {
	select {
	case <-t.closed:
		return transport.ErrClosed
	default:
	}
	if t.rx == nil {
		return transport.ErrNotInit
	}
	if t.dial == nil {
		return transport.ErrNoTarget
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := t.dial.WriteTo(payload, t.target)
	t.options.Stats.Add(stats.KindOutputBytes, int64(n))
	return err
}

func (t *ftcpTransport) Listen(ctx context.Context, filter *transport.Filter, fn transport.ArrivalFunc) error {
	select {
	case <-t.closed:
		return transport.ErrClosed
	default:
	}
	if t.rx == nil {
		return transport.ErrNotInit
	}
	if !t.listening.CompareAndSwap(false, true) {
		return transport.ErrListening
	}

	go func() {
		defer t.listening.Store(false)
		transport.ReadLoop(ctx, t.rx, t.options.ReadBufferSize, filter, fn, t.options.Stats, t.logger)
	}()
	return nil
}

func (t *ftcpTransport) Addr() net.Addr {
	if t.rx == nil {
		return nil
	}
	return t.rx.LocalAddr()
}

func (t *ftcpTransport) Close() (err error) {
	t.closeOnce.Do(func() {
		close(t.closed)
		if t.dial != nil {
			err = t.dial.Close()
		}
		if t.rx != nil && t.rx != t.dial {
			if e := t.rx.Close(); e != nil {
				err = e
			}
		}
	})
	return
}
