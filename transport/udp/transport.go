package udp

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gost/core/logger"
	xnet "github.com/go-gost/seermon/internal/net"
	xlogger "github.com/go-gost/seermon/logger"
	metrics "github.com/go-gost/seermon/metrics/wrapper"
	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/stats"
	"github.com/go-gost/seermon/transport"
)

const (
	DefaultAddr = ":0"
)

func init() {
	registry.TransportRegistry().Register("udp", NewTransport)
}

// udpTransport sends each probe as one datagram to the target and
// receives verdict datagrams on the same socket.
type udpTransport struct {
	pc        net.PacketConn
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
	return &udpTransport{
		closed:  make(chan struct{}),
		logger:  options.Logger,
		options: options,
	}
}

// Init binds the local socket so that verdicts arriving before Listen
// are queued by the kernel.
func (t *udpTransport) Init() (err error) {
	addr := t.options.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	if t.options.Target != "" {
		if t.target, err = net.ResolveUDPAddr(xnet.Network("udp", t.options.Target), t.options.Target); err != nil {
			return
		}
	}

	lc := xnet.ListenConfig{
		Netns: t.options.Netns,
	}
	pc, err := lc.ListenPacket(context.Background(), xnet.Network("udp", addr), addr)
	if err != nil {
		return
	}

	if t.options.ReadBufferSize > 0 {
		if sb, ok := pc.(xnet.SetBuffer); ok {
			if err := sb.SetReadBuffer(t.options.ReadBufferSize); err != nil {
				t.logger.Warnf("set read buffer: %v", err)
			}
		}
	}

	t.pc = metrics.WrapPacketConn("udp", pc)
	t.logger.Debugf("udp transport bound on %s, target %v", t.pc.LocalAddr(), t.target)
	return
}

func (t *udpTransport) Send(ctx context.Context, payload []byte) error {
	select {
	case <-t.closed:
		return transport.ErrClosed
	default:
	}
	if t.pc == nil {
		return transport.ErrNotInit
	}
	if t.target == nil {
		return transport.ErrNoTarget
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		t.pc.SetWriteDeadline(deadline)
		defer t.pc.SetWriteDeadline(time.Time{})
	}

	n, err := t.pc.WriteTo(payload, t.target)
	t.options.Stats.Add(stats.KindOutputBytes, int64(n))
	return err
}

func (t *udpTransport) Listen(ctx context.Context, filter *transport.Filter, fn transport.ArrivalFunc) error {
	select {
	case <-t.closed:
		return transport.ErrClosed
	default:
	}
	if t.pc == nil {
		return transport.ErrNotInit
	}
	if !t.listening.CompareAndSwap(false, true) {
		return transport.ErrListening
	}

	go func() {
		defer t.listening.Store(false)
		transport.ReadLoop(ctx, t.pc, t.options.ReadBufferSize, filter, fn, t.options.Stats, t.logger)
		t.logger.Debugf("udp transport on %s stopped listening", t.pc.LocalAddr())
	}()
	return nil
}

func (t *udpTransport) Addr() net.Addr {
	if t.pc == nil {
		return nil
	}
	return t.pc.LocalAddr()
}

func (t *udpTransport) Close() (err error) {
	t.closeOnce.Do(func() {
		close(t.closed)
		if t.pc != nil {
			err = t.pc.Close()
		}
	})
	return
}
