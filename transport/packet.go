package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/stats"
)

const (
	DefaultReadBufferSize = 64 * 1024
)

// ReadLoop reads units from pc and hands those passing filter to fn.
// It returns when ctx is done or pc is closed.
func ReadLoop(ctx context.Context, pc net.PacketConn, bufferSize int, filter *Filter, fn ArrivalFunc, st *stats.Stats, log logger.Logger) {
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}

	// clear a deadline left behind by a previous loop
	pc.SetReadDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() {
		// unblock the pending read
		pc.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, bufferSize)
	for {
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if log != nil {
				log.Error(err)
			}
			return
		}
		st.Add(stats.KindInputBytes, int64(n))

		if !filter.Match(buf[:n], addr) {
			st.Add(stats.KindFiltered, 1)
			if log != nil && log.IsLevelEnabled(logger.TraceLevel) {
				log.Tracef("filtered %d bytes from %v", n, addr)
			}
			continue
		}

		b := make([]byte, n)
		copy(b, buf[:n])
		fn(b, addr)
	}
}
