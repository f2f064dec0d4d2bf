package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gost/core/logger"
)

const passKey = "pass"

// mwLogger logs each request with the pass it concerns. Successful status
// polls are logged at debug so that a client polling a long pass does not
// flood the log.
func mwLogger(log logger.Logger, pass Pass) gin.HandlerFunc {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithFields(map[string]any{"kind": "api"})
	if pass != nil {
		log = log.WithFields(map[string]any{"pass": pass.ID()})
	}

	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		duration := time.Since(start)

		code := ctx.Writer.Status()
		entry := log.WithFields(map[string]any{
			"method":   ctx.Request.Method,
			"uri":      ctx.Request.RequestURI,
			"code":     code,
			"client":   ctx.ClientIP(),
			"duration": duration,
		})
		msg := "| %3d | %13v | %15s | %-7s %s"
		args := []any{code, duration, ctx.ClientIP(), ctx.Request.Method, ctx.Request.RequestURI}

		switch {
		case code >= http.StatusInternalServerError:
			entry.Errorf(msg, args...)
		case code >= http.StatusBadRequest && code != http.StatusConflict:
			entry.Warnf(msg, args...)
		case ctx.Request.Method == http.MethodGet:
			entry.Debugf(msg, args...)
		default:
			entry.Infof(msg, args...)
		}
	}
}

// mwPass makes the pass available to handlers and rejects requests when
// there is none.
func mwPass(pass Pass) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pass == nil {
			writeError(c, ErrNotFound)
			c.Abort()
			return
		}
		c.Set(passKey, pass)
	}
}

func passFrom(c *gin.Context) Pass {
	v, _ := c.Get(passKey)
	p, _ := v.(Pass)
	return p
}
