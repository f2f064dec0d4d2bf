package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-gost/seermon/config"
)

const redacted = "******"

type getConfigRequest struct {
	// yaml or json; without it the Accept header decides, default json.
	Format string `form:"format"`
}

// getConfig serves the effective configuration with credentials masked.
func getConfig(ctx *gin.Context) {
	var req getConfigRequest
	ctx.ShouldBindQuery(&req)

	format := strings.ToLower(req.Format)
	if format == "" && strings.Contains(ctx.GetHeader("Accept"), "yaml") {
		format = "yaml"
	}
	contentType := "application/yaml"
	if format != "yaml" {
		format, contentType = "json", "application/json"
	}

	var buf bytes.Buffer
	if err := redact(config.Global()).Write(&buf, format); err != nil {
		writeError(ctx, NewError(http.StatusInternalServerError, ErrCodeInvalid, err.Error()))
		return
	}
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}

// redact returns a copy of cfg with redis passwords and HTTP recorder
// header values masked. cfg itself is not modified.
func redact(cfg *config.Config) *config.Config {
	c := *cfg

	if cfg.Corpus != nil && cfg.Corpus.Redis != nil && cfg.Corpus.Redis.Password != "" {
		corpus := *cfg.Corpus
		rl := *cfg.Corpus.Redis
		rl.Password = redacted
		corpus.Redis = &rl
		c.Corpus = &corpus
	}

	c.Recorders = nil
	for _, rc := range cfg.Recorders {
		if rc == nil {
			continue
		}
		r := *rc
		if rc.Redis != nil && rc.Redis.Password != "" {
			rr := *rc.Redis
			rr.Password = redacted
			r.Redis = &rr
		}
		if rc.HTTP != nil && len(rc.HTTP.Header) > 0 {
			hr := *rc.HTTP
			hr.Header = make(map[string]string, len(rc.HTTP.Header))
			for k := range rc.HTTP.Header {
				hr.Header[k] = redacted
			}
			r.HTTP = &hr
		}
		c.Recorders = append(c.Recorders, &r)
	}
	return &c
}
