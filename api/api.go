package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-gost/core/logger"
	"github.com/go-gost/seermon/corpus"
	"github.com/go-gost/seermon/monitor"
	"github.com/go-gost/seermon/report"
	"github.com/go-gost/seermon/stats"
)

type Response struct {
	Code int    `json:"code,omitempty"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

// Pass is the view of a running pass served by the API.
type Pass interface {
	ID() string
	State() monitor.State
	Progress() monitor.Progress
	Stats() *stats.Stats
	Corpus() *corpus.Corpus
	Report() (*report.Report, error)
}

type Options struct {
	AccessLog  bool
	PathPrefix string
	Pass       Pass
	// Logger receives the access log, the default logger if nil.
	Logger logger.Logger
}

func Register(r *gin.Engine, opts *Options) {
	if opts == nil {
		opts = &Options{}
	}

	r.Use(
		cors.New((cors.Config{
			AllowAllOrigins:     true,
			AllowMethods:        []string{"GET", "OPTIONS"},
			AllowHeaders:        []string{"*"},
			AllowPrivateNetwork: true,
		})),
		gin.Recovery(),
	)
	if opts.AccessLog {
		r.Use(mwLogger(opts.Logger, opts.Pass))
	}

	router := r.Group("")
	if opts.PathPrefix != "" {
		router = router.Group(opts.PathPrefix)
	}

	router.GET("/config", getConfig)

	pass := router.Group("/pass")
	pass.Use(mwPass(opts.Pass))

	pass.GET("", getPass)
	pass.GET("/report", getReport)
	pass.GET("/probes", getProbeList)
}
