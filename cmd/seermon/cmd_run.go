package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gost/core/logger"
	api_service "github.com/go-gost/seermon/api/service"
	"github.com/go-gost/seermon/config"
	"github.com/go-gost/seermon/config/loader"
	"github.com/go-gost/seermon/config/parsing"
	corpus_parser "github.com/go-gost/seermon/config/parsing/corpus"
	pass_parser "github.com/go-gost/seermon/config/parsing/pass"
	transport_parser "github.com/go-gost/seermon/config/parsing/transport"
	xmetrics "github.com/go-gost/seermon/metrics"
	metrics_service "github.com/go-gost/seermon/metrics/service"
	"github.com/go-gost/seermon/monitor"
	"github.com/go-gost/seermon/registry"
	"github.com/go-gost/seermon/report"
	"github.com/go-gost/seermon/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultTimeout = 30 * time.Second
)

var (
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run one evaluation pass",
		Long: `Dispatches every probe of the corpus, listens for verdicts and prints the
report. The pass fails when some probes are still without a verdict once
the timeout expires.`,
		RunE: runPass,
	}

	runFlags struct {
		transport    string
		addr         string
		target       string
		filter       string
		corpusFile   string
		fixtureCount int
		listenFirst  bool
		verbosity    string
		timeout      time.Duration
		format       string
		metricsAddr  string
		apiAddr      string
	}
)

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.transport, "transport", "", "transport type (udp, ftcp)")
	f.StringVarP(&runFlags.addr, "addr", "L", "", "local address verdicts are received on")
	f.StringVarP(&runFlags.target, "target", "T", "", "classifier address probes are sent to")
	f.StringVar(&runFlags.filter, "filter", "", "verdict filter expression")
	f.StringVar(&runFlags.corpusFile, "corpus", "", "corpus file (yaml or json)")
	f.IntVar(&runFlags.fixtureCount, "fixture", 0, "generate a corpus of this many probes")
	f.BoolVar(&runFlags.listenFirst, "listen-first", false, "start listening before dispatching probes")
	f.StringVarP(&runFlags.verbosity, "verbosity", "v", "", "minimal or verbose")
	f.DurationVar(&runFlags.timeout, "timeout", 0, "how long to wait for verdicts")
	f.StringVarP(&runFlags.format, "format", "o", "", "report format (text, json, yaml)")
	f.StringVar(&runFlags.metricsAddr, "metrics", "", "metrics service address")
	f.StringVar(&runFlags.apiAddr, "api", "", "API service address")
}

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if cfgFile != "" {
		name, err := parsing.ExpandPath(cfgFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.ReadFile(name); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := cfg.Load(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return cfg, nil
}

// applyRunFlags overrides cfg with the flags set on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if cfg.Transport == nil {
		cfg.Transport = &config.TransportConfig{}
	}
	if flags.Changed("transport") {
		cfg.Transport.Type = runFlags.transport
	}
	if flags.Changed("addr") {
		cfg.Transport.Addr = runFlags.addr
	}
	if flags.Changed("target") {
		cfg.Transport.Target = runFlags.target
	}
	if flags.Changed("filter") {
		cfg.Filter = runFlags.filter
	}
	if cfg.Filter == "" && !flags.Changed("filter") {
		cfg.Filter = "seer"
	}

	if cfg.Corpus == nil {
		cfg.Corpus = &config.CorpusConfig{}
	}
	if flags.Changed("corpus") {
		cfg.Corpus.File = runFlags.corpusFile
		cfg.Corpus.Fixture = nil
	}
	if flags.Changed("fixture") {
		cfg.Corpus.Fixture = &config.FixtureConfig{Count: runFlags.fixtureCount}
	}

	if cfg.Pass == nil {
		cfg.Pass = &config.PassConfig{}
	}
	if flags.Changed("listen-first") {
		cfg.Pass.ListenFirst = runFlags.listenFirst
	}
	if flags.Changed("verbosity") {
		cfg.Pass.Verbosity = runFlags.verbosity
	}
	if flags.Changed("timeout") {
		cfg.Pass.Timeout = runFlags.timeout
	}

	if cfg.Report == nil {
		cfg.Report = &config.ReportConfig{}
	}
	if flags.Changed("format") {
		cfg.Report.Format = runFlags.format
	}
	if flags.Changed("metrics") {
		cfg.Metrics = &config.MetricsConfig{Addr: runFlags.metricsAddr}
	}
	if flags.Changed("api") {
		cfg.API = &config.APIConfig{Addr: runFlags.apiAddr}
	}
}

func runPass(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)

	config.Set(cfg)
	if err := loader.Load(cfg); err != nil {
		return err
	}
	log := logger.Default()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := corpus_parser.ParseCorpus(ctx, cfg.Corpus)
	if err != nil {
		return err
	}

	st := stats.NewStats()
	tr, err := transport_parser.ParseTransport(cfg.Transport, st)
	if err != nil {
		return err
	}
	defer tr.Close()

	opts, err := pass_parser.ParsePass(cfg.Pass, cfg.Filter)
	if err != nil {
		return err
	}
	m := monitor.New(c, append(opts,
		monitor.TransportOption(tr),
		monitor.StatsOption(st),
	)...)

	if cfg.Metrics != nil && cfg.Metrics.Addr != "" {
		xmetrics.Enable(true)
		s, err := metrics_service.NewService("tcp", cfg.Metrics.Addr,
			metrics_service.PathOption(cfg.Metrics.Path))
		if err != nil {
			return err
		}
		defer s.Close()
		go func() {
			log.Infof("metrics service on %s", s.Addr())
			s.Serve()
		}()
	}

	if cfg.API != nil && cfg.API.Addr != "" {
		s, err := api_service.NewService("tcp", cfg.API.Addr, m,
			api_service.PathPrefixOption(cfg.API.PathPrefix),
			api_service.AccessLogOption(cfg.API.AccessLog),
			api_service.LoggerOption(log),
		)
		if err != nil {
			return err
		}
		defer s.Close()
		go func() {
			log.Infof("api service on %s", s.Addr())
			s.Serve()
		}()
	}

	log.Infof("pass %s: %d probes to %s via %s", m.ID(), c.Len(), cfg.Transport.Target, tr.Addr())
	if err := m.Run(ctx); err != nil {
		return err
	}

	timeout := cfg.Pass.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	wctx, wcancel := context.WithTimeout(ctx, timeout)
	defer wcancel()
	if err := monitor.Wait(wctx, m, cfg.Pass.PollInterval); err != nil {
		return err
	}

	r, err := m.Report()
	if err != nil {
		return err
	}

	if err := writeReport(r, cfg.Report); err != nil {
		return err
	}
	if cfg.Report.Recorder != "" {
		if err := r.Record(ctx, registry.RecorderRegistry().Get(cfg.Report.Recorder)); err != nil {
			log.Warnf("record report: %v", err)
		}
	}
	return nil
}

func writeReport(r *report.Report, cfg *config.ReportConfig) error {
	var w io.Writer = os.Stdout
	switch cfg.Output {
	case "", "stdout":
	case "stderr":
		w = os.Stderr
	default:
		name, err := parsing.ExpandPath(cfg.Output)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		defer f.Close()
		w = f
	}
	return report.Write(w, r, cfg.Format)
}
