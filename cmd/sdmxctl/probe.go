package main

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Quinlan2018/SDMX/health"
	"github.com/Quinlan2018/SDMX/metric"
	"github.com/Quinlan2018/SDMX/pkg/tlsutil"
	"github.com/Quinlan2018/SDMX/rest"
)

// probeOptions are the flags of the probe command.
type probeOptions struct {
	concurrency int
	timeout     time.Duration
	slow        time.Duration
	watch       time.Duration
	metricsAddr string
	metricsCert string
	metricsKey  string
	format      string
	providers   []string
}

// prober probes providers and records the outcome in a monitor.
type prober struct {
	env      *environment
	opts     probeOptions
	monitor  *health.Monitor
	duration *prometheus.HistogramVec
}

func runProbe(ctx context.Context, env *environment, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts probeOptions
	fs.IntVar(&opts.concurrency, "concurrency", 4, "Providers probed in parallel")
	fs.DurationVar(&opts.timeout, "timeout", 15*time.Second, "Timeout per provider")
	fs.DurationVar(&opts.slow, "slow", health.DefaultSlowThreshold, "Latency above which a provider is degraded")
	fs.DurationVar(&opts.watch, "watch", 0, "Probe repeatedly at this interval, 0 probes once")
	fs.StringVar(&opts.metricsAddr, "metrics-addr",
		getEnv("SDMXCTL_METRICS_ADDR", ":9090"),
		"Metrics listen address in watch mode, empty disables (env: SDMXCTL_METRICS_ADDR)")
	fs.StringVar(&opts.metricsCert, "metrics-cert", "", "TLS certificate for the metrics endpoint")
	fs.StringVar(&opts.metricsKey, "metrics-key", "", "TLS key for the metrics endpoint")
	fs.StringVar(&opts.format, "format", "table", "Output format: table, json, yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (opts.metricsCert == "") != (opts.metricsKey == "") {
		return fmt.Errorf("-metrics-cert and -metrics-key must be set together")
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", opts.concurrency)
	}

	opts.providers = fs.Args()
	if len(opts.providers) == 0 {
		opts.providers = env.registry.Names()
	}

	p, err := newProber(env, opts)
	if err != nil {
		return err
	}

	if opts.watch <= 0 {
		overall, err := p.probeAll(ctx)
		if err != nil {
			return err
		}
		if err := writeViews(stdout, opts.format, overall, printProbeTable); err != nil {
			return err
		}
		if overall.IsUnhealthy() {
			return fmt.Errorf("%d of %d providers unreachable", countUnhealthy(overall), len(overall.SubStatuses))
		}
		return nil
	}

	return p.watch(ctx, stdout, stderr)
}

func newProber(env *environment, opts probeOptions) (*prober, error) {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sdmx",
			Subsystem: "probe",
			Name:      "duration_seconds",
			Help:      "Probe duration in seconds, by provider",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	if err := env.metrics.Register("probe", "duration", duration); err != nil {
		return nil, fmt.Errorf("register probe metrics: %w", err)
	}

	return &prober{
		env:      env,
		opts:     opts,
		monitor:  health.NewMonitor(env.metrics.CoreMetrics()),
		duration: duration,
	}, nil
}

// probeAll probes every selected provider, at most opts.concurrency at a
// time, and returns the aggregated status.
func (p *prober) probeAll(ctx context.Context) (health.Status, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.concurrency)

	for _, name := range p.opts.providers {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			p.monitor.Update(name, p.probe(gctx, name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return health.Status{}, err
	}

	return p.monitor.AggregateHealth(appName), nil
}

func (p *prober) probe(ctx context.Context, name string) health.Status {
	cl, err := p.env.factory.CreateClient(name)
	if err != nil {
		return health.FromProbe(name, health.ProbeResult{}, err, p.opts.slow)
	}
	if cl.NeedsCredentials() {
		return health.New(name, health.StatusDegraded, "Credentials required, not probed")
	}
	rc, ok := cl.(*rest.Client)
	if !ok {
		return health.New(name, health.StatusDegraded, "Client does not support probing")
	}

	u, err := rc.DataflowsURL()
	if err != nil {
		return health.FromProbe(name, health.ProbeResult{}, err, p.opts.slow)
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout)
	defer cancel()

	start := time.Now()
	body, err := rc.Fetch(ctx, u)
	latency := time.Since(start)
	p.duration.WithLabelValues(name).Observe(latency.Seconds())

	p.env.logger.Debug("Probed provider", "provider", name, "latency", latency, "error", err)
	return health.FromProbe(name, health.ProbeResult{
		Endpoint: u.Redacted(),
		Latency:  latency,
		Bytes:    len(body),
	}, err, p.opts.slow)
}

// watch probes at every interval until ctx is done, serving metrics
// meanwhile.
func (p *prober) watch(ctx context.Context, stdout, stderr io.Writer) error {
	if p.opts.metricsAddr != "" {
		var tlsCfg *tls.Config
		if p.opts.metricsCert != "" {
			cfg, err := tlsutil.LoadServerTLSConfig(p.opts.metricsCert, p.opts.metricsKey, "")
			if err != nil {
				return fmt.Errorf("metrics tls: %w", err)
			}
			tlsCfg = cfg
		}

		srv := metric.NewServer(p.opts.metricsAddr, "/metrics", p.env.metrics, tlsCfg)
		go func() {
			if err := srv.Start(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				p.env.logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() { _ = srv.Stop() }()
		_, _ = fmt.Fprintf(stderr, "serving metrics on %s\n", srv.Address())
	}

	ticker := time.NewTicker(p.opts.watch)
	defer ticker.Stop()

	for {
		overall, err := p.probeAll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := writeViews(stdout, p.opts.format, overall, printProbeTable); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printProbeTable(w io.Writer, overall health.Status) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PROVIDER\tSTATUS\tLATENCY\tBYTES\tMESSAGE")
	for _, s := range overall.SubStatuses {
		latency, bytes := "-", "-"
		if s.Probe != nil && s.Probe.Latency > 0 {
			latency = s.Probe.Latency.Round(time.Millisecond).String()
			bytes = fmt.Sprint(s.Probe.Bytes)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Provider, s.Status, latency, bytes, s.Message)
	}
	_, _ = fmt.Fprintf(tw, "%s\t%s\t\t\t%s\n", "OVERALL", overall.Status, overall.Message)
	return tw.Flush()
}

func countUnhealthy(overall health.Status) int {
	n := 0
	for _, s := range overall.SubStatuses {
		if s.IsUnhealthy() {
			n++
		}
	}
	return n
}
