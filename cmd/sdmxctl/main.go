// Package main implements sdmxctl, an operator tool for the SDMX provider
// registry: it lists the configured providers, resolves names to clients and
// probes provider endpoints.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Quinlan2018/SDMX/client"
	"github.com/Quinlan2018/SDMX/config"
	"github.com/Quinlan2018/SDMX/custom"
	"github.com/Quinlan2018/SDMX/metric"
	"github.com/Quinlan2018/SDMX/pkg/proxy"
	"github.com/Quinlan2018/SDMX/pkg/tlsutil"
	"github.com/Quinlan2018/SDMX/provider"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sdmxctl"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()

	if err != nil {
		slog.Error("Command failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

// environment is the wired set of registries shared by all commands.
type environment struct {
	registry *provider.Registry
	catalog  *client.Catalog
	factory  *client.Factory
	metrics  *metric.MetricsRegistry
	logger   *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cliCfg, err := parseFlags(args, stderr)
	if stderrors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		cliCfg.usage()
		return nil
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger := setupLogger(stderr, cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	env, err := setupEnvironment(cliCfg, logger)
	if err != nil {
		return err
	}

	switch cliCfg.Command {
	case "providers":
		return runProviders(env, cliCfg.Args, stdout, stderr)
	case "resolve":
		return runResolve(env, cliCfg.Args, stdout, stderr)
	case "probe":
		return runProbe(ctx, env, cliCfg.Args, stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q", cliCfg.Command)
	}
}

// setupEnvironment loads configuration and wires the registry, catalog and
// factory.
func setupEnvironment(cliCfg *CLIConfig, logger *slog.Logger) (*environment, error) {
	loader := config.NewLoader()
	for _, p := range cliCfg.ConfigPaths {
		loader.AddLayer(p)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	httpCfg, err := cfg.HTTP()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tlsCfg, err := tlsutil.LoadClientTLSConfig(httpCfg.TLS)
	if err != nil {
		return nil, fmt.Errorf("tls configuration: %w", err)
	}

	policy, err := proxy.Parse(httpCfg.Proxy.URL, httpCfg.Proxy.Hosts)
	if err != nil {
		return nil, fmt.Errorf("proxy configuration: %w", err)
	}

	metricsRegistry := metric.NewMetricsRegistry()
	metrics := metricsRegistry.CoreMetrics()

	catalog := client.NewCatalog(logger)
	if err := custom.Register(catalog); err != nil {
		return nil, fmt.Errorf("register provider implementations: %w", err)
	}

	registry := provider.Initialize(cfg, catalog, logger)
	metrics.RecordRegistrySize(registry.Len())

	factory := client.NewFactory(registry, catalog,
		client.WithDependencies(client.Dependencies{HTTP: httpCfg, TLS: tlsCfg}),
		client.WithLogger(logger),
		client.WithMetrics(metrics),
		client.WithProxy(policy),
	)

	logger.Debug("Environment ready",
		"layers", cfg.Layers(),
		"providers", registry.Len(),
		"implementations", catalog.Len())

	return &environment{
		registry: registry,
		catalog:  catalog,
		factory:  factory,
		metrics:  metricsRegistry,
		logger:   logger,
	}, nil
}
