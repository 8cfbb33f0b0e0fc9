package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPaths []string
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool

	Command string
	Args    []string

	usage func()
}

func parseFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)

	var configPaths string

	// Define flags with environment variable fallback
	fs.StringVar(&configPaths, "config",
		getEnv("SDMXCTL_CONFIG", ""),
		"Comma separated configuration layers, later ones win (env: SDMXCTL_CONFIG)")

	fs.StringVar(&configPaths, "c",
		getEnv("SDMXCTL_CONFIG", ""),
		"Comma separated configuration layers, later ones win (env: SDMXCTL_CONFIG)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("SDMXCTL_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: SDMXCTL_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("SDMXCTL_LOG_FORMAT", "text"),
		"Log format: json, text (env: SDMXCTL_LOG_FORMAT)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	fs.Usage = func() {
		printDetailedHelp(output, fs)
	}
	cfg.usage = fs.Usage

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	for _, p := range strings.Split(configPaths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.ConfigPaths = append(cfg.ConfigPaths, p)
		}
	}

	if remaining := fs.Args(); len(remaining) > 0 {
		cfg.Command = remaining[0]
		cfg.Args = remaining[1:]
	}

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	for _, p := range cfg.ConfigPaths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file not found: %s", p)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.Command == "" {
		return fmt.Errorf("missing command")
	}

	return nil
}

func printDetailedHelp(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, `%s - SDMX provider registry tool

Usage: %s [options] <command> [command options]

Commands:
  providers  List the provider registry (-format table|json|yaml)
  resolve    Resolve a provider name to a client and describe it
  probe      Request the dataflow list of providers and report reachability

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # List providers with local overrides
  %s -config=sdmx.properties providers

  # Describe the client used for Eurostat
  %s resolve EUROSTAT

  # Probe two providers every minute and expose metrics on :9090
  %s probe -watch=1m -metrics-addr=:9090 ECB ISTAT

  # Configure through the environment
  export SDMXCTL_CONFIG=/etc/sdmx/providers.yaml
  export SDMX_PROVIDERS_ECB_ENDPOINT=https://data-api.ecb.europa.eu/service
  %s providers -format yaml

Version: %s
Build: %s
`, appName, appName, appName, appName, Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
