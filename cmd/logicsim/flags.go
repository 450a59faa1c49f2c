// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/pkg/errors"
)

// CLIConfig holds the global command line flags. Empty values leave the
// configuration file settings alone.
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	MetricsAddr string
	ShowVersion bool
	Args        []string
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	cli := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cli.ConfigPath, "config",
		getEnv("LOGICSIM_CONFIG", ""),
		"Path to YAML configuration file (env: LOGICSIM_CONFIG)")
	fs.StringVar(&cli.LogLevel, "log-level",
		getEnv("LOGICSIM_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: LOGICSIM_LOG_LEVEL)")
	fs.StringVar(&cli.LogFormat, "log-format",
		getEnv("LOGICSIM_LOG_FORMAT", ""),
		"Log format: json, text (env: LOGICSIM_LOG_FORMAT)")
	fs.StringVar(&cli.MetricsAddr, "metrics-addr",
		getEnv("LOGICSIM_METRICS_ADDR", ""),
		"Prometheus metrics listen address, empty to disable (env: LOGICSIM_METRICS_ADDR)")
	fs.BoolVar(&cli.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cli.Args = fs.Args()
	return cli, nil
}

// apply overrides the configuration with the flags that were set.
func (cli *CLIConfig) apply(cfg *config.Config) {
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
	if cli.MetricsAddr != "" {
		cfg.Metrics.Addr = cli.MetricsAddr
	}
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	_, _ = fmt.Fprintf(w, `%s - logic circuit designer and simulator

Usage: %s [options] command [arguments]

Commands:
  examples    list built-in example circuits
  simulate    propagate a circuit and print component states
  render      draw a circuit to a PNG file
  export      write a circuit document in JSON format
  session     drive the designer from commands read on stdin

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  %s simulate -example half-adder -set 1=1 -set 2=1
  %s render -example sr-latch -simulate -o latch.png
  %s -log-level=debug session < script.txt
`, appName, appName, appName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// assignments collects repeated -set id=value flags.
type assignments []assignment

type assignment struct {
	id sim.ID
	s  sim.State
}

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, v := range *a {
		parts[i] = v.id.String() + "=" + v.s.String()
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(v string) error {
	id, val, ok := strings.Cut(v, "=")
	if !ok || id == "" {
		return errors.Errorf("invalid assignment %q, want id=0 or id=1", v)
	}
	var s sim.State
	switch val {
	case "0":
		s = sim.Low
	case "1":
		s = sim.High
	default:
		return errors.Errorf("invalid input state %q, want 0 or 1", val)
	}
	*a = append(*a, assignment{sim.ParseID(id), s})
	return nil
}

func (a assignments) apply(c *sim.Circuit) error {
	for _, v := range a {
		if err := c.SetInput(v.id, v.s); err != nil {
			return err
		}
	}
	return nil
}
