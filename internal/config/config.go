// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the logicsim command configuration.
//
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/store"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Store backends.
//
const (
	BackendDir    = "dir"
	BackendNATS   = "nats"
	BackendMemory = "memory"
)

// Canvas configures the drawing surface.
//
type Canvas struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Grid   float64 `yaml:"grid"`
}

// Designer configures the interaction controller.
//
type Designer struct {
	HitThreshold   float64 `yaml:"hit_threshold"`
	MaxIterations  int     `yaml:"max_iterations"`
	SettleOnToggle bool    `yaml:"settle_on_toggle"`
}

// Store configures the document store.
//
type Store struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	NATSURL string `yaml:"nats_url"`
	Bucket  string `yaml:"bucket"`
}

// Log configures logging.
//
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics configures the Prometheus endpoint. An empty address disables it.
//
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Config is the top level configuration.
//
type Config struct {
	Canvas   Canvas   `yaml:"canvas"`
	Designer Designer `yaml:"designer"`
	Store    Store    `yaml:"store"`
	Log      Log      `yaml:"log"`
	Metrics  Metrics  `yaml:"metrics"`
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Canvas: Canvas{Width: 800, Height: 400, Grid: 20},
		Designer: Designer{
			HitThreshold:   sim.DefaultHitThreshold,
			MaxIterations:  sim.DefaultMaxIterations,
			SettleOnToggle: true,
		},
		Store: Store{
			Backend: BackendDir,
			Dir:     "./circuits",
			NATSURL: "nats://127.0.0.1:4222",
			Bucket:  store.DefaultBucket,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Decode reads a YAML configuration from r. Missing fields keep their default
// value.
//
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the named configuration file. An empty name returns the
// defaults.
//
func Load(name string) (*Config, error) {
	if name == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	return cfg, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return errors.Errorf("invalid canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.Grid < 0:
		return errors.Errorf("invalid grid step %g", c.Canvas.Grid)
	case c.Designer.HitThreshold <= 0:
		return errors.Errorf("invalid hit threshold %g", c.Designer.HitThreshold)
	case c.Designer.MaxIterations <= 0:
		return errors.Errorf("invalid max iterations %d", c.Designer.MaxIterations)
	}
	switch c.Store.Backend {
	case BackendDir:
		if c.Store.Dir == "" {
			return errors.New("store.dir is required by the dir backend")
		}
	case BackendNATS:
		if c.Store.NATSURL == "" {
			return errors.New("store.nats_url is required by the nats backend")
		}
	case BackendMemory:
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Encode writes c to w in YAML format.
//
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(enc.Close(), "encode config")
}
