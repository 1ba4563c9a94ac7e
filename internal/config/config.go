package config

import (
	"fmt"
	"strings"

	"grimm.is/pflask/internal/logging"
)

// Config is the top-level run configuration.
type Config struct {
	Netifs     []string    `hcl:"netifs,optional" json:"netifs,omitempty"`
	Interfaces []Interface `hcl:"interface,block" json:"interfaces,omitempty"`

	// Loopback brings lo up inside the target namespace after the
	// interfaces have been moved.
	Loopback bool `hcl:"loopback,optional" json:"loopback,omitempty"`
	// Verify checks, after setup, that every target name exists inside the
	// target namespace.
	Verify bool `hcl:"verify,optional" json:"verify,omitempty"`

	LogLevel        string `hcl:"log_level,optional" json:"log_level,omitempty"`
	LogJSON         bool   `hcl:"log_json,optional" json:"log_json,omitempty"`
	MetricsTextfile string `hcl:"metrics_textfile,optional" json:"metrics_textfile,omitempty"`
}

// Interface declares one interface by target name.
type Interface struct {
	Target string `hcl:"target,label" json:"target"`
	// Kind is "move" (default), "macvlan" or "veth".
	Kind   string `hcl:"kind,optional" json:"kind,omitempty"`
	Source string `hcl:"source" json:"source"`
}

// Default returns an empty configuration with info logging.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Validate checks values that do not depend on the host.
func (c *Config) Validate() error {
	for i, spec := range c.Netifs {
		if strings.TrimSpace(spec) == "" {
			return fmt.Errorf("netifs[%d]: empty netif spec", i)
		}
	}
	for _, iface := range c.Interfaces {
		switch strings.ToLower(iface.Kind) {
		case "", "move", "macvlan", "veth":
		default:
			return fmt.Errorf("interface %q: unknown kind %q", iface.Target, iface.Kind)
		}
		if iface.Source == "" {
			return fmt.Errorf("interface %q: source is required", iface.Target)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Merge overlays non-zero values from other onto c. Spec strings from other
// are appended after c's.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	c.Netifs = append(c.Netifs, other.Netifs...)
	c.Interfaces = append(c.Interfaces, other.Interfaces...)
	c.Loopback = c.Loopback || other.Loopback
	c.Verify = c.Verify || other.Verify
	c.LogJSON = c.LogJSON || other.LogJSON
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.MetricsTextfile != "" {
		c.MetricsTextfile = other.MetricsTextfile
	}
}

// LoggingConfig derives the logger configuration.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.LogLevel); err == nil {
		cfg.Level = level
	}
	cfg.JSON = c.LogJSON
	return cfg
}
