package cmd

import (
	"io"
	"os"
	"strings"

	"grimm.is/pflask/internal/brand"
	"grimm.is/pflask/internal/config"
	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/logging"
	"grimm.is/pflask/internal/netif"
)

// Options carries command-line values. Zero values leave the config file's
// settings alone.
type Options struct {
	ConfigFile      string
	Pid             int
	Specs           []string
	Verify          bool
	Loopback        bool
	LogLevel        string
	LogJSON         bool
	MetricsTextfile string
	DryRun          bool

	// Out receives command output. Defaults to stdout.
	Out io.Writer
}

func (o *Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// resolveConfig loads the config file, if any, and overlays the flags.
func resolveConfig(opts *Options) (*config.Config, error) {
	cfg := config.Default()

	path := opts.ConfigFile
	if path == "" {
		path = brand.GetConfigPath()
	}
	if path != "" {
		fileCfg, err := config.LoadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.KindValidation, "configuration invalid")
		}
		cfg = fileCfg
	}

	cfg.Merge(&config.Config{
		Netifs:          opts.Specs,
		Loopback:        opts.Loopback,
		Verify:          opts.Verify,
		LogLevel:        opts.LogLevel,
		LogJSON:         opts.LogJSON,
		MetricsTextfile: opts.MetricsTextfile,
	})
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.KindValidation, "configuration invalid")
	}
	return cfg, nil
}

// setupLogging installs the configured logger as the default.
func setupLogging(cfg *config.Config) *logging.Logger {
	l := logging.New(cfg.LoggingConfig())
	logging.SetDefault(l)
	return l
}

// buildRegistry registers spec strings, then interface blocks.
func buildRegistry(cfg *config.Config, exists func(string) bool) (*netif.Registry, error) {
	reg := netif.NewRegistry()
	for _, spec := range cfg.Netifs {
		if err := reg.AddSpec(spec, exists); err != nil {
			return nil, err
		}
	}
	for _, iface := range cfg.Interfaces {
		kind, err := netif.ParseKind(strings.ToLower(iface.Kind))
		if err != nil {
			return nil, errors.Annotate(err, "interface %q", iface.Target)
		}
		if err := reg.Register(kind, iface.Source, iface.Target); err != nil {
			return nil, errors.Annotate(err, "interface %q", iface.Target)
		}
	}
	return reg, nil
}
