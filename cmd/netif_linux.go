//go:build linux

package cmd

import (
	"grimm.is/pflask/internal/brand"
	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/metrics"
	"grimm.is/pflask/internal/netif"
	"grimm.is/pflask/internal/rtnl"
)

// RunNetif moves and creates the requested interfaces for the namespace of
// opts.Pid.
func RunNetif(opts *Options) error {
	if opts.Pid <= 0 {
		return errors.Errorf(errors.KindValidation, "usage: %s netif --pid <pid> <spec>...", brand.BinaryName)
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)
	log := logger.WithComponent("cmd")

	var resolver netif.NetlinkResolver
	reg, err := buildRegistry(cfg, resolver.Exists)
	if err != nil {
		return err
	}
	reqs := reg.Requests()

	m := metrics.New()
	defer func() {
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}()

	setupOpts := []netif.Option{netif.WithLogger(logger), netif.WithMetrics(m)}
	if err := netif.ConfigureInterfaces(rtnl.DefaultDial, resolver, opts.Pid, reg, setupOpts...); err != nil {
		return err
	}

	if cfg.Loopback {
		if err := netif.SetupLoopbackIn(opts.Pid, rtnl.DefaultDial, setupOpts...); err != nil {
			return err
		}
	}

	if cfg.Verify {
		if err := netif.Verify(opts.Pid, reqs); err != nil {
			return err
		}
		log.Info("verified interfaces in target namespace", "pid", opts.Pid, "count", len(reqs))
	}

	log.Info("interfaces configured", "pid", opts.Pid, "count", len(reqs))
	return nil
}

// RunLoopback brings up lo in the current network namespace, or in the
// namespace of opts.Pid when it is set.
func RunLoopback(opts *Options) error {
	cfg, err := resolveConfig(&Options{
		ConfigFile: opts.ConfigFile,
		LogLevel:   opts.LogLevel,
		LogJSON:    opts.LogJSON,
	})
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)

	if opts.Pid > 0 {
		return netif.SetupLoopbackIn(opts.Pid, rtnl.DefaultDial, netif.WithLogger(logger))
	}
	return netif.SetupLoopback(rtnl.DefaultDial, netif.WithLogger(logger))
}
