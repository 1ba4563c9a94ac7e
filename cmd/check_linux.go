//go:build linux

package cmd

import (
	"os"

	"gopkg.in/yaml.v2"

	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/netif"
)

// Plan is the YAML document printed by check.
type Plan struct {
	Pid        int             `yaml:"pid,omitempty"`
	Transient  string          `yaml:"transient,omitempty"`
	Interfaces []netif.Request `yaml:"interfaces"`
	Loopback   bool            `yaml:"loopback,omitempty"`
	Messages   []string        `yaml:"messages,omitempty"`
}

// RunCheck parses the configuration and specs and prints the resulting
// plan. With DryRun the plan is also executed against a recording
// connection and the encoded requests are included.
func RunCheck(opts *Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)

	var resolver netif.Resolver = netif.NetlinkResolver{}
	if opts.DryRun {
		resolver = netif.NewDryRunResolver()
	}

	reg, err := buildRegistry(cfg, resolver.Exists)
	if err != nil {
		return err
	}

	plan := Plan{
		Interfaces: reg.Requests(),
		Loopback:   cfg.Loopback,
	}
	if plan.Interfaces == nil {
		plan.Interfaces = []netif.Request{}
	}

	if opts.DryRun {
		pid := opts.Pid
		if pid <= 0 {
			pid = os.Getpid()
		}
		plan.Pid = pid
		plan.Transient = netif.TransientName(pid)

		conn := netif.NewDryRunConn()
		if err := netif.ConfigureInterfaces(conn.Dial, resolver, pid, reg, netif.WithLogger(logger)); err != nil {
			return errors.Annotate(err, "dry run failed")
		}
		plan.Messages = conn.Messages
	}

	out, err := yaml.Marshal(plan)
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode plan")
	}
	_, err = opts.out().Write(out)
	return err
}
