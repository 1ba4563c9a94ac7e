//go:build linux

package netif

import (
	"grimm.is/pflask/internal/brand"
	"grimm.is/pflask/internal/clock"
	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/logging"
	"grimm.is/pflask/internal/metrics"
	"grimm.is/pflask/internal/rtnl"
)

// LoopbackIndex is the index of lo in every network namespace.
const LoopbackIndex = 1

// TransientName is the host-side name of an interface created for pid, used
// until the interface is moved and renamed.
func TransientName(pid int) string {
	return brand.TransientName(pid)
}

type options struct {
	log     *logging.Logger
	metrics *metrics.Registry
	clock   clock.Clock
}

// Option configures a Setup.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records round trips and configured interfaces in m.
func WithMetrics(m *metrics.Registry) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock times netlink round trips with c.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func buildOptions(opts []Option) options {
	o := options{log: logging.Discard(), clock: clock.Real}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	if o.clock == nil {
		o.clock = clock.Real
	}
	return o
}

// Setup applies requests over one connection.
type Setup struct {
	ops      *Ops
	resolver Resolver
	log      *logging.Logger
	metrics  *metrics.Registry
}

// NewSetup creates a Setup issuing requests on conn and resolving host
// names with resolver.
func NewSetup(conn rtnl.Conn, resolver Resolver, opts ...Option) *Setup {
	o := buildOptions(opts)
	return &Setup{
		ops:      NewOps(conn, opts...),
		resolver: resolver,
		log:      o.log.WithComponent("netif"),
		metrics:  o.metrics,
	}
}

// Run drains reg and applies every request for the namespace of pid, in
// registration order. It stops at the first failure.
func (s *Setup) Run(pid int, reg *Registry) error {
	reqs := reg.Drain()
	for i, req := range reqs {
		s.log.Info("configuring interface",
			"kind", req.Kind.String(),
			"source", req.Source,
			"target", req.Target,
			"pid", pid)

		if err := s.apply(pid, req); err != nil {
			err = errors.Annotate(err, "netif %d (%s %s -> %s)", i, req.Kind, req.Source, req.Target)
			return errors.Attr(errors.Attr(err, "request", i), "target", req.Target)
		}
		s.metrics.Configured(req.Kind.String())
	}
	return nil
}

func (s *Setup) apply(pid int, req Request) error {
	switch req.Kind {
	case KindMove:
		index, err := s.resolver.IndexByName(req.Source)
		if err != nil {
			return err
		}
		return s.ops.MoveAndRename(pid, index, req.Target)

	case KindMacvlan:
		master, err := s.resolver.IndexByName(req.Source)
		if err != nil {
			return err
		}
		transient := TransientName(pid)
		if err := s.ops.CreateMacvlan(master, transient); err != nil {
			return err
		}
		return s.moveTransient(pid, transient, req.Target)

	case KindVeth:
		transient := TransientName(pid)
		if err := s.ops.CreateVethPair(req.Source, transient); err != nil {
			return err
		}
		return s.moveTransient(pid, transient, req.Target)

	default:
		return errors.Errorf(errors.KindInternal, "unhandled interface kind %d", int(req.Kind))
	}
}

func (s *Setup) moveTransient(pid int, transient, target string) error {
	index, err := s.resolver.IndexByName(transient)
	if err != nil {
		return err
	}
	return s.ops.MoveAndRename(pid, index, target)
}

// ConfigureInterfaces opens one connection with dial, applies every request
// in reg for the namespace of pid and closes the connection.
func ConfigureInterfaces(dial rtnl.DialFunc, resolver Resolver, pid int, reg *Registry, opts ...Option) error {
	conn, err := dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	return NewSetup(conn, resolver, opts...).Run(pid, reg)
}

// SetupLoopback brings up lo in the caller's network namespace.
func SetupLoopback(dial rtnl.DialFunc, opts ...Option) error {
	conn, err := dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	return NewOps(conn, opts...).BringUp(LoopbackIndex)
}
