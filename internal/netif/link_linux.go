//go:build linux

package netif

import (
	"github.com/vishvananda/netlink/nl"
	"golang.org/x/sys/unix"

	"grimm.is/pflask/internal/clock"
	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/logging"
	"grimm.is/pflask/internal/metrics"
	"grimm.is/pflask/internal/rtnl"
)

// Operation names used in logs and metrics.
const (
	OpBringUp       = "bring_up"
	OpMoveAndRename = "move_and_rename"
	OpCreateMacvlan = "create_macvlan"
	OpCreateVeth    = "create_veth"
)

// Ops issues link requests over one netlink connection, one request at a
// time.
type Ops struct {
	conn    rtnl.Conn
	log     *logging.Logger
	metrics *metrics.Registry
	clock   clock.Clock
}

// NewOps creates Ops on conn.
func NewOps(conn rtnl.Conn, opts ...Option) *Ops {
	o := buildOptions(opts)
	return &Ops{
		conn:    conn,
		log:     o.log.WithComponent("netif"),
		metrics: o.metrics,
		clock:   o.clock,
	}
}

// BringUp sets IFF_UP on the interface with the given index.
func (o *Ops) BringUp(index int) error {
	if err := o.do(OpBringUp, bringUpRequest(index)); err != nil {
		return errors.Annotate(err, "failed to bring up interface %d", index)
	}
	return nil
}

// MoveAndRename moves the interface into the network namespace of pid and
// renames it in the same request.
func (o *Ops) MoveAndRename(pid, index int, name string) error {
	if err := o.do(OpMoveAndRename, moveRequest(pid, index, name)); err != nil {
		return errors.Attr(errors.Annotate(err, "failed to move interface %d into namespace of pid %d as %s", index, pid, name), "pid", pid)
	}
	return nil
}

// CreateMacvlan creates a macvlan named name on the master interface.
func (o *Ops) CreateMacvlan(master int, name string) error {
	if err := o.do(OpCreateMacvlan, macvlanRequest(master, name)); err != nil {
		return errors.Annotate(err, "failed to create macvlan %s on interface %d", name, master)
	}
	return nil
}

// CreateVethPair creates a veth pair. out stays on the host; in is the peer
// end that is later moved.
func (o *Ops) CreateVethPair(out, in string) error {
	if err := o.do(OpCreateVeth, vethRequest(out, in)); err != nil {
		return errors.Annotate(err, "failed to create veth pair %s/%s", out, in)
	}
	return nil
}

func (o *Ops) do(op string, m *rtnl.Message) error {
	if err := m.Err(); err != nil {
		return err
	}
	sent := m.Len()

	start := o.clock.Now()
	reply, err := rtnl.RoundTrip(o.conn, m)
	if err == nil {
		err = reply.Err()
	}
	o.metrics.Observe(op, o.clock.Since(start), err)
	if err != nil {
		o.log.Debug("netlink request failed", "op", op, "len", sent, "error", err)
		return err
	}

	o.log.Debug("netlink request acknowledged", "op", op, "len", sent)
	return nil
}

func bringUpRequest(index int) *rtnl.Message {
	ifi := nl.NewIfInfomsg(unix.AF_UNSPEC)
	ifi.Index = int32(index)
	ifi.Flags = unix.IFF_UP
	ifi.Change = unix.IFF_UP
	return rtnl.NewLinkMessage(0, ifi)
}

func moveRequest(pid, index int, name string) *rtnl.Message {
	ifi := nl.NewIfInfomsg(unix.AF_UNSPEC)
	ifi.Index = int32(index)
	m := rtnl.NewLinkMessage(0, ifi)
	m.AddInt32(rtnl.AttrNetNsPid, int32(pid))
	m.AddString(rtnl.AttrIfName, name)
	return m
}

func macvlanRequest(master int, name string) *rtnl.Message {
	m := rtnl.NewLinkMessage(rtnl.FlagCreate|rtnl.FlagExclusive, nl.NewIfInfomsg(unix.AF_UNSPEC))

	info := m.StartNested(rtnl.AttrLinkInfo)
	m.AddString(rtnl.AttrInfoKind, "macvlan")
	m.EndNested(info)

	m.AddUint32(rtnl.AttrLink, uint32(master))
	m.AddString(rtnl.AttrIfName, name)
	return m
}

func vethRequest(out, in string) *rtnl.Message {
	m := rtnl.NewLinkMessage(rtnl.FlagCreate|rtnl.FlagExclusive, nl.NewIfInfomsg(unix.AF_UNSPEC))

	info := m.StartNested(rtnl.AttrLinkInfo)
	m.AddString(rtnl.AttrInfoKind, "veth")
	data := m.StartNested(rtnl.AttrInfoData)
	peer := m.StartNested(rtnl.AttrVethPeer)
	m.AddRaw(nl.NewIfInfomsg(unix.AF_UNSPEC).Serialize())
	m.AddString(rtnl.AttrIfName, in)
	m.EndNested(peer)
	m.EndNested(data)
	m.EndNested(info)

	m.AddString(rtnl.AttrIfName, out)
	return m
}
