//go:build linux

package netif

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/metrics"
	"grimm.is/pflask/internal/rtnl"
)

func dialTo(conn rtnl.Conn) rtnl.DialFunc {
	return func() (rtnl.Conn, error) { return conn, nil }
}

func TestTransientName(t *testing.T) {
	assert.Equal(t, "pflask-4242", TransientName(4242))
	assert.Equal(t, "pflask-1", TransientName(1))
}

func TestMacvlanEndToEnd(t *testing.T) {
	resolver := &MockResolver{}
	resolver.On("Exists", "macvlan").Return(false)
	resolver.On("IndexByName", "eth0").Return(2, nil)
	resolver.On("IndexByName", "pflask-4242").Return(9, nil)

	reg := NewRegistry()
	require.NoError(t, reg.AddSpec("macvlan,eth0,mcv0", resolver.Exists))

	conn, sent := scripted()
	require.NoError(t, ConfigureInterfaces(dialTo(conn), resolver, 4242, reg))
	require.Len(t, *sent, 2)

	create := decodeLink(t, (*sent)[0])
	assert.Equal(t, uint16(baseFlags|unix.NLM_F_CREATE|unix.NLM_F_EXCL), create.Flags)
	assert.Equal(t, uint32(2), findAttr(t, create.Attrs, unix.IFLA_LINK).Uint32(), "master is eth0")
	assert.Equal(t, "pflask-4242", findAttr(t, create.Attrs, unix.IFLA_IFNAME).String())

	move := decodeLink(t, (*sent)[1])
	assert.Equal(t, int32(9), move.Index)
	assert.Equal(t, uint32(4242), findAttr(t, move.Attrs, unix.IFLA_NET_NS_PID).Uint32())
	assert.Equal(t, "mcv0", findAttr(t, move.Attrs, unix.IFLA_IFNAME).String())

	conn.AssertNumberOfCalls(t, "Close", 1)
	resolver.AssertExpectations(t)
	assert.Zero(t, reg.Len())
}

func TestVethAndMove(t *testing.T) {
	resolver := &MockResolver{}
	resolver.On("IndexByName", "eth1").Return(3, nil)
	resolver.On("IndexByName", "pflask-77").Return(11, nil)

	reg := NewRegistry()
	require.NoError(t, reg.Register(KindVeth, "vhost0", "veth0"))
	require.NoError(t, reg.Register(KindMove, "eth1", "wan0"))

	conn, sent := scripted()
	m := metrics.New()
	require.NoError(t, ConfigureInterfaces(dialTo(conn), resolver, 77, reg, WithMetrics(m)))
	require.Len(t, *sent, 3)

	veth := decodeLink(t, (*sent)[0])
	assert.Equal(t, "vhost0", findAttr(t, veth.Attrs, unix.IFLA_IFNAME).String())

	moveVeth := decodeLink(t, (*sent)[1])
	assert.Equal(t, int32(11), moveVeth.Index)
	assert.Equal(t, "veth0", findAttr(t, moveVeth.Attrs, unix.IFLA_IFNAME).String())

	moveEth := decodeLink(t, (*sent)[2])
	assert.Equal(t, int32(3), moveEth.Index)
	assert.Equal(t, "wan0", findAttr(t, moveEth.Attrs, unix.IFLA_IFNAME).String())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InterfacesCreated.WithLabelValues("veth")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InterfacesCreated.WithLabelValues("move")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NetlinkRequests.WithLabelValues(OpMoveAndRename, metrics.ResultOK)))
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	resolver := &MockResolver{}
	resolver.On("IndexByName", "eth0").Return(2, nil)
	resolver.On("IndexByName", "eth9").Return(0, errors.New(errors.KindNotFound, "interface eth9 not found"))

	reg := NewRegistry()
	require.NoError(t, reg.Register(KindMove, "eth0", "wan0"))
	require.NoError(t, reg.Register(KindMove, "eth9", "wan1"))
	require.NoError(t, reg.Register(KindVeth, "vhost0", "veth0"))

	conn, sent := scripted()
	err := ConfigureInterfaces(dialTo(conn), resolver, 4242, reg)
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))

	attrs := errors.GetAttributes(err)
	assert.Equal(t, 1, attrs["request"])
	assert.Equal(t, "wan1", attrs["target"])

	assert.Len(t, *sent, 1, "nothing after the failed request is sent")
	conn.AssertNumberOfCalls(t, "Close", 1)
}

func TestRunMacvlanCreateRejected(t *testing.T) {
	resolver := &MockResolver{}
	resolver.On("IndexByName", "eth0").Return(2, nil)

	reg := NewRegistry()
	require.NoError(t, reg.Register(KindMacvlan, "eth0", "mcv0"))

	conn, sent := scripted(-int32(unix.EEXIST))
	err := NewSetup(conn, resolver).Run(4242, reg)
	assert.Equal(t, errors.KindNetlink, errors.GetKind(err))
	assert.ErrorIs(t, err, unix.EEXIST)
	assert.Len(t, *sent, 1)
	resolver.AssertNotCalled(t, "IndexByName", "pflask-4242")
}

func TestConfigureInterfacesDialFailure(t *testing.T) {
	dialErr := errors.New(errors.KindSyscall, "failed to open netlink socket")
	dial := func() (rtnl.Conn, error) { return nil, dialErr }

	reg := NewRegistry()
	require.NoError(t, reg.Register(KindMove, "eth0", "wan0"))

	err := ConfigureInterfaces(dial, &MockResolver{}, 1, reg)
	assert.ErrorIs(t, err, dialErr)
}

func TestConfigureInterfacesEmptyRegistry(t *testing.T) {
	conn := &MockConn{}
	conn.On("Close").Return(nil)

	require.NoError(t, ConfigureInterfaces(dialTo(conn), &MockResolver{}, 1, NewRegistry()))
	conn.AssertExpectations(t)
	conn.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSetupLoopback(t *testing.T) {
	conn, sent := scripted()
	require.NoError(t, SetupLoopback(dialTo(conn)))
	require.Len(t, *sent, 1)

	l := decodeLink(t, (*sent)[0])
	assert.Equal(t, int32(LoopbackIndex), l.Index)
	assert.Equal(t, uint32(unix.IFF_UP), l.IfFlags&l.Change)
	conn.AssertNumberOfCalls(t, "Close", 1)
}

func TestSetupLoopbackFailureClosesConn(t *testing.T) {
	conn, _ := scripted(-int32(unix.EPERM))
	err := SetupLoopback(dialTo(conn))
	assert.ErrorIs(t, err, unix.EPERM)
	assert.Contains(t, err.Error(), "failed to bring up interface 1")
	conn.AssertNumberOfCalls(t, "Close", 1)
}
