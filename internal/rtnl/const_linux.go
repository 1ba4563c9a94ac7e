//go:build linux

package rtnl

import (
	"github.com/vishvananda/netlink/nl"
	"golang.org/x/sys/unix"
)

// MessageCapacity is the size of every message buffer. Link requests carry a
// handful of attributes with names of at most 15 bytes, so this is far more
// than any request needs and leaves room for the kernel to echo the request
// back inside an error reply.
const MessageCapacity = 4096

// Sequence is the sequence number stamped on every request.
const Sequence = 1

const (
	headerLen     = unix.NLMSG_HDRLEN
	attrHeaderLen = unix.SizeofRtAttr
	errorLen      = unix.SizeofNlMsgerr
	alignTo       = unix.NLMSG_ALIGNTO

	// SizeofIfInfomsg is the size of the interface-info header.
	SizeofIfInfomsg = unix.SizeofIfInfomsg
)

// Message types.
const (
	TypeNewLink = unix.RTM_NEWLINK
	TypeError   = unix.NLMSG_ERROR
)

// Header flags.
const (
	FlagRequest   = unix.NLM_F_REQUEST
	FlagAck       = unix.NLM_F_ACK
	FlagCreate    = unix.NLM_F_CREATE
	FlagExclusive = unix.NLM_F_EXCL
)

// Link attribute identifiers.
const (
	AttrIfName   = unix.IFLA_IFNAME
	AttrLink     = unix.IFLA_LINK
	AttrNetNsPid = unix.IFLA_NET_NS_PID
	AttrLinkInfo = unix.IFLA_LINKINFO
	AttrInfoKind = nl.IFLA_INFO_KIND
	AttrInfoData = nl.IFLA_INFO_DATA
	AttrVethPeer = nl.VETH_INFO_PEER
)

var native = nl.NativeEndian()

// align rounds n up to the netlink alignment boundary.
func align(n int) int {
	return (n + alignTo - 1) &^ (alignTo - 1)
}
