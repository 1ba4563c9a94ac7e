//go:build linux

package netif

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink/nl"
	"golang.org/x/sys/unix"

	"grimm.is/pflask/internal/rtnl"
)

var native = nl.NativeEndian()

// sentLink is a decoded RTM_NEWLINK request.
type sentLink struct {
	Type    uint16
	Flags   uint16
	Index   int32
	IfFlags uint32
	Change  uint32
	Attrs   []rtnl.Attr
}

func decodeLink(t *testing.T, b []byte) sentLink {
	t.Helper()
	require.GreaterOrEqual(t, len(b), unix.NLMSG_HDRLEN+rtnl.SizeofIfInfomsg)
	require.Equal(t, uint32(len(b)), native.Uint32(b), "header length matches bytes sent")

	ifi := b[unix.NLMSG_HDRLEN:]
	attrs, err := rtnl.ParseAttrs(b[unix.NLMSG_HDRLEN+rtnl.SizeofIfInfomsg:])
	require.NoError(t, err)

	return sentLink{
		Type:    native.Uint16(b[4:]),
		Flags:   native.Uint16(b[6:]),
		Index:   int32(native.Uint32(ifi[4:])),
		IfFlags: native.Uint32(ifi[8:]),
		Change:  native.Uint32(ifi[12:]),
		Attrs:   attrs,
	}
}

func findAttr(t *testing.T, attrs []rtnl.Attr, typ uint16) rtnl.Attr {
	t.Helper()
	for _, a := range attrs {
		if a.Type == typ {
			return a
		}
	}
	require.Failf(t, "attribute missing", "type %d", typ)
	return rtnl.Attr{}
}

// scripted builds a MockConn that records every request and answers the
// i-th one with codes[i], or an ACK once codes run out.
func scripted(codes ...int32) (*MockConn, *[][]byte) {
	conn := &MockConn{}
	sent := &[][]byte{}

	conn.On("Send", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		b, err := args.Get(0).(*rtnl.Message).Bytes()
		if err == nil {
			*sent = append(*sent, append([]byte(nil), b...))
		}
	})

	calls := 0
	conn.On("Receive", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		msg := args.Get(0).(*rtnl.Message)
		var code int32
		if calls < len(codes) {
			code = codes[calls]
		}
		calls++
		_ = msg.Load(rtnl.ErrorReply(msg, code))
	})

	conn.On("Close").Return(nil)
	return conn, sent
}
