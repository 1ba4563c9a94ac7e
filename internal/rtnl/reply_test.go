//go:build linux

package rtnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/testutil"
)

// scriptedConn answers every request with a fixed reply.
type scriptedConn struct {
	reply   []byte
	sent    [][]byte
	sendErr error
}

func (c *scriptedConn) Send(m *Message) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	b, err := m.Bytes()
	if err != nil {
		return err
	}
	c.sent = append(c.sent, append([]byte(nil), b...))
	return nil
}

func (c *scriptedConn) Receive(m *Message) error {
	n := copy(m.buf, c.reply)
	m.reset(n)
	return nil
}

func (c *scriptedConn) Close() error { return nil }

func errorReply(code int32) []byte {
	b := make([]byte, headerLen+errorLen)
	native.PutUint32(b[0:], uint32(len(b)))
	native.PutUint16(b[4:], unix.NLMSG_ERROR)
	native.PutUint32(b[8:], Sequence)
	native.PutUint32(b[headerLen:], uint32(code))
	return b
}

func TestReplyErrorCode(t *testing.T) {
	conn := &scriptedConn{reply: errorReply(-int32(unix.EEXIST))}
	m := newLink(FlagCreate | FlagExclusive)

	reply, err := RoundTrip(conn, m)
	require.NoError(t, err)
	assert.True(t, reply.IsError())
	assert.Equal(t, -int32(unix.EEXIST), reply.Code)
	assert.Equal(t, uint32(1), reply.Seq)

	err = reply.Err()
	require.Error(t, err)
	assert.Equal(t, errors.KindNetlink, errors.GetKind(err))
	assert.ErrorIs(t, err, unix.EEXIST)
	assert.Contains(t, err.Error(), "file exists")
}

func TestReplyAck(t *testing.T) {
	conn := &scriptedConn{reply: errorReply(0)}
	reply, err := RoundTrip(conn, newLink(0))
	require.NoError(t, err)
	assert.False(t, reply.IsError())
	assert.NoError(t, reply.Err())
}

func TestReplyNonErrorType(t *testing.T) {
	b := errorReply(-1)
	native.PutUint16(b[4:], unix.RTM_NEWLINK)
	conn := &scriptedConn{reply: b}

	reply, err := RoundTrip(conn, newLink(0))
	require.NoError(t, err)
	assert.Equal(t, uint16(unix.RTM_NEWLINK), reply.Type)
	assert.Zero(t, reply.Code)
	assert.NoError(t, reply.Err())
}

func TestReplyTooShort(t *testing.T) {
	_, err := RoundTrip(&scriptedConn{reply: []byte{1, 2, 3}}, newLink(0))
	require.Error(t, err)
	assert.Equal(t, errors.KindSyscall, errors.GetKind(err))

	b := errorReply(0)[:headerLen]
	_, err = RoundTrip(&scriptedConn{reply: b}, newLink(0))
	assert.Error(t, err)
}

func TestRoundTripReusesBuffer(t *testing.T) {
	conn := &scriptedConn{reply: errorReply(0)}
	m := newLink(0)
	m.AddString(AttrIfName, "eth0")
	sentLen := m.Len()

	_, err := RoundTrip(conn, m)
	require.NoError(t, err)
	require.Len(t, conn.sent, 1)
	assert.Len(t, conn.sent[0], sentLen)
	assert.Equal(t, headerLen+errorLen, m.Len())
	assert.Equal(t, uint16(unix.NLMSG_ERROR), m.Type())
}

func TestRoundTripSendFailure(t *testing.T) {
	conn := &scriptedConn{sendErr: errors.New(errors.KindSyscall, "sendmsg: broken")}
	_, err := RoundTrip(conn, newLink(0))
	assert.Equal(t, errors.KindSyscall, errors.GetKind(err))
}

func TestRoundTripRefusesUnbalancedMessage(t *testing.T) {
	m := newLink(0)
	m.StartNested(AttrLinkInfo)
	_, err := RoundTrip(&scriptedConn{reply: errorReply(0)}, m)
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestSocketDial(t *testing.T) {
	testutil.RequireVM(t)

	s, err := Dial()
	require.NoError(t, err)

	pid, err := s.PortID()
	require.NoError(t, err)
	assert.NotZero(t, pid)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close(), "second close is a no-op")
}

func TestErrorReplyEchoesRequestHeader(t *testing.T) {
	req := newLink(FlagCreate | FlagExclusive)
	req.AddString(AttrIfName, "pflask-4242")

	b := ErrorReply(req, -int32(unix.ENODEV))
	require.Len(t, b, headerLen+errorLen)
	assert.Equal(t, uint32(len(b)), native.Uint32(b))
	assert.Equal(t, req.Flags(), native.Uint16(b[headerLen+4+6:]))
	assert.Equal(t, uint32(req.Len()), native.Uint32(b[headerLen+4:]))

	require.NoError(t, req.Load(b))
	reply, err := req.ParseReply()
	require.NoError(t, err)
	assert.ErrorIs(t, reply.Err(), unix.ENODEV)
}

func TestLoadRejectsOversizedReply(t *testing.T) {
	m := newLink(0)
	err := m.Load(make([]byte, MessageCapacity+1))
	assert.Equal(t, errors.KindSyscall, errors.GetKind(err))
}
