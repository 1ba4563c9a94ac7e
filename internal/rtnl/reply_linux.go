//go:build linux

package rtnl

import (
	"golang.org/x/sys/unix"

	"grimm.is/pflask/internal/errors"
)

// Reply is the decoded header of a kernel answer.
type Reply struct {
	Len  uint32
	Type uint16
	Seq  uint32
	// Code is the embedded error code of an error reply: 0 for an
	// acknowledgement, a negated errno otherwise.
	Code int32
}

// ParseReply decodes the message most recently received into m.
func (m *Message) ParseReply() (Reply, error) {
	if m.n < headerLen {
		return Reply{}, errors.Errorf(errors.KindSyscall, "short netlink reply: %d bytes", m.n)
	}
	r := Reply{
		Len:  native.Uint32(m.buf[0:]),
		Type: native.Uint16(m.buf[4:]),
		Seq:  native.Uint32(m.buf[8:]),
	}
	if r.Type == TypeError {
		if m.n < headerLen+4 {
			return Reply{}, errors.Errorf(errors.KindSyscall, "short netlink error reply: %d bytes", m.n)
		}
		r.Code = int32(native.Uint32(m.buf[headerLen:]))
	}
	return r, nil
}

// IsError reports whether the kernel rejected the request.
func (r Reply) IsError() bool {
	return r.Type == TypeError && r.Code < 0
}

// Err returns a KindNetlink error wrapping the errno carried by an error
// reply. Acknowledgements and non-error replies yield nil.
func (r Reply) Err() error {
	if !r.IsError() {
		return nil
	}
	return errors.Wrap(unix.Errno(-r.Code), errors.KindNetlink, "error sending netlink request")
}

// RoundTrip sends m, then receives the reply into the same buffer and
// decodes it. It does not interpret the reply; use Reply.Err for that.
func RoundTrip(c Conn, m *Message) (Reply, error) {
	if err := c.Send(m); err != nil {
		return Reply{}, err
	}
	if err := c.Receive(m); err != nil {
		return Reply{}, err
	}
	return m.ParseReply()
}

// ErrorReply builds the error reply the kernel sends for req: the code
// followed by a copy of the request header. Code 0 is an acknowledgement.
func ErrorReply(req *Message, code int32) []byte {
	b := make([]byte, headerLen+errorLen)
	native.PutUint32(b[0:], uint32(len(b)))
	native.PutUint16(b[4:], TypeError)
	native.PutUint32(b[8:], req.Seq())
	native.PutUint32(b[headerLen:], uint32(code))
	copy(b[headerLen+4:], req.buf[:headerLen])
	return b
}

// Load replaces the contents of m with a received message. It is what
// Receive does with the bytes read from the socket, for Conns that do not
// talk to a kernel.
func (m *Message) Load(b []byte) error {
	if len(b) > len(m.buf) {
		return errors.Errorf(errors.KindSyscall, "netlink reply truncated to %d bytes", len(m.buf))
	}
	n := copy(m.buf, b)
	m.reset(n)
	return nil
}
