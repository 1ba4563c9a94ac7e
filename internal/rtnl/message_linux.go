//go:build linux

package rtnl

import (
	"github.com/vishvananda/netlink/nl"

	"grimm.is/pflask/internal/errors"
)

var (
	// ErrCapacity is recorded when an append would overflow the buffer.
	ErrCapacity = errors.New(errors.KindInternal, "netlink message capacity exceeded")
	// ErrUnbalanced is recorded when nested spans are closed out of order or
	// a message is sent with a span still open.
	ErrUnbalanced = errors.New(errors.KindInternal, "unbalanced nested netlink attributes")
)

// Message is a single netlink message backed by a fixed-capacity buffer.
//
// Builder misuse (overflowing the buffer, closing spans out of order) is a
// programming error. The first violation is recorded, every later mutation
// is ignored, and the message can no longer be sent.
type Message struct {
	buf  []byte
	n    int
	nest []int
	err  error
}

// NewMessage creates a request of the given type. REQUEST and ACK are always
// set; callers add CREATE and EXCLUSIVE for creation requests. The payload is
// the fixed-size header following the netlink header.
func NewMessage(msgType, flags uint16, payload []byte) *Message {
	m := &Message{
		buf: make([]byte, MessageCapacity),
		n:   headerLen,
	}
	native.PutUint16(m.buf[4:], msgType)
	native.PutUint16(m.buf[6:], flags|FlagRequest|FlagAck)
	native.PutUint32(m.buf[8:], Sequence)
	native.PutUint32(m.buf[12:], 0)
	m.AddRaw(payload)
	m.sync()
	return m
}

// NewLinkMessage creates an RTM_NEWLINK request carrying ifi.
func NewLinkMessage(flags uint16, ifi *nl.IfInfomsg) *Message {
	return NewMessage(TypeNewLink, flags, ifi.Serialize())
}

// Len returns the number of bytes in use. It always equals the header's
// length field and is a multiple of 4.
func (m *Message) Len() int { return m.n }

// Type returns the message type from the header.
func (m *Message) Type() uint16 { return native.Uint16(m.buf[4:]) }

// Flags returns the header flags.
func (m *Message) Flags() uint16 { return native.Uint16(m.buf[6:]) }

// Seq returns the header sequence number.
func (m *Message) Seq() uint32 { return native.Uint32(m.buf[8:]) }

// Err returns the first builder violation, if any.
func (m *Message) Err() error { return m.err }

// Depth returns the number of nested spans currently open.
func (m *Message) Depth() int { return len(m.nest) }

// Bytes returns the wire form of the message. It fails if the builder was
// misused or a nested span is still open.
func (m *Message) Bytes() ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.nest) != 0 {
		return nil, errors.Wrapf(ErrUnbalanced, errors.KindInternal, "%d nested attribute(s) left open", len(m.nest))
	}
	return m.buf[:m.n], nil
}

// Payload returns the bytes following the netlink header.
func (m *Message) Payload() []byte {
	return m.buf[headerLen:m.n]
}

// AddAttr appends a TLV attribute. The payload is zero-padded to the
// alignment boundary; the recorded length excludes the padding.
func (m *Message) AddAttr(attrType uint16, data []byte) {
	if m.err != nil {
		return
	}
	l := attrHeaderLen + len(data)
	if !m.reserve(align(l)) {
		return
	}
	native.PutUint16(m.buf[m.n:], uint16(l))
	native.PutUint16(m.buf[m.n+2:], attrType)
	copy(m.buf[m.n+attrHeaderLen:], data)
	clear(m.buf[m.n+l : m.n+align(l)])
	m.n += align(l)
	m.sync()
}

// AddString appends a NUL-terminated string attribute.
func (m *Message) AddString(attrType uint16, s string) {
	b := make([]byte, len(s)+1)
	copy(b, s)
	m.AddAttr(attrType, b)
}

// AddUint32 appends a 32-bit attribute in host byte order.
func (m *Message) AddUint32(attrType uint16, v uint32) {
	b := make([]byte, 4)
	native.PutUint32(b, v)
	m.AddAttr(attrType, b)
}

// AddInt32 appends a signed 32-bit attribute in host byte order.
func (m *Message) AddInt32(attrType uint16, v int32) {
	m.AddUint32(attrType, uint32(v))
}

// AddRaw appends data without an attribute header, padded to the alignment
// boundary. Inside an open span the bytes count towards the span length.
func (m *Message) AddRaw(data []byte) {
	if m.err != nil || len(data) == 0 {
		return
	}
	if !m.reserve(align(len(data))) {
		return
	}
	copy(m.buf[m.n:], data)
	clear(m.buf[m.n+len(data) : m.n+align(len(data))])
	m.n += align(len(data))
	m.sync()
}

// StartNested opens a nested attribute and returns its offset, which must be
// passed to EndNested once all children are appended.
func (m *Message) StartNested(attrType uint16) int {
	start := m.n
	m.AddAttr(attrType, nil)
	if m.err != nil {
		return -1
	}
	m.nest = append(m.nest, start)
	return start
}

// EndNested closes the innermost open span. Its length becomes the distance
// from its header to the current tail, covering every child.
func (m *Message) EndNested(start int) {
	if m.err != nil {
		return
	}
	top := len(m.nest) - 1
	if top < 0 || m.nest[top] != start {
		m.fail(ErrUnbalanced)
		return
	}
	m.nest = m.nest[:top]
	native.PutUint16(m.buf[start:], uint16(m.n-start))
}

func (m *Message) reserve(n int) bool {
	if m.n+n > len(m.buf) {
		m.fail(ErrCapacity)
		return false
	}
	return true
}

func (m *Message) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

func (m *Message) sync() {
	native.PutUint32(m.buf[0:], uint32(m.n))
}

// reset marks the first n bytes of the buffer as a received message.
func (m *Message) reset(n int) {
	m.n = n
	m.nest = m.nest[:0]
	m.err = nil
}
