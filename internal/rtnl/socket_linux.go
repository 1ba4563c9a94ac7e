//go:build linux

package rtnl

import (
	"os"

	"golang.org/x/sys/unix"

	"grimm.is/pflask/internal/errors"
)

// Conn carries one request and one reply at a time.
type Conn interface {
	Send(m *Message) error
	Receive(m *Message) error
	Close() error
}

// DialFunc opens a Conn.
type DialFunc func() (Conn, error)

// DefaultDial opens a routing netlink socket.
func DefaultDial() (Conn, error) {
	return Dial()
}

// Socket is a blocking NETLINK_ROUTE socket with no multicast groups.
type Socket struct {
	fd int
}

// Dial opens and binds a routing netlink socket. The kernel assigns the
// port id on bind.
func Dial() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_ROUTE)
	if err != nil {
		return nil, errors.Wrap(os.NewSyscallError("socket", err), errors.KindSyscall, "failed to open netlink socket")
	}

	sa := &unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: 0,
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(os.NewSyscallError("bind", err), errors.KindSyscall, "failed to bind netlink socket")
	}

	return &Socket{fd: fd}, nil
}

// PortID returns the port id the kernel assigned on bind.
func (s *Socket) PortID() (uint32, error) {
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		return 0, errors.Wrap(os.NewSyscallError("getsockname", err), errors.KindSyscall, "failed to read netlink address")
	}
	nsa, ok := sa.(*unix.SockaddrNetlink)
	if !ok {
		return 0, errors.New(errors.KindSyscall, "netlink socket bound to a non-netlink address")
	}
	return nsa.Pid, nil
}

// Send writes exactly m.Len() bytes to the kernel in one sendmsg call.
func (s *Socket) Send(m *Message) error {
	b, err := m.Bytes()
	if err != nil {
		return err
	}
	kernel := &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Pid: 0}
	if err := unix.Sendmsg(s.fd, b, nil, kernel, 0); err != nil {
		return errors.Wrap(os.NewSyscallError("sendmsg", err), errors.KindSyscall, "failed to send netlink request")
	}
	return nil
}

// Receive blocks until the kernel answers and stores the reply in m,
// replacing its previous contents. There is no timeout.
func (s *Socket) Receive(m *Message) error {
	n, _, flags, _, err := unix.Recvmsg(s.fd, m.buf, nil, 0)
	if err != nil {
		return errors.Wrap(os.NewSyscallError("recvmsg", err), errors.KindSyscall, "failed to receive netlink reply")
	}
	if flags&unix.MSG_TRUNC != 0 {
		return errors.Errorf(errors.KindSyscall, "netlink reply truncated to %d bytes", n)
	}
	m.reset(n)
	return nil
}

// Close releases the socket.
func (s *Socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	if err != nil {
		return errors.Wrap(os.NewSyscallError("close", err), errors.KindSyscall, "failed to close netlink socket")
	}
	return nil
}
