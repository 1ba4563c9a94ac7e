//go:build linux

package netif

import (
	"encoding/hex"
	"sync"

	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/rtnl"
)

// DryRunConn records requests instead of sending them and acknowledges each
// one.
type DryRunConn struct {
	mu       sync.Mutex
	Messages []string
	pending  []byte
	closed   bool
}

// NewDryRunConn creates a new dry run connection.
func NewDryRunConn() *DryRunConn {
	return &DryRunConn{
		Messages: make([]string, 0),
	}
}

// Dial returns c as an rtnl.Conn, for use as an rtnl.DialFunc.
func (c *DryRunConn) Dial() (rtnl.Conn, error) {
	return c, nil
}

// Send records the hex dump of m.
func (c *DryRunConn) Send(m *rtnl.Message) error {
	b, err := m.Bytes()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = append(c.Messages, hex.EncodeToString(b))
	c.pending = rtnl.ErrorReply(m, 0)
	return nil
}

// Receive answers the last request with an acknowledgement.
func (c *DryRunConn) Receive(m *rtnl.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return errors.New(errors.KindSyscall, "dry run: receive without a pending request")
	}
	reply := c.pending
	c.pending = nil
	return m.Load(reply)
}

// Close marks the connection closed.
func (c *DryRunConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *DryRunConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// DryRunResolver pretends every name exists and hands out increasing
// indexes, starting after lo. A name keeps its index once assigned.
type DryRunResolver struct {
	mu      sync.Mutex
	indexes map[string]int
	next    int
}

// NewDryRunResolver creates a resolver with no names assigned.
func NewDryRunResolver() *DryRunResolver {
	return &DryRunResolver{
		indexes: make(map[string]int),
		next:    LoopbackIndex + 1,
	}
}

// IndexByName returns the index assigned to name, assigning one if needed.
func (r *DryRunResolver) IndexByName(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.indexes[name]; ok {
		return idx, nil
	}
	idx := r.next
	r.next++
	r.indexes[name] = idx
	return idx, nil
}

// Exists treats every non-empty name other than the spec keywords as a host
// interface.
func (r *DryRunResolver) Exists(name string) bool {
	if name == "macvlan" || name == "veth" {
		return false
	}
	return name != ""
}
