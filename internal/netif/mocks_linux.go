//go:build linux

package netif

import (
	"github.com/stretchr/testify/mock"

	"grimm.is/pflask/internal/rtnl"
)

// MockConn is a mock implementation of rtnl.Conn.
type MockConn struct {
	mock.Mock
}

func (m *MockConn) Send(msg *rtnl.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockConn) Receive(msg *rtnl.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockConn) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockResolver is a mock implementation of Resolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) IndexByName(name string) (int, error) {
	args := m.Called(name)
	return args.Int(0), args.Error(1)
}

func (m *MockResolver) Exists(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}
