package testutil

import (
	"os"
	"testing"
)

// RequireVM skips the test unless PFLASK_VM_TEST is set and the test runs as
// root. Tests that talk to the real kernel (netlink sockets, creating and
// moving interfaces) must only run inside a disposable VM or namespace.
func RequireVM(t *testing.T) {
	t.Helper()
	if os.Getenv("PFLASK_VM_TEST") == "" {
		t.Skip("Skipping test: requires PFLASK_VM_TEST environment")
	}
	if os.Geteuid() != 0 {
		t.Skip("Skipping test: requires root")
	}
}
