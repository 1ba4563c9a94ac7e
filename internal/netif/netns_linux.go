//go:build linux

package netif

import (
	"runtime"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"

	"grimm.is/pflask/internal/errors"
	"grimm.is/pflask/internal/rtnl"
)

// Verify checks that every request's target name exists inside the network
// namespace of pid.
func Verify(pid int, reqs []Request) error {
	ns, err := netns.GetFromPid(pid)
	if err != nil {
		return errors.Wrapf(err, errors.KindSyscall, "failed to open network namespace of pid %d", pid)
	}
	defer ns.Close()

	h, err := netlink.NewHandleAt(ns)
	if err != nil {
		return errors.Wrapf(err, errors.KindSyscall, "failed to open netlink handle in namespace of pid %d", pid)
	}
	defer h.Close()

	for _, req := range reqs {
		if _, err := h.LinkByName(req.Target); err != nil {
			var notFound netlink.LinkNotFoundError
			if errors.As(err, &notFound) {
				return errors.Attr(errors.Wrapf(err, errors.KindNotFound, "interface %s missing from namespace of pid %d", req.Target, pid), "interface", req.Target)
			}
			return errors.Wrapf(err, errors.KindSyscall, "failed to look up %s in namespace of pid %d", req.Target, pid)
		}
	}
	return nil
}

// SetupLoopbackIn brings up lo inside the network namespace of pid. The
// calling goroutine's thread enters the namespace for the duration of the
// call so the netlink socket is opened there.
func SetupLoopbackIn(pid int, dial rtnl.DialFunc, opts ...Option) error {
	runtime.LockOSThread()

	orig, err := netns.Get()
	if err != nil {
		runtime.UnlockOSThread()
		return errors.Wrap(err, errors.KindSyscall, "failed to get current network namespace")
	}
	defer orig.Close()

	target, err := netns.GetFromPid(pid)
	if err != nil {
		runtime.UnlockOSThread()
		return errors.Wrapf(err, errors.KindSyscall, "failed to open network namespace of pid %d", pid)
	}
	defer target.Close()

	if err := netns.Set(target); err != nil {
		runtime.UnlockOSThread()
		return errors.Wrapf(err, errors.KindSyscall, "failed to enter network namespace of pid %d", pid)
	}
	setupErr := SetupLoopback(dial, opts...)

	if err := netns.Set(orig); err != nil {
		// Leave the thread locked: the runtime terminates a thread still
		// locked when its goroutine exits.
		return errors.Wrap(err, errors.KindSyscall, "failed to return to original network namespace")
	}
	runtime.UnlockOSThread()
	return setupErr
}
