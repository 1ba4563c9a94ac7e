//go:build linux

package netif

import (
	"github.com/vishvananda/netlink"

	"grimm.is/pflask/internal/errors"
)

// Resolver maps host interface names to kernel indexes.
type Resolver interface {
	IndexByName(name string) (int, error)
	Exists(name string) bool
}

// NetlinkResolver resolves names in the current network namespace.
type NetlinkResolver struct{}

// IndexByName returns the index of the named interface. A missing interface
// is a KindNotFound error.
func (NetlinkResolver) IndexByName(name string) (int, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return 0, errors.Attr(errors.Wrapf(err, errors.KindNotFound, "interface %s not found", name), "interface", name)
		}
		return 0, errors.Wrapf(err, errors.KindSyscall, "failed to look up interface %s", name)
	}
	return link.Attrs().Index, nil
}

// Exists reports whether the named interface exists.
func (r NetlinkResolver) Exists(name string) bool {
	_, err := r.IndexByName(name)
	return err == nil
}
