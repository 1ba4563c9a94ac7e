// Package netif configures the network interfaces of a freshly created
// network namespace.
//
// Requests are collected in a Registry, in the order the user gave them,
// and applied by a Setup against a single routing netlink connection:
//
//	reg := netif.NewRegistry()
//	reg.AddSpec("eth1,wan0", resolver.Exists)       // move eth1, rename to wan0
//	reg.AddSpec("macvlan,eth0,mcv0", resolver.Exists) // macvlan on eth0
//	reg.AddSpec("veth,vhost0,veth0", resolver.Exists) // veth pair, host end vhost0
//
//	err := netif.ConfigureInterfaces(rtnl.DefaultDial, resolver, pid, reg)
//
// Created interfaces are named "pflask-<pid>" on the host until they are
// moved into the namespace and renamed. The first failure aborts the pass;
// nothing already done is undone.
//
// SetupLoopback brings up lo and must run from inside the new namespace.
package netif
