// Package config loads the pflask run configuration.
//
// # Overview
//
// Configuration is written in HCL (or its JSON form) and lists the network
// interfaces to hand to the target namespace, plus logging and metrics
// options. Command-line flags override file values.
//
// # Interfaces
//
// Interfaces can be given as spec strings, exactly as on the command line,
// or as interface blocks labelled with the name the interface must have
// inside the namespace. Spec strings are processed first, then blocks, each
// in file order.
//
// Example:
//
//	netifs = ["eth1,wan0", "veth,${env.HOST_VETH},veth0"]
//
//	interface "mcv0" {
//	    kind   = "macvlan"
//	    source = "eth0"
//	}
//
//	verify           = true
//	log_level        = "debug"
//	metrics_textfile = "/var/lib/node_exporter/pflask.prom"
//
// The env object exposes the process environment to expressions.
package config
