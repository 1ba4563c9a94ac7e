package main

import (
	"flag"
	"os"
	"strings"

	"grimm.is/pflask/cmd"
	"grimm.is/pflask/internal/brand"
	"grimm.is/pflask/internal/errors"
)

var printer = cmd.Printer

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "netif":
		// Configure interfaces for a target namespace
		netifFlags := flag.NewFlagSet("netif", flag.ExitOnError)
		opts := commonFlags(netifFlags)
		netifFlags.IntVar(&opts.Pid, "pid", 0, "Process whose network namespace receives the interfaces")
		netifFlags.IntVar(&opts.Pid, "p", 0, "Target pid (short)")
		netifFlags.BoolVar(&opts.Verify, "verify", false, "Check the target names exist in the namespace afterwards")
		netifFlags.BoolVar(&opts.Loopback, "loopback", false, "Also bring up lo inside the namespace")
		netifFlags.StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file")
		netifFlags.Parse(os.Args[2:])
		opts.Specs = netifFlags.Args()

		exitOnError("netif", cmd.RunNetif(opts))

	case "loopback":
		// Bring up lo, from inside the namespace or for a pid
		loFlags := flag.NewFlagSet("loopback", flag.ExitOnError)
		opts := commonFlags(loFlags)
		loFlags.IntVar(&opts.Pid, "pid", 0, "Enter the network namespace of this pid first")
		loFlags.Parse(os.Args[2:])

		exitOnError("loopback", cmd.RunLoopback(opts))

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		opts := commonFlags(checkFlags)
		checkFlags.IntVar(&opts.Pid, "pid", 0, "Target pid used for transient names in a dry run")
		checkFlags.BoolVar(&opts.DryRun, "dry-run", false, "Encode every request without sending it")
		checkFlags.BoolVar(&opts.DryRun, "n", false, "Dry run (short)")
		checkFlags.Parse(os.Args[2:])
		opts.Specs = checkFlags.Args()

		exitOnError("check", cmd.RunCheck(opts))

	case "version":
		exitOnError("version", cmd.RunVersion(&cmd.Options{}))

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// commonFlags registers the flags every command accepts.
func commonFlags(fs *flag.FlagSet) *cmd.Options {
	opts := &cmd.Options{}
	fs.StringVar(&opts.ConfigFile, "config", "", "Configuration file (HCL or JSON)")
	fs.StringVar(&opts.ConfigFile, "c", "", "Configuration file (short)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.LogJSON, "log-json", false, "Log in JSON")
	return opts
}

func exitOnError(command string, err error) {
	if err == nil {
		return
	}
	title := strings.ToUpper(command[:1]) + command[1:]
	if kind := errors.GetKind(err); kind != errors.KindUnknown {
		printer.Fprintf(os.Stderr, "%s failed (%s): %v\n", title, kind, err)
	} else {
		printer.Fprintf(os.Stderr, "%s failed: %v\n", title, err)
	}
	os.Exit(1)
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  netif     Move or create interfaces for a network namespace
            Options: --pid (-p) <pid>, --verify, --loopback, --metrics-textfile <file>
  loopback  Bring up lo in the current namespace
            Options: --pid <pid>
  check     Print the interface plan as YAML
            Options: --dry-run (-n), --pid <pid>
  version   Print version information

Common options: --config (-c) <file>, --log-level <level>, --log-json

Specs:
  <host-if>,<name>          move host-if into the namespace as name
  macvlan,<master>,<name>   create a macvlan on master and move it
  veth,<host-end>,<name>    create a veth pair and move the peer

Examples:
  %s netif --pid 4242 eth1,wan0 macvlan,eth0,mcv0
  %s check -n --pid 4242 veth,vhost0,veth0
  %s loopback

Configuration is read from $%s_CONFIG or %s/%s when --config is not given.
`,
		brand.Name, brand.Description,
		brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName,
		brand.ConfigEnvPrefix, brand.DefaultConfigDir, brand.ConfigFileName)
}
