package cmd

import (
	"grimm.is/pflask/internal/brand"
)

// RunVersion prints the build identity.
func RunVersion(opts *Options) error {
	Printer.Fprintf(opts.out(), "%s %s (commit %s)\n", brand.Name, brand.Version, brand.GitCommit)
	Printer.Fprintf(opts.out(), "License: %s\n", brand.License)
	return nil
}
