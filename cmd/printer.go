package cmd

import (
	"grimm.is/pflask/internal/i18n"
)

// Printer writes user-facing output in the caller's locale.
var Printer = i18n.NewCLIPrinter()
