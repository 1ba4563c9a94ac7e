// Package validation checks user-supplied identifiers before they reach the
// kernel.
package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxInterfaceNameLen is IFNAMSIZ less the terminating NUL.
const MaxInterfaceNameLen = 15

// ValidateInterfaceName applies the kernel's rules for link names: non-empty,
// at most 15 bytes, not "." or "..", and free of '/', ':' and whitespace.
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("interface name cannot be empty")
	}

	if len(name) > MaxInterfaceNameLen {
		return fmt.Errorf("interface name too long (max %d characters): %s", MaxInterfaceNameLen, name)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid interface name: %s", name)
	}

	if strings.ContainsAny(name, "/:") {
		return fmt.Errorf("interface name contains '/' or ':': %s", name)
	}

	if strings.IndexFunc(name, unicode.IsSpace) >= 0 || strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("interface name contains whitespace or NUL: %q", name)
	}

	return nil
}
