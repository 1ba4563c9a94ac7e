// Package brand provides centralized naming constants for pflask.
//
// The identity is loaded from brand.json at compile time via go:embed.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Description      string `json:"description"`
	ConfigEnvPrefix  string `json:"configEnvPrefix"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	ConfigFileName   string `json:"configFileName"`
	BinaryName       string `json:"binaryName"`
	TransientPrefix  string `json:"transientPrefix"`
	License          string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Description = b.Description
	ConfigEnvPrefix = b.ConfigEnvPrefix
	DefaultConfigDir = b.DefaultConfigDir
	ConfigFileName = b.ConfigFileName
	BinaryName = b.BinaryName
	TransientPrefix = b.TransientPrefix
	License = b.License
}

var (
	Name             string
	LowerName        string
	Description      string
	ConfigEnvPrefix  string
	DefaultConfigDir string
	ConfigFileName   string
	BinaryName       string
	// TransientPrefix names interfaces created on the host before they are
	// moved into the target namespace.
	TransientPrefix string
	License         string

	// Version is set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// TransientName returns the host-side name of an interface created for the
// namespace of pid, e.g. "pflask-4242".
func TransientName(pid int) string {
	return TransientPrefix + strconv.Itoa(pid)
}

// GetConfigDir returns the config directory, checking env vars first.
// Priority: PFLASK_CONFIG_DIR > PFLASK_PREFIX/config > DefaultConfigDir
func GetConfigDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "config")
	}
	return DefaultConfigDir
}

// GetConfigPath returns the configuration file to load when none is given
// on the command line. PFLASK_CONFIG takes precedence; otherwise the file
// in GetConfigDir is used if it exists. An empty result means no file.
func GetConfigPath() string {
	if path := os.Getenv(ConfigEnvPrefix + "_CONFIG"); path != "" {
		return path
	}
	path := filepath.Join(GetConfigDir(), ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
