// Package brand provides centralized branding constants for the compiler.
// This makes it easy to fork or white-label the tool by changing brand.json.
//
// The brand identity is loaded from brand.json at compile time via go:embed.
// This allows other tools (scripts, packaging) to read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name                string `json:"name"`
	LowerName           string `json:"lowerName"`
	Vendor              string `json:"vendor"`
	Description         string `json:"description"`
	ConfigEnvPrefix     string `json:"configEnvPrefix"`
	BinaryName          string `json:"binaryName"`
	ConfigFileName      string `json:"configFileName"`
	DefaultConfigDir    string `json:"defaultConfigDir"`
	DefaultUnitDir      string `json:"defaultUnitDir"`
	DefaultTunnelBinary string `json:"defaultTunnelBinary"`
	DefaultAcmeDir      string `json:"defaultAcmeDir"`
	UnitPrefix          string `json:"unitPrefix"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Vendor = b.Vendor
	Description = b.Description
	ConfigEnvPrefix = b.ConfigEnvPrefix
	BinaryName = b.BinaryName
	ConfigFileName = b.ConfigFileName
	DefaultConfigDir = b.DefaultConfigDir
	DefaultUnitDir = b.DefaultUnitDir
	DefaultTunnelBinary = b.DefaultTunnelBinary
	DefaultAcmeDir = b.DefaultAcmeDir
	UnitPrefix = b.UnitPrefix
}

// Exported variables for convenience
var (
	Name                string
	LowerName           string
	Vendor              string
	Description         string
	ConfigEnvPrefix     string
	BinaryName          string
	ConfigFileName      string
	DefaultConfigDir    string
	DefaultUnitDir      string
	DefaultTunnelBinary string
	DefaultAcmeDir      string
	UnitPrefix          string

	// Version is set at build time via -ldflags
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// GetConfigDir returns the config directory, checking env vars first.
// Priority: WSFORGE_CONFIG_DIR > WSFORGE_PREFIX/config > DefaultConfigDir
func GetConfigDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "config")
	}
	return DefaultConfigDir
}

// GetUnitDir returns the directory unit files are written to.
// Priority: WSFORGE_UNIT_DIR > WSFORGE_PREFIX/units > DefaultUnitDir
func GetUnitDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_UNIT_DIR"); dir != "" {
		return dir
	}
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return filepath.Join(prefix, "units")
	}
	return DefaultUnitDir
}

// DefaultConfigFile returns the full path of the default config file.
func DefaultConfigFile() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}
