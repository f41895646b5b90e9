// Package buildinfo carries the values fixed at build time: the product name,
// its version and the install-time base directories. Each can be overridden
// with -ldflags "-X github.com/eugenenazirov/stubd/internal/buildinfo.Name=...".
package buildinfo

import "strings"

var (
	// Name identifies the program. It derives default paths, the config file
	// name and the environment variable prefix.
	Name = "stubd"
	// Version is the program version reported by --version.
	Version = "0.1.0"
	// LocalStateDir is the install-time localstate base (CMAKE-style LOCALSTATEDIR).
	LocalStateDir = "/var"
	// SysConfDir is the install-time system configuration base.
	SysConfDir = "/etc"
)

// EnvPrefix returns the upper-cased product name used to namespace environment variables.
func EnvPrefix() string {
	return strings.ToUpper(Name)
}
