package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Candidates lists the config file locations searched when --config-file is
// absent, highest priority first:
//
//	$XDG_CONFIG_HOME/<product>/<product>.conf
//	$HOME/.config/<product>/<product>.conf
//	<dir>/<product>/<product>.conf for each dir in $XDG_CONFIG_DIRS
//	/etc/<product>/<product>.conf
//
// Unset or empty XDG_CONFIG_HOME and HOME contribute nothing, as do empty
// XDG_CONFIG_DIRS entries; none of them is probed as /<product>/<product>.conf.
// An unset XDG_CONFIG_DIRS does not fall back to /etc/xdg.
func (r *Resolver) Candidates() []string {
	name := r.product + ".conf"
	var candidates []string

	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		candidates = append(candidates, filepath.Join(base, r.product, name))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", r.product, name))
	}
	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for _, dir := range strings.Split(dirs, ":") {
			if dir == "" {
				continue
			}
			candidates = append(candidates, filepath.Join(dir, r.product, name))
		}
	}
	return append(candidates, filepath.Join(r.fallbackRoot, r.product, name))
}

// discover returns the first candidate that is a readable regular file, or "".
func (r *Resolver) discover() string {
	for _, candidate := range r.Candidates() {
		if readable(candidate) {
			return candidate
		}
		r.logger.Debug("config file candidate skipped", zap.String("path", candidate))
	}
	return ""
}

func readable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.R_OK) == nil
}
