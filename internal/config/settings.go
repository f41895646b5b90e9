package config

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Setting keys shared by the environment and config file layers.
const (
	KeyRuntimeDir = "runtime_dir"
	KeyStateDir   = "state_dir"
	KeyCacheDir   = "cache_dir"
	KeyLogsDir    = "logs_dir"
	KeyConfigDir  = "config_dir"
)

var settingKeys = []string{KeyRuntimeDir, KeyStateDir, KeyCacheDir, KeyLogsDir, KeyConfigDir}

// Keys returns the recognized setting keys in their canonical order.
func Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Settings is the fully merged configuration consumed by the rest of the daemon.
type Settings struct {
	RuntimeDir string
	StateDir   string
	CacheDir   string
	LogsDir    string
	ConfigDir  string
	// ConfigFile is the config file that was parsed, empty when none was.
	ConfigFile string
}

// Layer is a partial set of setting values keyed by setting key. A key that is
// present overrides the value below it, even when the value is empty.
type Layer map[string]string

// Defaults derives the compiled-in settings for product from the install-time
// localstate and sysconf base directories.
func Defaults(product, localStateDir, sysConfDir string) Settings {
	return Settings{
		RuntimeDir: filepath.Join(localStateDir, "run", product),
		StateDir:   filepath.Join(localStateDir, "lib", product),
		CacheDir:   filepath.Join(localStateDir, "cache", product),
		LogsDir:    filepath.Join(localStateDir, "log", product),
		ConfigDir:  filepath.Join(sysConfDir, product),
	}
}

// Value returns the setting stored under key, or "" for an unknown key.
func (s Settings) Value(key string) string {
	switch key {
	case KeyRuntimeDir:
		return s.RuntimeDir
	case KeyStateDir:
		return s.StateDir
	case KeyCacheDir:
		return s.CacheDir
	case KeyLogsDir:
		return s.LogsDir
	case KeyConfigDir:
		return s.ConfigDir
	}
	return ""
}

func (s Settings) with(key, value string) Settings {
	switch key {
	case KeyRuntimeDir:
		s.RuntimeDir = value
	case KeyStateDir:
		s.StateDir = value
	case KeyCacheDir:
		s.CacheDir = value
	case KeyLogsDir:
		s.LogsDir = value
	case KeyConfigDir:
		s.ConfigDir = value
	}
	return s
}

// Merge returns a copy of s with every key present in layer overwritten.
func (s Settings) Merge(layer Layer) Settings {
	for _, key := range settingKeys {
		if value, ok := layer[key]; ok {
			s = s.with(key, value)
		}
	}
	return s
}

// Fields renders every setting as zap fields.
func (s Settings) Fields() []zap.Field {
	fields := make([]zap.Field, 0, len(settingKeys)+1)
	for _, key := range settingKeys {
		fields = append(fields, zap.String(key, s.Value(key)))
	}
	if s.ConfigFile != "" {
		fields = append(fields, zap.String("config_file", s.ConfigFile))
	}
	return fields
}

// Fields renders the keys present in the layer as zap fields, in canonical order.
func (l Layer) Fields() []zap.Field {
	fields := make([]zap.Field, 0, len(l))
	for _, key := range settingKeys {
		if value, ok := l[key]; ok {
			fields = append(fields, zap.String(key, value))
		}
	}
	return fields
}
