package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// environment mirrors the <PRODUCT>_* variables. Fields stay nil when the
// variable is absent so that an empty value still counts as set.
type environment struct {
	RuntimeDir *string `split_words:"true"`
	StateDir   *string `split_words:"true"`
	CacheDir   *string `split_words:"true"`
	LogsDir    *string `split_words:"true"`
	ConfigDir  *string `split_words:"true"`
}

// readEnvironment builds the environment layer from <prefix>_RUNTIME_DIR and friends.
func readEnvironment(prefix string) (Layer, error) {
	var env environment
	if err := envconfig.Process(prefix, &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	layer := Layer{}
	for key, value := range map[string]*string{
		KeyRuntimeDir: env.RuntimeDir,
		KeyStateDir:   env.StateDir,
		KeyCacheDir:   env.CacheDir,
		KeyLogsDir:    env.LogsDir,
		KeyConfigDir:  env.ConfigDir,
	} {
		if value != nil {
			layer[key] = *value
		}
	}
	return layer, nil
}
