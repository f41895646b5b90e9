package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// fileFormat is the syntax of a config file, chosen by its extension.
type fileFormat string

const (
	formatKeyValue fileFormat = "key=value"
	formatYAML     fileFormat = "yaml"
	formatTOML     fileFormat = "toml"
)

func formatOf(path string) fileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	default:
		return formatKeyValue
	}
}

// literalDollar stands in for '$' while a key=value file is parsed.
const literalDollar = "\uE000"

// fileContents is the config file layer plus the keys it carried that are not settings.
type fileContents struct {
	layer   Layer
	unknown []string
}

// decodeConfigFile reads the settings held in r, interpreting it as format.
func decodeConfigFile(r io.Reader, format fileFormat) (fileContents, error) {
	values := make(map[string]any)

	switch format {
	case formatYAML:
		if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
			return fileContents{}, fmt.Errorf("decode YAML: %w", err)
		}
	case formatTOML:
		if err := toml.NewDecoder(r).Decode(&values); err != nil {
			return fileContents{}, fmt.Errorf("decode TOML: %w", err)
		}
	default:
		raw, err := io.ReadAll(r)
		if err != nil {
			return fileContents{}, fmt.Errorf("read key=value: %w", err)
		}
		// Values are literal: hide '$' from gotenv's variable expansion.
		env, err := gotenv.StrictParse(strings.NewReader(strings.ReplaceAll(string(raw), "$", literalDollar)))
		if err != nil {
			return fileContents{}, fmt.Errorf("decode key=value: %w", err)
		}
		for key, value := range env {
			values[key] = strings.ReplaceAll(value, literalDollar, "$")
		}
	}

	out := fileContents{layer: Layer{}}
	for key, value := range values {
		if !slices.Contains(settingKeys, key) {
			out.unknown = append(out.unknown, key)
			continue
		}
		str, ok := value.(string)
		if !ok {
			return fileContents{}, fmt.Errorf("key %q: expected a string, got %T", key, value)
		}
		out.layer[key] = str
	}
	sort.Strings(out.unknown)
	return out, nil
}
