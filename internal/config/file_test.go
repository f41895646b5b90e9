package config

import (
	"strings"
	"testing"
)

func TestFormatOf(t *testing.T) {
	testCases := map[string]fileFormat{
		"stubd.conf": formatKeyValue,
		"stubd":      formatKeyValue,
		"stubd.yaml": formatYAML,
		"stubd.YML":  formatYAML,
		"stubd.toml": formatTOML,
	}
	for path, want := range testCases {
		if got := formatOf(path); got != want {
			t.Fatalf("%s: expected %s, got %s", path, want, got)
		}
	}
}

func TestDecodeConfigFile(t *testing.T) {
	testCases := []struct {
		name    string
		format  fileFormat
		content string
	}{
		{"key=value", formatKeyValue, "# settings\nruntime_dir=/run/x\nstate_dir = \"/state/x\"\n\nlisten=:80\n"},
		{"yaml", formatYAML, "runtime_dir: /run/x\nstate_dir: \"/state/x\"\nlisten: \":80\"\n"},
		{"toml", formatTOML, "runtime_dir = \"/run/x\"\nstate_dir = '/state/x'\nlisten = \":80\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeConfigFile(strings.NewReader(tc.content), tc.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.layer[KeyRuntimeDir] != "/run/x" || got.layer[KeyStateDir] != "/state/x" {
				t.Fatalf("unexpected layer: %v", got.layer)
			}
			if len(got.layer) != 2 {
				t.Fatalf("expected only recognized keys in layer, got %v", got.layer)
			}
			if len(got.unknown) != 1 || got.unknown[0] != "listen" {
				t.Fatalf("expected listen to be reported as unknown, got %v", got.unknown)
			}
		})
	}
}

func TestDecodeConfigFileEmpty(t *testing.T) {
	for _, format := range []fileFormat{formatKeyValue, formatYAML, formatTOML} {
		got, err := decodeConfigFile(strings.NewReader(""), format)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		if len(got.layer) != 0 {
			t.Fatalf("%s: expected empty layer, got %v", format, got.layer)
		}
	}
}

func TestDecodeConfigFileRejectsNonStrings(t *testing.T) {
	if _, err := decodeConfigFile(strings.NewReader("cache_dir = 42\n"), formatTOML); err == nil {
		t.Fatalf("expected error for non-string value")
	}
	if _, err := decodeConfigFile(strings.NewReader("not a pair\n"), formatKeyValue); err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestDecodeConfigFileKeyValueIsLiteral(t *testing.T) {
	t.Setenv("DATA", "XX")

	got, err := decodeConfigFile(strings.NewReader("runtime_dir=/srv/$DATA/run\nstate_dir=\"/s/${DATA}\"\ncache_dir=$\n"), formatKeyValue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{KeyRuntimeDir: "/srv/$DATA/run", KeyStateDir: "/s/${DATA}", KeyCacheDir: "$"}
	for key, value := range want {
		if got.layer[key] != value {
			t.Fatalf("%s: expected %q, got %q", key, value, got.layer[key])
		}
	}
}
