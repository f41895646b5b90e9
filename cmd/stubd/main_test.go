package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eugenenazirov/stubd/internal/buildinfo"
	"github.com/eugenenazirov/stubd/internal/framework"
)

func failingRuntime(t *testing.T) runtimeFactory {
	return func() (framework.Runtime, context.Context, func()) {
		t.Fatalf("runtime must not be created")
		return nil, nil, nil
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--help", "--config-file", filepath.Join(t.TempDir(), "missing.conf")}, &stdout, &stderr, failingRuntime(t))
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "--runtime-dir") {
		t.Fatalf("expected usage on stdout, got %q", stdout.String())
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--version"}, &stdout, &stderr, failingRuntime(t))
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if want := buildinfo.Name + " v" + buildinfo.Version; !strings.Contains(stdout.String(), want) {
		t.Fatalf("expected %q on stdout, got %q", want, stdout.String())
	}
}

func TestRunMissingConfigFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--bogus=1", "-c", filepath.Join(t.TempDir(), "missing.conf")}, &stdout, &stderr, failingRuntime(t))
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	logs := stderr.String()
	if !strings.Contains(logs, "unknown argument") || !strings.Contains(logs, "cannot open config file") {
		t.Fatalf("expected warning and open failure in diagnostics, got:\n%s", logs)
	}
}

func TestRunRejectsUnknownLogFormat(t *testing.T) {
	t.Setenv(buildinfo.EnvPrefix()+"_LOG_FORMAT", "xml")
	var stdout, stderr bytes.Buffer

	if code := run(nil, &stdout, &stderr, failingRuntime(t)); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
