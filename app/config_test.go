package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
title: Editor
width: 800
gl:
  major: 2
  minor: 1
  legacy: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != "Editor" || cfg.Width != 800 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Height != DefaultConfig().Height {
		t.Fatalf("height = %d, want default %d", cfg.Height, DefaultConfig().Height)
	}
	if cfg.GL.Major != 2 || cfg.GL.Minor != 1 || !cfg.GL.Legacy {
		t.Fatalf("gl = %+v", cfg.GL)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "title: [unclosed")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig must reject malformed yaml")
	} else if !strings.Contains(err.Error(), "failed to parse yaml") {
		t.Fatalf("error = %v", err)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "titel: Typo\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig must reject unknown keys")
	}
}

func TestLoadConfigRejectsNonPositiveSize(t *testing.T) {
	path := writeConfig(t, "width: -10\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig must reject a negative width")
	}
}

func TestValidateRejectsBadGLVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GL.Major = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate must reject gl major 0")
	}

	cfg = DefaultConfig()
	cfg.GL.Minor = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate must reject a negative gl minor")
	}
}
