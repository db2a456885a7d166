package app

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// GLConfig selects the OpenGL context version requested at startup.
type GLConfig struct {
	Major  int  `yaml:"major"`
	Minor  int  `yaml:"minor"`
	Legacy bool `yaml:"legacy"`
}

// Config is the YAML-backed application configuration. Window fields act as
// defaults; an application description with explicit values wins.
type Config struct {
	Title  string   `yaml:"title"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	GL     GLConfig `yaml:"gl"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Title:  "Swindow",
		Width:  1270,
		Height: 720,
		GL:     GLConfig{Major: 4, Minor: 6},
	}
}

// LoadConfig reads the configuration from path. A missing file is not an
// error; the defaults are returned. Unknown keys and malformed YAML are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	if err := decodeStrictYAML(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a usable window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", c.Width, c.Height)
	}
	if c.GL.Major < 1 {
		return fmt.Errorf("gl major version %d is below 1", c.GL.Major)
	}
	if c.GL.Minor < 0 {
		return fmt.Errorf("gl minor version %d is negative", c.GL.Minor)
	}
	return nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
