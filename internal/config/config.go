package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type UpsertConfig struct {
	// RefreshLastLocation is nil when the key is absent from the file.
	RefreshLastLocation *bool `yaml:"refresh_last_location"`
}

type S3Config struct {
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	PathStyle *bool  `yaml:"path_style,omitempty"`
}

type ProjectConfig struct {
	Input         string       `yaml:"input"`
	Output        string       `yaml:"output"`
	MetricsFile   string       `yaml:"metrics_file,omitempty"`
	NumericPolicy string       `yaml:"numeric_policy,omitempty"`
	Upsert        UpsertConfig `yaml:"upsert"`
	S3            S3Config     `yaml:"s3"`

	// Dir is the directory the file was read from. Relative input and
	// output paths resolve against it.
	Dir string `yaml:"-"`
}

const ConfigFileName = "trackseed.yaml"

// Load reads trackseed.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from an explicit path. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	return &cfg, nil
}

// ResolvePath makes a config-relative path absolute. Empty paths, absolute
// paths and s3:// locations are returned unchanged.
func (c *ProjectConfig) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "s3://") || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}
