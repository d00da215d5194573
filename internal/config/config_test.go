package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `input: data/DataSet.xlsx
output: db/migrations/0001_initial_data.sql
metrics_file: /var/lib/node_exporter/trackseed.prom
numeric_policy: strict

upsert:
  refresh_last_location: false

s3:
  region: eu-west-1
  endpoint: http://localhost:9000
  path_style: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "data/DataSet.xlsx", cfg.Input)
	assert.Equal(t, "db/migrations/0001_initial_data.sql", cfg.Output)
	assert.Equal(t, "/var/lib/node_exporter/trackseed.prom", cfg.MetricsFile)
	assert.Equal(t, "strict", cfg.NumericPolicy)
	require.NotNil(t, cfg.Upsert.RefreshLastLocation)
	assert.False(t, *cfg.Upsert.RefreshLastLocation)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	require.NotNil(t, cfg.S3.PathStyle)
	assert.True(t, *cfg.S3.PathStyle)
	assert.Equal(t, dir, cfg.Dir)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("input: s3://bucket/DataSet.xlsx\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "s3://bucket/DataSet.xlsx", cfg.Input)
	assert.Equal(t, "", cfg.Output)
	assert.Nil(t, cfg.Upsert.RefreshLastLocation)
	assert.Nil(t, cfg.S3.PathStyle)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("ouptut: x.sql\n"), 0644))

	cfg, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ouptut")
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{Dir: dir}, *cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("output: out.sql\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "out.sql", cfg.Output)
}

func TestResolvePath(t *testing.T) {
	cfg := &ProjectConfig{Dir: "/srv/project"}

	assert.Equal(t, filepath.Join("/srv/project", "data/DataSet.xlsx"), cfg.ResolvePath("data/DataSet.xlsx"))
	assert.Equal(t, "/abs/DataSet.xlsx", cfg.ResolvePath("/abs/DataSet.xlsx"))
	assert.Equal(t, "s3://bucket/key.xlsx", cfg.ResolvePath("s3://bucket/key.xlsx"))
	assert.Equal(t, "", cfg.ResolvePath(""))
}
