package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "unassigned", cfg.DefaultActor)
	assert.Empty(t, cfg.TemplateDir)
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/shop.db\ntemplate_dir: /etc/taller/templates\ndefault_actor: tech-7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shop.db", cfg.DBPath)
	assert.Equal(t, "/etc/taller/templates", cfg.TemplateDir)
	assert.Equal(t, "tech-7", cfg.DefaultActor)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_actor: tech-7\n"), 0o644))
	t.Setenv("TALLER_DEFAULT_ACTOR", "tech-9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tech-9", cfg.DefaultActor)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unterminated\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
