package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/domaingen/project"
)

func TestManifestPath(t *testing.T) {
	c := &Config{Schema: filepath.Join("db", "schema.sql")}
	assert.Equal(t, filepath.Join("db", project.DefaultManifest), c.ManifestPath())
	c.Manifest = "build.yaml"
	assert.Equal(t, "build.yaml", c.ManifestPath())
}

func TestLoadConfigFile(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "domaingen.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("resolves relative paths", func(t *testing.T) {
		path := write(t, "schema: db/domain.sql\ntarget: gen\npackage: com.example.model\ntemplate: model.tmpl\nworkers: 3\n")
		c, err := LoadConfigFile(path)
		require.NoError(t, err)
		dir := filepath.Dir(path)
		assert.Equal(t, filepath.Join(dir, "db", "domain.sql"), c.Schema)
		assert.Equal(t, filepath.Join(dir, "gen"), c.Target)
		assert.Equal(t, filepath.Join(dir, "model.tmpl"), c.Template)
		assert.Empty(t, c.Manifest)
		assert.Equal(t, "com.example.model", c.Package)
		assert.Equal(t, 3, c.Workers)
	})

	t.Run("keeps absolute paths and the dev url", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "schema.sql")
		path := write(t, "schema: "+abs+"\ndev_url: postgres://localhost/dev\n")
		c, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, abs, c.Schema)
		assert.Equal(t, "postgres://localhost/dev", c.DevURL)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		path := write(t, "")
		c, err := LoadConfigFile(path)
		require.NoError(t, err)
		dir := filepath.Dir(path)
		assert.Equal(t, filepath.Join(dir, DefaultSchema), c.Schema)
		assert.Equal(t, filepath.Join(dir, filepath.FromSlash(DefaultTarget)), c.Target)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := LoadConfigFile(write(t, "packge: model\n"))
		require.Error(t, err)
		assert.True(t, IsConfigurationError(err))
		assert.Contains(t, err.Error(), "parse config file")
	})

	t.Run("rejects negative workers", func(t *testing.T) {
		_, err := LoadConfigFile(write(t, "workers: -2\n"))
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
