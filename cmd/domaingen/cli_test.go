package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/domaingen/compiler/gen"
	"github.com/syssam/domaingen/project"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	for _, args := range [][]string{nil, {"generate"}} {
		name := "root"
		if len(args) > 0 {
			name = args[0]
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			schema := writeFile(t, dir, "domain-desc.sql", "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50));")
			out := filepath.Join(dir, "internal", "generated")
			logs, err := execute(t, append(args, "--schema", schema, "--out", out, "--package", "com.example.model")...)
			require.NoError(t, err, logs)
			assert.FileExists(t, filepath.Join(out, "com", "example", "model", "users.go"))
			assert.Contains(t, logs, "sources generated")

			roots, err := project.OpenManifest(filepath.Join(dir, project.DefaultManifest)).CompileSourceRoots()
			require.NoError(t, err)
			assert.Equal(t, []string{out}, roots)
		})
	}
}

func TestGenerateMissingPackage(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "domain-desc.sql", "CREATE TABLE users (id INT);")
	_, err := execute(t, "--schema", schema, "--out", filepath.Join(dir, "gen"))
	require.Error(t, err)
	assert.True(t, gen.IsConfigurationError(err))
}

func TestGenerateInvalidFlags(t *testing.T) {
	_, err := execute(t, "--package", "model", "--dev-url", "oracle://localhost", "--workers", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"DevURL"`)
	assert.Contains(t, err.Error(), `"Workers"`)
}

func TestGenerateConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schema.sql", "CREATE TABLE items (id INTEGER PRIMARY KEY, title TEXT);")
	cfg := writeFile(t, dir, "domaingen.yml", "schema: schema.sql\ntarget: gen\npackage: model\nmanifest: build.yaml\n")

	logs, err := execute(t, "generate", "--config", cfg, "--package", "catalog", "--verbose")
	require.NoError(t, err, logs)
	assert.FileExists(t, filepath.Join(dir, "gen", "catalog", "items.go"))
	assert.NoDirExists(t, filepath.Join(dir, "gen", "model"))
	assert.FileExists(t, filepath.Join(dir, "build.yaml"))
	assert.Contains(t, logs, "level=DEBUG")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "domaingen dev\n", out)
}

func TestWatch(t *testing.T) {
	debounce = 10 * time.Millisecond
	dir := t.TempDir()
	path := writeFile(t, dir, "schema.sql", "CREATE TABLE a (id INT);")

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	done := make(chan error, 1)
	var logs bytes.Buffer
	go func() {
		done <- watch(ctx, path, slog.New(slog.NewTextHandler(&logs, nil)), func() error {
			runs.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register before touching the file.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, dir, "other.sql", "ignored")
	writeFile(t, dir, "schema.sql", "CREATE TABLE b (id INT);")
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
