// Package project records the compile source roots of the enclosing build.
//
// A generator run ends by registering its output directory as a compile
// source root. Registration is idempotent: a directory already present is not
// added again.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultManifest is the file name of the build description.
const DefaultManifest = "domaingen.yaml"

// Memory is an in-memory build description.
type Memory struct {
	mu    sync.Mutex
	roots []string
}

// AddCompileSourceRoot registers dir. Paths are cleaned before comparison.
func (m *Memory) AddCompileSourceRoot(dir string) error {
	if dir == "" {
		return errors.New("project: empty compile source root")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = filepath.Clean(dir)
	if !slices.Contains(m.roots, dir) {
		m.roots = append(m.roots, dir)
	}
	return nil
}

// CompileSourceRoots returns the registered roots in registration order.
func (m *Memory) CompileSourceRoots() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.roots)
}

// Manifest is a build description persisted as YAML. Roots are stored
// relative to the manifest's directory when possible, so the file can be
// committed.
//
//	# domaingen.yaml
//	compile_source_roots:
//	    - internal/generated
type Manifest struct {
	path string
}

// manifestFile is the on-disk layout of a Manifest.
type manifestFile struct {
	CompileSourceRoots []string `yaml:"compile_source_roots"`
}

// OpenManifest returns the manifest stored at path. The file is created on
// the first registration.
func OpenManifest(path string) *Manifest {
	return &Manifest{path: path}
}

// Path returns the manifest file path.
func (m *Manifest) Path() string { return m.path }

// AddCompileSourceRoot registers dir, keeping the list sorted and free of
// duplicates.
func (m *Manifest) AddCompileSourceRoot(dir string) error {
	if dir == "" {
		return errors.New("project: empty compile source root")
	}
	f, err := m.read()
	if err != nil {
		return err
	}
	rel, err := m.rel(dir)
	if err != nil {
		return err
	}
	if slices.Contains(f.CompileSourceRoots, rel) {
		return nil
	}
	f.CompileSourceRoots = append(f.CompileSourceRoots, rel)
	slices.Sort(f.CompileSourceRoots)
	return m.write(f)
}

// CompileSourceRoots returns the registered roots as absolute paths.
func (m *Manifest) CompileSourceRoots() ([]string, error) {
	f, err := m.read()
	if err != nil {
		return nil, err
	}
	base, err := m.base()
	if err != nil {
		return nil, err
	}
	roots := make([]string, 0, len(f.CompileSourceRoots))
	for _, r := range f.CompileSourceRoots {
		r = filepath.FromSlash(r)
		if !filepath.IsAbs(r) {
			r = filepath.Join(base, r)
		}
		roots = append(roots, r)
	}
	return roots, nil
}

func (m *Manifest) base() (string, error) {
	abs, err := filepath.Abs(m.path)
	if err != nil {
		return "", fmt.Errorf("project: resolve manifest path: %w", err)
	}
	return filepath.Dir(abs), nil
}

// rel converts dir to the slash-separated form stored in the file.
func (m *Manifest) rel(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("project: resolve %s: %w", dir, err)
	}
	base, err := m.base()
	if err != nil {
		return "", err
	}
	if rel, err := filepath.Rel(base, abs); err == nil && filepath.IsLocal(rel) {
		return filepath.ToSlash(rel), nil
	}
	return filepath.ToSlash(abs), nil
}

func (m *Manifest) read() (*manifestFile, error) {
	f := &manifestFile{}
	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("project: read manifest %s: %w", m.path, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("project: parse manifest %s: %w", m.path, err)
	}
	return f, nil
}

func (m *Manifest) write(f *manifestFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("project: encode manifest: %w", err)
	}
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("project: create manifest directory: %w", err)
		}
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("project: write manifest %s: %w", m.path, err)
	}
	return nil
}
