package variantcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ManifestEntry records how a cached artifact was produced.
type ManifestEntry struct {
	CachePath  string `yaml:"cache_path"`
	SheetID    string `yaml:"sheet_id"`
	IconIndex  int    `yaml:"icon_index"`
	VariantRaw string `yaml:"variant"`
	CreatedAt  int64  `yaml:"created_at"`
}

// manifestFile is the YAML file format for the manifest.
type manifestFile struct {
	Version int                      `yaml:"version"`
	Entries map[string]ManifestEntry `yaml:"entries"`
}

// Manifest indexes the artifacts in the disk cache. It is owned by a single
// Cache, which serializes access to it.
type Manifest struct {
	path    string
	version int
	entries map[string]ManifestEntry
}

// newManifest returns an empty manifest at the given version.
func newManifest(path string, version int) *Manifest {
	return &Manifest{
		path:    path,
		version: version,
		entries: make(map[string]ManifestEntry),
	}
}

// loadManifest reads the manifest at path. The returned manifest is always
// usable; stale reports that the stored one was unreadable or written by a
// different cache version, in which case the caller must purge the artifacts.
func loadManifest(path string, version int) (m *Manifest, stale bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newManifest(path, version), false, nil
		}
		return nil, false, fmt.Errorf("read manifest: %w", err)
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return newManifest(path, version), true, nil
	}

	if file.Version != version {
		return newManifest(path, version), true, nil
	}

	m = newManifest(path, version)
	for key, entry := range file.Entries {
		m.entries[key] = entry
	}
	return m, false, nil
}

// Save writes the manifest to disk atomically.
func (m *Manifest) Save() error {
	file := manifestFile{
		Version: m.version,
		Entries: m.entries,
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, m.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Version returns the cache version the manifest belongs to.
func (m *Manifest) Version() int {
	return m.version
}

// Get returns the entry recorded for an artifact path.
func (m *Manifest) Get(cachePath string) (ManifestEntry, bool) {
	entry, ok := m.entries[cachePath]
	return entry, ok
}

// Put records or replaces the entry for entry.CachePath.
func (m *Manifest) Put(entry ManifestEntry) {
	m.entries[entry.CachePath] = entry
}

// Len returns the number of recorded artifacts.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns the recorded entries ordered by cache path.
func (m *Manifest) Entries() []ManifestEntry {
	out := make([]ManifestEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CachePath < out[j].CachePath })
	return out
}

// Reset drops every entry.
func (m *Manifest) Reset() {
	m.entries = make(map[string]ManifestEntry)
}
