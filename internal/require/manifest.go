package require

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ManifestEntry records one resolved library: its name, version and source.
// Loader records an entry in its in-memory Manifest for each library it
// loads; it does not call LoadManifest or Save, and REQUIRE does not consult
// the manifest before walking the resolution ladder.
type ManifestEntry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Source  string `yaml:"source"`
	AsAlias string `yaml:"as,omitempty"`
}

// Manifest is the on-disk lockfile, keyed by the normalized library name.
type Manifest struct {
	Entries map[string]ManifestEntry `yaml:"entries"`
}

// LoadManifest reads a manifest file, returning an empty Manifest if it
// doesn't exist yet — a fresh project has no lockfile until its first
// REQUIRE resolves.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{Entries: map[string]ManifestEntry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("require: reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("require: parsing manifest %s: %w", path, err)
	}
	if m.Entries == nil {
		m.Entries = map[string]ManifestEntry{}
	}
	return &m, nil
}

// Save writes the manifest back to path.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("require: encoding manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Record stores or overwrites the entry for name.
func (m *Manifest) Record(name string, e ManifestEntry) {
	if m.Entries == nil {
		m.Entries = map[string]ManifestEntry{}
	}
	m.Entries[name] = e
}

// Lookup returns the cached entry for name, if any.
func (m *Manifest) Lookup(name string) (ManifestEntry, bool) {
	e, ok := m.Entries[name]
	return e, ok
}
