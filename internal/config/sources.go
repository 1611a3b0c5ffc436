package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const sourcesFileName = "sources.yaml"

// SourceSpec declares one remote registry in sources.yaml. Immutable once
// loaded.
type SourceSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type sourcesFile struct {
	Sources []SourceSpec `yaml:"sources"`
}

// DefaultSources is used when no sources.yaml exists yet.
var DefaultSources = []SourceSpec{
	{
		ID:   "core",
		Name: "core",
		URL:  "https://registry.pkgdex.dev/core",
	},
}

// SourcesFilePath returns the full path to the sources file.
func SourcesFilePath() string {
	return filepath.Join(Dir(), sourcesFileName)
}

// LoadSources reads the declared registry sources. A missing file yields the
// built-in defaults; a malformed file or an entry without id/url is an error.
func LoadSources() ([]SourceSpec, error) {
	data, err := os.ReadFile(SourcesFilePath())
	if os.IsNotExist(err) {
		return DefaultSources, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	seen := make(map[string]bool, len(f.Sources))
	for i, s := range f.Sources {
		if s.ID == "" || s.URL == "" {
			return nil, fmt.Errorf("source %d: id and url are required", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Name == "" {
			f.Sources[i].Name = s.ID
		}
	}

	return f.Sources, nil
}

// WriteSources persists the given source declarations to sources.yaml.
func WriteSources(sources []SourceSpec) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(sourcesFile{Sources: sources})
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}

	if err := os.WriteFile(SourcesFilePath(), data, 0644); err != nil {
		return fmt.Errorf("writing sources file: %w", err)
	}
	return nil
}
