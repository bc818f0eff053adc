package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type overrideFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadFile reads a YAML catalog. Entries whose path matches a built-in
// category replace its non-empty fields; other entries are appended.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse applies a YAML catalog document over the built-in categories.
func Parse(data []byte) (*Catalog, error) {
	var doc overrideFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	merged := Default().Categories()
	for _, entry := range doc.Categories {
		entry.Path = normalize(entry.Path)
		if entry.Path == "/" {
			return nil, fmt.Errorf("parse catalog: category %q has no path", entry.Label)
		}
		if strings.TrimSpace(entry.Label) == "" && indexByPath(merged, entry.Path) < 0 {
			return nil, fmt.Errorf("parse catalog: category %s has no label", entry.Path)
		}
		if i := indexByPath(merged, entry.Path); i >= 0 {
			merged[i] = mergeCategory(merged[i], entry)
			continue
		}
		merged = append(merged, entry)
	}
	return New(merged), nil
}

func indexByPath(categories []Category, path string) int {
	for i, c := range categories {
		if c.Path == path {
			return i
		}
	}
	return -1
}

func mergeCategory(base, over Category) Category {
	if over.Label != "" {
		base.Label = over.Label
	}
	if over.Title != "" {
		base.Title = over.Title
	}
	if over.AboutTitle != "" {
		base.AboutTitle = over.AboutTitle
	}
	if over.About != "" {
		base.About = over.About
	}
	if over.Resource != "" {
		base.Resource = over.Resource
	}
	if len(over.Aliases) > 0 {
		base.Aliases = over.Aliases
	}
	return base
}
