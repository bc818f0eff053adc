// Package catalog lists the phrase categories and maps routes onto them.
package catalog

import (
	"strings"
)

// DefaultPath is where unknown routes land.
const DefaultPath = "/overview"

// Category is one browsable page.
type Category struct {
	Path       string `yaml:"path" json:"path"`
	Label      string `yaml:"label" json:"label"`
	Title      string `yaml:"title" json:"title"`
	AboutTitle string `yaml:"about_title" json:"aboutTitle"`
	About      string `yaml:"about" json:"about"`
	// Resource is the document path on the server. Empty means the page
	// has no collection yet and its fetch is vetoed.
	Resource string   `yaml:"resource" json:"resource,omitempty"`
	Aliases  []string `yaml:"aliases" json:"aliases,omitempty"`
}

// HasResource reports whether the category is backed by a document.
func (c Category) HasResource() bool {
	return strings.TrimSpace(c.Resource) != ""
}

// Catalog is an ordered category list.
type Catalog struct {
	categories []Category
}

// New builds a catalog from the given categories in order.
func New(categories []Category) *Catalog {
	cp := make([]Category, len(categories))
	copy(cp, categories)
	return &Catalog{categories: cp}
}

// Default returns the built-in category set.
func Default() *Catalog {
	return New(builtin)
}

// Categories returns the categories in tab order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }

// At returns the category at index i.
func (c *Catalog) At(i int) Category { return c.categories[i] }

// IndexOf returns the index of the category serving path, or -1.
func (c *Catalog) IndexOf(path string) int {
	p := normalize(path)
	for i, cat := range c.categories {
		if cat.Path == p {
			return i
		}
		for _, alias := range cat.Aliases {
			if normalize(alias) == p {
				return i
			}
		}
	}
	return -1
}

// Resolve returns the category for path. Unknown paths resolve to the
// default category, and the bool reports whether a redirect happened.
func (c *Catalog) Resolve(path string) (Category, int, bool) {
	if i := c.IndexOf(path); i >= 0 {
		return c.categories[i], i, false
	}
	if i := c.IndexOf(DefaultPath); i >= 0 {
		return c.categories[i], i, true
	}
	if len(c.categories) == 0 {
		return Category{}, -1, true
	}
	return c.categories[0], 0, true
}

// Resources returns every distinct document path in the catalog.
func (c *Catalog) Resources() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cat := range c.categories {
		if !cat.HasResource() {
			continue
		}
		if _, ok := seen[cat.Resource]; ok {
			continue
		}
		seen[cat.Resource] = struct{}{}
		out = append(out, cat.Resource)
	}
	return out
}

func normalize(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
