// Package ascii provides ASCII art logos for Linux distributions.
// Logos are stored as plain text with colour markers and rendered through a
// lipgloss renderer for terminal display.
package ascii

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed logos
var embedded embed.FS

// IndexFile is the registry index inside a logo directory.
const IndexFile = "index.yaml"

// FallbackName is the logo used when the requested one is not registered.
const FallbackName = "linux"

// NotFound is returned when neither the requested logo nor FallbackName
// exists.
var NotFound = []string{"No logo found"}

type indexEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	File    string   `yaml:"file"`
}

type index struct {
	Logos []indexEntry `yaml:"logos"`
}

// Registry maps normalized logo names to their raw art. It is read-only once
// loaded.
type Registry struct {
	art   map[string][]string
	names []string
}

// Default loads the logos compiled into the binary.
func Default() (*Registry, error) {
	sub, err := fs.Sub(embedded, "logos")
	if err != nil {
		return nil, fmt.Errorf("open embedded logos: %w", err)
	}
	return Load(sub)
}

// Load reads IndexFile from fsys and every art file it lists.
//
// Parameters:
//   - fsys: Directory holding index.yaml and the art files
//
// Returns:
//   - The registry, or an error when the index is malformed, an art file is
//     missing, or two entries claim the same name
func Load(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, IndexFile)
	if err != nil {
		return nil, fmt.Errorf("read logo index: %w", err)
	}
	var idx index
	if err := yaml.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parse logo index: %w", err)
	}

	r := &Registry{art: make(map[string][]string)}
	for _, e := range idx.Logos {
		if e.Name == "" || e.File == "" {
			return nil, fmt.Errorf("logo index: entry %q needs both name and file", e.Name)
		}
		content, err := fs.ReadFile(fsys, e.File)
		if err != nil {
			return nil, fmt.Errorf("read logo %s: %w", e.Name, err)
		}
		lines := splitArt(string(content))
		for _, key := range append([]string{e.Name}, e.Aliases...) {
			key = Normalize(key)
			if _, dup := r.art[key]; dup {
				return nil, fmt.Errorf("logo index: duplicate name %q", key)
			}
			r.art[key] = lines
		}
		r.names = append(r.names, Normalize(e.Name))
	}
	sort.Strings(r.names)
	return r, nil
}

// Normalize lower-cases a distribution name and replaces spaces with
// underscores.
//
// Example: Normalize("Pop OS") returns "pop_os"
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Names lists the primary logo names, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Raw returns the art for name with colour markers intact, falling back to
// FallbackName and then to NotFound.
func (r *Registry) Raw(name string) []string {
	for _, key := range []string{Normalize(name), name, FallbackName} {
		if lines, ok := r.art[key]; ok {
			return append([]string(nil), lines...)
		}
	}
	return append([]string(nil), NotFound...)
}

// Get returns the art for name with its colour markers rendered by rend.
func (r *Registry) Get(name string, rend *lipgloss.Renderer) []string {
	return Paint(r.Raw(name), rend)
}

func splitArt(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}
