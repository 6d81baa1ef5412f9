package script

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/*.tengo
var templatesFS embed.FS

// Template compiles one of the built-in generator templates by name
// (e.g. "circle", "zigzag").
func Template(name string) (*Generator, error) {
	src, err := templatesFS.ReadFile(fmt.Sprintf("templates/%s.tengo", name))
	if err != nil {
		return nil, fmt.Errorf("script: unknown template %q: %w", name, err)
	}
	return New(name, src)
}

// Templates returns the names of the built-in generator templates.
func Templates() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".tengo"))
	}
	sort.Strings(names)
	return names
}
