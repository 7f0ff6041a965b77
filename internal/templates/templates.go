// Package templates serves the built-in catalog of ready-to-use GraphQL
// operation templates. The catalog is compiled into the binary; lookups are
// pure data reads with no I/O.
package templates

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/sdsheeks/gqlscout/internal/errors"
)

//go:embed templates.json
var rawCatalog []byte

// Template is one ready-to-use GraphQL operation.
type Template struct {
	// Name is the lookup key, e.g. "get-by-id".
	Name string `json:"name"`
	// Title is a short human-readable label.
	Title string `json:"title"`
	// Description is markdown explaining when to use the template and how
	// to adapt the placeholders.
	Description string `json:"description"`
	// Operation is the GraphQL document with <PLACEHOLDER> markers.
	Operation string `json:"operation"`
	// Variables documents the expected variable names and types.
	Variables map[string]string `json:"variables,omitempty"`
}

var (
	loadOnce sync.Once
	catalog  []Template
	loadErr  error
)

// load parses the embedded catalog once.
func load() ([]Template, error) {
	loadOnce.Do(func() {
		var parsed []Template
		if err := json.Unmarshal(rawCatalog, &parsed); err != nil {
			loadErr = fmt.Errorf("parsing embedded template catalog: %w", err)
			return
		}
		sort.Slice(parsed, func(i, j int) bool { return parsed[i].Name < parsed[j].Name })
		catalog = parsed
	})
	return catalog, loadErr
}

// List returns every template, sorted by name.
func List() ([]Template, error) {
	items, err := load()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	out := make([]Template, len(items))
	copy(out, items)
	return out, nil
}

// Get returns the template with the given name.
func Get(name string) (*Template, error) {
	items, err := load()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	for i := range items {
		if items[i].Name == name {
			t := items[i]
			return &t, nil
		}
	}
	return nil, errors.NewNotFound("template", name)
}
