// Package keywords serves built-in keyword lists for guided schema
// exploration: common search terms grouped by concern, for callers that do
// not yet know what a schema names things.
package keywords

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/sdsheeks/gqlscout/internal/errors"
)

//go:embed keywords.json
var rawLists []byte

var (
	loadOnce sync.Once
	lists    map[string][]string
	loadErr  error
)

func load() (map[string][]string, error) {
	loadOnce.Do(func() {
		parsed := map[string][]string{}
		if err := json.Unmarshal(rawLists, &parsed); err != nil {
			loadErr = fmt.Errorf("parsing embedded keyword lists: %w", err)
			return
		}
		lists = parsed
	})
	return lists, loadErr
}

// Categories returns the available keyword categories, sorted.
func Categories() ([]string, error) {
	all, err := load()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// List returns the keywords in one category.
func List(category string) ([]string, error) {
	all, err := load()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	words, ok := all[category]
	if !ok {
		return nil, errors.NewNotFound("keyword category", category)
	}
	out := make([]string, len(words))
	copy(out, words)
	return out, nil
}
