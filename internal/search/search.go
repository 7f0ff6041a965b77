// Package search scans SDL text for pattern matches annotated with their
// structural context. The engine is a pure function of its inputs: it holds
// no state, touches no I/O, and is safe to call concurrently.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sdsheeks/gqlscout/internal/sdl"
)

// Filter restricts which lines are eligible for matching.
type Filter string

const (
	FilterAny       Filter = "any"
	FilterQuery     Filter = "query"
	FilterMutation  Filter = "mutation"
	FilterType      Filter = "type"
	FilterInput     Filter = "input"
	FilterEnum      Filter = "enum"
	FilterInterface Filter = "interface"
	FilterUnion     Filter = "union"
	FilterScalar    Filter = "scalar"
)

// ValidFilters lists every accepted construct filter, in display order.
var ValidFilters = []Filter{
	FilterAny, FilterQuery, FilterMutation, FilterType, FilterInput,
	FilterEnum, FilterInterface, FilterUnion, FilterScalar,
}

// ParseFilter normalizes a filter string. An empty string means "any".
func ParseFilter(s string) (Filter, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAny, true
	}
	for _, f := range ValidFilters {
		if Filter(s) == f {
			return f, true
		}
	}
	return "", false
}

// Query is one search request against a schema document.
type Query struct {
	// Pattern is interpreted as a case-insensitive regular expression.
	Pattern string
	// Filter restricts matches by construct. Empty means any.
	Filter string
	// ContextWindow is the symmetric radius, in lines, of each snippet.
	ContextWindow int
}

// Match is a single matched line with its structural context.
type Match struct {
	// LineNumber is 1-indexed.
	LineNumber int `json:"line_number"`
	// Snippet holds the matched line plus up to ContextWindow lines on
	// either side, clipped at document bounds. The matched line is marked
	// with a leading ">".
	Snippet string `json:"context_snippet"`
	// Kind classifies the matched line itself. Field lines inside the root
	// Query or Mutation block report "query"/"mutation" instead of "field".
	Kind string `json:"construct_kind"`
	// Enclosing names the innermost open definition containing the line,
	// or "root" if none.
	Enclosing string `json:"enclosing_construct"`
}

// Result is the structured outcome of a search. User-input problems (empty
// pattern, unknown filter, invalid regex) populate Error instead of raising:
// a batch of searches can partially succeed without aborting the batch.
type Result struct {
	Matches      []Match `json:"matches"`
	TotalMatches int     `json:"total_matches"`
	SearchQuery  string  `json:"search_query"`
	Filter       string  `json:"construct_filter"`
	Error        string  `json:"error,omitempty"`
}

// Search scans content line by line and returns every match for q, in
// ascending line order. It never returns a Go error: bad input is reported
// in Result.Error alongside zero matches.
func Search(content string, q Query) *Result {
	result := &Result{
		Matches:     []Match{},
		SearchQuery: q.Pattern,
		Filter:      q.Filter,
	}

	pattern := strings.TrimSpace(q.Pattern)
	if pattern == "" {
		result.Error = "search query must not be empty"
		return result
	}

	filter, ok := ParseFilter(q.Filter)
	if !ok {
		result.Error = fmt.Sprintf("unknown construct_filter %q (valid: %s)", q.Filter, filterList())
		return result
	}
	result.Filter = string(filter)

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		result.Error = fmt.Sprintf("invalid search pattern: %v", err)
		return result
	}

	window := q.ContextWindow
	if window < 0 {
		window = 0
	}

	lines := sdl.SplitLines(content)

	var tracker sdl.Tracker
	for i, line := range lines {
		// The opener line itself is outside its own body, so read the
		// enclosing construct before observing the line.
		enclosing := tracker.Current()
		kind, _ := sdl.ClassifyLine(line)

		if eligible(filter, kind, enclosing) && re.MatchString(line) {
			result.Matches = append(result.Matches, Match{
				LineNumber: i + 1,
				Snippet:    buildSnippet(lines, i, window),
				Kind:       string(adjustKind(kind, enclosing)),
				Enclosing:  enclosing,
			})
		}

		tracker.Observe(line)
	}

	result.TotalMatches = len(result.Matches)
	return result
}

// eligible applies the construct filter to a classified line.
func eligible(filter Filter, kind sdl.Kind, enclosing string) bool {
	switch filter {
	case FilterAny:
		return true
	case FilterQuery:
		// Everything inside the root Query block qualifies, regardless of
		// the line's own classification.
		return enclosing == "Query"
	case FilterMutation:
		return enclosing == "Mutation"
	default:
		// Definition filters also admit field lines; the enclosing
		// construct tells the caller which definition a field belongs to.
		return kind == sdl.Kind(filter) || kind == sdl.KindField
	}
}

// adjustKind disambiguates field lines in the two special root blocks:
// identical field syntax reports as "query" or "mutation" by context.
func adjustKind(kind sdl.Kind, enclosing string) sdl.Kind {
	if kind != sdl.KindField {
		return kind
	}
	switch enclosing {
	case "Query":
		return sdl.KindQuery
	case "Mutation":
		return sdl.KindMutation
	}
	return kind
}

// buildSnippet assembles the context window around line index i, clipped to
// document bounds. Lines are kept verbatim after a two-character gutter that
// marks the matched line with ">".
func buildSnippet(lines []string, i, window int) string {
	start := i - window
	if start < 0 {
		start = 0
	}
	end := i + window
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	var b strings.Builder
	for j := start; j <= end; j++ {
		if j > start {
			b.WriteByte('\n')
		}
		if j == i {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(lines[j])
	}
	return b.String()
}

// filterList renders the valid filter names for error messages.
func filterList() string {
	names := make([]string, len(ValidFilters))
	for i, f := range ValidFilters {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
