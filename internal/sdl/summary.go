package sdl

import "strings"

// Summary holds per-kind construct counts for a schema document.
// Used for status reporting without shipping the full SDL text.
type Summary struct {
	Lines          int `json:"lines"`
	Types          int `json:"types"`
	Inputs         int `json:"inputs"`
	Enums          int `json:"enums"`
	Interfaces     int `json:"interfaces"`
	Unions         int `json:"unions"`
	Scalars        int `json:"scalars"`
	QueryFields    int `json:"query_fields"`
	MutationFields int `json:"mutation_fields"`
}

// Summarize scans the document once and counts definitions plus the fields
// of the root Query and Mutation blocks.
func Summarize(content string) Summary {
	lines := SplitLines(content)

	var summary Summary
	summary.Lines = len(lines)

	var tracker Tracker
	for _, line := range lines {
		enclosing := tracker.Current()
		kind, _ := ClassifyLine(line)

		switch kind {
		case KindType:
			summary.Types++
		case KindInput:
			summary.Inputs++
		case KindEnum:
			summary.Enums++
		case KindInterface:
			summary.Interfaces++
		case KindUnion:
			summary.Unions++
		case KindScalar:
			summary.Scalars++
		case KindField:
			switch enclosing {
			case "Query":
				summary.QueryFields++
			case "Mutation":
				summary.MutationFields++
			}
		}

		tracker.Observe(line)
	}

	return summary
}

// SplitLines splits a document into lines without producing a phantom empty
// line for a trailing newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
