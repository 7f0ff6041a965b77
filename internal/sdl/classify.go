// Package sdl provides lightweight, line-oriented understanding of a GraphQL
// Schema Definition Language document. It deliberately stops short of a full
// grammar parser: every operation here works on raw lines, which keeps schema
// scans fast enough for interactive tooling.
package sdl

import (
	"regexp"
	"strings"
)

// Kind classifies a single SDL line.
type Kind string

const (
	KindType      Kind = "type"
	KindInput     Kind = "input"
	KindEnum      Kind = "enum"
	KindInterface Kind = "interface"
	KindUnion     Kind = "union"
	KindScalar    Kind = "scalar"
	KindField     Kind = "field"
	KindOther     Kind = "other"

	// KindQuery and KindMutation are reported for field lines that sit
	// inside the root Query/Mutation blocks. ClassifyLine never returns
	// them directly; callers adjust using the enclosing construct.
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// RootConstruct is the enclosing-construct name reported for lines outside
// any named definition.
const RootConstruct = "root"

// openerPattern matches a named block-opening definition keyword at the start
// of a line: type/input/enum/interface/union/scalar followed by the
// definition's name. "scalar" is included for classification even though it
// opens no block.
var openerPattern = regexp.MustCompile(`^(type|input|enum|interface|union|scalar)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// fieldPattern is the fallback heuristic for field lines: a name, optional
// argument list, then a colon and a type.
var fieldPattern = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*\s*(\([^)]*\))?\s*:`)

// ClassifyLine classifies a single SDL line and, for definition openers,
// extracts the definition's name. Comment lines and anything unrecognized
// are KindOther with an empty name.
func ClassifyLine(line string) (Kind, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return KindOther, ""
	}

	if m := openerPattern.FindStringSubmatch(trimmed); m != nil {
		return Kind(m[1]), m[2]
	}

	if fieldPattern.MatchString(trimmed) {
		return KindField, ""
	}

	return KindOther, ""
}
