package sdl

import "strings"

// Construct is one open named definition on the tracker stack.
type Construct struct {
	Name string
	Kind Kind
}

// Tracker follows which named definition encloses the current line while a
// document is scanned top to bottom. It keeps an explicit stack of open
// constructs: an opener keyword with a brace pushes, a lone closing brace
// pops. With a stack, an inner closing brace only closes the innermost
// block instead of clearing all context.
//
// Callers should read Current before observing a line: a definition's
// opening line is outside its own body.
type Tracker struct {
	stack []Construct
}

// Current returns the innermost open construct, or RootConstruct when the
// scan is outside any named definition.
func (t *Tracker) Current() string {
	if len(t.stack) == 0 {
		return RootConstruct
	}
	return t.stack[len(t.stack)-1].Name
}

// CurrentKind returns the Kind of the innermost open construct, or KindOther
// at the root.
func (t *Tracker) CurrentKind() Kind {
	if len(t.stack) == 0 {
		return KindOther
	}
	return t.stack[len(t.stack)-1].Kind
}

// Depth returns the number of open constructs.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// Observe updates the stack for one scanned line.
func (t *Tracker) Observe(line string) {
	trimmed := strings.TrimSpace(line)

	if m := openerPattern.FindStringSubmatch(trimmed); m != nil {
		// Only block-opening definitions push; "scalar Date" and
		// one-liners like "type Unit {}" leave nothing open.
		if strings.Contains(trimmed, "{") && !strings.HasSuffix(trimmed, "}") {
			t.stack = append(t.stack, Construct{Name: m[2], Kind: Kind(m[1])})
		}
		return
	}

	if trimmed == "}" && len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Reset clears the stack for reuse across documents.
func (t *Tracker) Reset() {
	t.stack = t.stack[:0]
}
