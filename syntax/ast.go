// Package syntax provides the regex AST consumed by the NFA compiler and a
// parser that produces it.
//
// The AST is deliberately small: terminals, sequences, binary alternation and
// zero-or-more repetition. Everything the surface syntax offers beyond that
// (character classes, +, ?) is lowered into these four forms at parse time.
// Nodes are immutable once built and may be shared between trees.
package syntax

import (
	"fmt"
	"strings"
)

// Node is a node in the regex AST.
// The concrete types are Terminal, Sequence, Alternation and Repetition.
type Node interface {
	fmt.Stringer

	// isNode restricts implementations to this package.
	isNode()
}

// Terminal matches exactly one input character.
type Terminal struct {
	Ch rune
}

// Sequence matches its items one after another.
// An empty Sequence matches the empty string.
type Sequence struct {
	Items []Node
}

// Alternation matches either its left or its right branch.
type Alternation struct {
	Left  Node
	Right Node
}

// Repetition matches zero or more occurrences of its inner node.
type Repetition struct {
	Inner Node
}

func (*Terminal) isNode()    {}
func (*Sequence) isNode()    {}
func (*Alternation) isNode() {}
func (*Repetition) isNode()  {}

// String returns the terminal's character, quoted if it is not printable.
func (t *Terminal) String() string {
	return fmt.Sprintf("%q", t.Ch)
}

// String returns a human-readable representation of the sequence
func (s *Sequence) String() string {
	if len(s.Items) == 0 {
		return "ε"
	}
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, "·") + ")"
}

// String returns a human-readable representation of the alternation
func (a *Alternation) String() string {
	return "(" + a.Left.String() + "|" + a.Right.String() + ")"
}

// String returns a human-readable representation of the repetition
func (r *Repetition) String() string {
	return r.Inner.String() + "*"
}
