// Package nfa builds non-deterministic finite automata from regex ASTs via
// Thompson's construction and merges the per-pattern automata into one
// multi-pattern NFA.
//
// All states in one compilation session are allocated from a single
// monotonically increasing counter owned by a Builder, so state ids are
// globally fresh and two fragments can never collide. That freshness is a
// hard invariant: inserting a transition key that already exists means the
// compiler itself is broken, and construction aborts with a panic rather
// than silently overwriting.
package nfa

import (
	"fmt"
	"slices"

	"github.com/coregx/lexgen/internal/sparse"
)

// StateID uniquely identifies an NFA state within one compilation session.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Epsilon is the distinguished no-input symbol. It is outside the valid rune
// range, so it can never collide with an input character.
const Epsilon rune = -1

// PatternID is the 0-based registration order of a pattern. It doubles as
// the disambiguation key: when several patterns accept the same input, the
// lowest PatternID wins.
type PatternID uint32

// transKey addresses one cell of the transition relation.
type transKey struct {
	from StateID
	sym  rune // Epsilon for no-input moves
}

// Fragment is a single-pattern NFA produced by Thompson's construction.
// By construction it has exactly one start and exactly one accept state, and
// the accept state has no outgoing transitions until the fragment is embedded
// in a larger construct.
type Fragment struct {
	Start  StateID
	Accept StateID
}

// NFA is a merged multi-pattern automaton: one global start state with
// epsilon edges into every pattern's fragment, and an accept map recording
// which pattern each accept state belongs to.
//
// An NFA is immutable once returned by Merge. The transition table is
// snapshotted from the builder, so later registrations in the same session
// do not disturb it.
type NFA struct {
	start   StateID
	states  uint32
	trans   map[transKey][]StateID
	accepts map[StateID]PatternID
}

// Start returns the global start state.
func (n *NFA) Start() StateID {
	return n.start
}

// States returns the number of states allocated in the session up to the
// point this NFA was merged. State ids are always below this bound.
func (n *NFA) States() int {
	return int(n.states)
}

// Patterns returns the number of patterns merged into this NFA.
func (n *NFA) Patterns() int {
	return len(n.accepts)
}

// Targets returns the destination states for (from, sym).
// The returned slice must not be modified.
func (n *NFA) Targets(from StateID, sym rune) []StateID {
	return n.trans[transKey{from: from, sym: sym}]
}

// Alphabet returns every non-epsilon symbol appearing in the transition
// relation, sorted for deterministic iteration.
func (n *NFA) Alphabet() []rune {
	seen := make(map[rune]struct{})
	for k := range n.trans {
		if k.sym != Epsilon {
			seen[k.sym] = struct{}{}
		}
	}
	alphabet := make([]rune, 0, len(seen))
	for r := range seen {
		alphabet = append(alphabet, r)
	}
	slices.Sort(alphabet)
	return alphabet
}

// EpsilonClosure returns the smallest superset of states closed under
// epsilon transitions, sorted. Sorting makes the result canonical, so equal
// sets compare equal element-wise regardless of input order.
func (n *NFA) EpsilonClosure(states []StateID) []StateID {
	seen := sparse.New(n.states)
	stack := make([]StateID, 0, len(states)*2)
	for _, s := range states {
		if !seen.Contains(uint32(s)) {
			seen.Insert(uint32(s))
			stack = append(stack, s)
		}
	}

	// Iterative DFS; repetition back-edges make the graph cyclic, the
	// sparse set terminates the walk.
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.Targets(cur, Epsilon) {
			if !seen.Contains(uint32(next)) {
				seen.Insert(uint32(next))
				stack = append(stack, next)
			}
		}
	}

	return collectSorted(seen)
}

// Move returns the union of targets reachable from states on sym, sorted
// and deduplicated. It does not apply the epsilon-closure.
func (n *NFA) Move(states []StateID, sym rune) []StateID {
	seen := sparse.New(n.states)
	for _, s := range states {
		for _, next := range n.Targets(s, sym) {
			seen.Insert(uint32(next))
		}
	}
	return collectSorted(seen)
}

// Accept reports whether any state in the set is an accept state, and if so
// which pattern wins: the one with the lowest registration order.
func (n *NFA) Accept(states []StateID) (PatternID, bool) {
	best := PatternID(0)
	found := false
	for _, s := range states {
		if p, ok := n.accepts[s]; ok && (!found || p < best) {
			best = p
			found = true
		}
	}
	return best, found
}

// Simulate runs the NFA directly over input by epsilon-closure stepping and
// reports whether the entire input is accepted, along with the winning
// pattern. This is the reference semantics the determinized DFA must agree
// with; it exists for exactly that cross-check.
func (n *NFA) Simulate(input string) (PatternID, bool) {
	cur := n.EpsilonClosure([]StateID{n.start})
	for _, r := range input {
		cur = n.EpsilonClosure(n.Move(cur, r))
		if len(cur) == 0 {
			return 0, false
		}
	}
	return n.Accept(cur)
}

// String returns a human-readable summary of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, patterns: %d, start: %d, transitions: %d}",
		n.states, len(n.accepts), n.start, len(n.trans))
}

func collectSorted(set *sparse.Set) []StateID {
	out := make([]StateID, set.Len())
	for i, v := range set.Values() {
		out[i] = StateID(v)
	}
	slices.Sort(out)
	return out
}
