// Package dfa turns a merged NFA into a deterministic finite automaton via
// eager subset construction.
//
// Each DFA state stands for the epsilon-closure of a set of NFA states.
// Subsets are kept in canonical sorted order and memoized by an exact key,
// so identical subsets collapse to one DFA state. A DFA is immutable once
// built and safe for concurrent walks.
package dfa

import (
	"fmt"

	"github.com/coregx/lexgen/nfa"
)

// StateID uniquely identifies a DFA state.
type StateID uint32

// Start is the start state; subset construction always seeds it first.
const Start StateID = 0

// State is one determinized state: its outgoing transitions and, if the
// underlying subset intersects the NFA's accept set, the winning pattern.
type State struct {
	transitions map[rune]StateID
	isMatch     bool
	pattern     nfa.PatternID
}

// DFA is the deterministic recognizer produced by Determinize.
type DFA struct {
	states []State
}

// Start returns the start state.
func (d *DFA) Start() StateID {
	return Start
}

// States returns the number of DFA states.
func (d *DFA) States() int {
	return len(d.states)
}

// Next returns the state reached from s on input r.
// The second result is false when no transition exists.
func (d *DFA) Next(s StateID, r rune) (StateID, bool) {
	next, ok := d.states[s].transitions[r]
	return next, ok
}

// Match reports whether s is an accepting state and, if so, which pattern
// it accepts: the lowest registration order among the NFA accept states in
// its subset.
func (d *DFA) Match(s StateID) (nfa.PatternID, bool) {
	st := &d.states[s]
	return st.pattern, st.isMatch
}

// String returns a human-readable summary of the DFA
func (d *DFA) String() string {
	transitions := 0
	matches := 0
	for i := range d.states {
		transitions += len(d.states[i].transitions)
		if d.states[i].isMatch {
			matches++
		}
	}
	return fmt.Sprintf("DFA{states: %d, matches: %d, transitions: %d}",
		len(d.states), matches, transitions)
}
