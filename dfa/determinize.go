package dfa

import (
	"errors"

	"github.com/coregx/lexgen/nfa"
)

// DefaultMaxStates bounds the number of DFA states. Subset construction is
// exponential in the worst case; typical token grammars stay far below this.
const DefaultMaxStates = 10000

// ErrTooManyStates indicates subset construction exceeded Config.MaxStates
var ErrTooManyStates = errors.New("dfa: too many states")

// Config configures determinization limits
type Config struct {
	// MaxStates caps the DFA size. Zero means DefaultMaxStates.
	MaxStates int
}

// DefaultConfig returns a determinization configuration with sensible defaults
func DefaultConfig() Config {
	return Config{MaxStates: DefaultMaxStates}
}

// Determinize runs eager worklist subset construction over n.
//
// The start state is the epsilon-closure of the NFA start. For every
// unexplored DFA state and every symbol in the NFA alphabet, the reachable
// subset is closure(move(subset, symbol)); each distinct subset becomes one
// DFA state, found by exact lookup on the canonical sorted id sequence.
// Returns ErrTooManyStates if the construction exceeds cfg.MaxStates.
func Determinize(n *nfa.NFA, cfg Config) (*DFA, error) {
	if cfg.MaxStates == 0 {
		cfg.MaxStates = DefaultMaxStates
	}
	alphabet := n.Alphabet()

	startSet := n.EpsilonClosure([]nfa.StateID{n.Start()})
	d := &DFA{states: []State{newState(n, startSet)}}
	subsets := [][]nfa.StateID{startSet}
	index := map[string]StateID{subsetKey(startSet): Start}

	// Worklist of unexplored DFA states. Appending while iterating is
	// deliberate: newly discovered states are explored in discovery order.
	for cur := StateID(0); int(cur) < len(subsets); cur++ {
		for _, sym := range alphabet {
			moved := n.Move(subsets[cur], sym)
			if len(moved) == 0 {
				continue
			}
			next := n.EpsilonClosure(moved)
			key := subsetKey(next)
			id, ok := index[key]
			if !ok {
				if len(d.states) >= cfg.MaxStates {
					return nil, ErrTooManyStates
				}
				id = StateID(len(d.states))
				d.states = append(d.states, newState(n, next))
				subsets = append(subsets, next)
				index[key] = id
			}
			d.states[cur].transitions[sym] = id
		}
	}

	return d, nil
}

// newState builds the DFA state for a closed subset, resolving composite
// accepts to the lowest-registered pattern.
func newState(n *nfa.NFA, subset []nfa.StateID) State {
	pattern, isMatch := n.Accept(subset)
	return State{
		transitions: make(map[rune]StateID),
		isMatch:     isMatch,
		pattern:     pattern,
	}
}

// subsetKey encodes a canonical (sorted) subset as an exact memo key,
// 4 bytes per state id. Exact keys need no collision handling.
func subsetKey(subset []nfa.StateID) string {
	buf := make([]byte, 0, len(subset)*4)
	for _, id := range subset {
		buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(buf)
}
