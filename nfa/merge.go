package nfa

import "fmt"

// Merge combines per-pattern fragments into one multi-pattern NFA: a fresh
// global start state fans out via epsilon edges to every fragment's start,
// and the accept map records each fragment's accept state against its
// position in fragments (its registration order, the tie-break key).
//
// Fragments must come from this builder's session. Accept-state collisions
// are structurally impossible given global id allocation, but Merge checks
// defensively and panics on violation: a collision means the compiler is
// broken and the automaton cannot be trusted.
//
// The returned NFA snapshots the transition relation, so compiling further
// patterns in the session leaves it untouched.
func (b *Builder) Merge(fragments []Fragment) *NFA {
	start := b.alloc()

	accepts := make(map[StateID]PatternID, len(fragments))
	starts := make([]StateID, 0, len(fragments))
	for i, f := range fragments {
		if f.Start == InvalidState || f.Accept == InvalidState {
			panic(fmt.Sprintf("lexgen: internal error: merging invalid fragment at index %d", i))
		}
		if prev, ok := accepts[f.Accept]; ok {
			panic(fmt.Sprintf("lexgen: internal error: accept state %d shared by patterns %d and %d",
				f.Accept, prev, i))
		}
		accepts[f.Accept] = PatternID(i)
		starts = append(starts, f.Start)
	}
	if len(starts) > 0 {
		b.add(start, Epsilon, starts...)
	}

	// Snapshot the table. Target slices are never appended to after
	// insertion (add panics on key reuse), so sharing them is safe.
	trans := make(map[transKey][]StateID, len(b.trans))
	for k, v := range b.trans {
		trans[k] = v
	}

	return &NFA{
		start:   start,
		states:  uint32(b.next),
		trans:   trans,
		accepts: accepts,
	}
}
