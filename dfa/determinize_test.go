package dfa

import (
	"errors"
	"testing"

	"github.com/coregx/lexgen/nfa"
	"github.com/coregx/lexgen/syntax"
)

func buildNFA(t *testing.T, patterns ...string) *nfa.NFA {
	t.Helper()
	b := nfa.NewBuilder()
	frags := make([]nfa.Fragment, 0, len(patterns))
	for _, p := range patterns {
		node, err := syntax.Parse(p)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		frag, err := b.Compile(node)
		if err != nil {
			t.Fatalf("Compile(%q): %v", p, err)
		}
		frags = append(frags, frag)
	}
	return b.Merge(frags)
}

// accepts walks the DFA over the whole input and reports the match state.
func accepts(d *DFA, input string) (nfa.PatternID, bool) {
	state := d.Start()
	for _, r := range input {
		next, ok := d.Next(state, r)
		if !ok {
			return 0, false
		}
		state = next
	}
	return d.Match(state)
}

// TestDeterminize_LanguageEquivalence tests that for all bounded-length
// strings the DFA accepts exactly what direct epsilon-closure simulation
// over the NFA accepts, with the same winning pattern.
func TestDeterminize_LanguageEquivalence(t *testing.T) {
	n := buildNFA(t, "(a|b)*a", "ab", "b*")
	d, err := Determinize(n, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	alphabet := []rune{'a', 'b'}
	var walk func(prefix string, depth int)
	walk = func(prefix string, depth int) {
		wantP, wantOK := n.Simulate(prefix)
		gotP, gotOK := accepts(d, prefix)
		if wantOK != gotOK || (wantOK && wantP != gotP) {
			t.Errorf("disagreement on %q: NFA (%d, %v), DFA (%d, %v)",
				prefix, wantP, wantOK, gotP, gotOK)
		}
		if depth == 0 {
			return
		}
		for _, r := range alphabet {
			walk(prefix+string(r), depth-1)
		}
	}
	walk("", 6)
}

// TestDeterminize_TieBreak tests that a composite accept state resolves to
// the lowest registration order.
func TestDeterminize_TieBreak(t *testing.T) {
	// Both patterns accept exactly "a"; pattern 0 must win.
	n := buildNFA(t, "a", "a|a")
	d, err := Determinize(n, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	p, ok := accepts(d, "a")
	if !ok || p != 0 {
		t.Fatalf("accepts(\"a\") = (%d, %v), want (0, true)", p, ok)
	}
}

// TestDeterminize_SubsetCollapse tests that identical subsets are memoized
// into a single DFA state: a* loops back to the same state forever.
func TestDeterminize_SubsetCollapse(t *testing.T) {
	n := buildNFA(t, "a*")
	d, err := Determinize(n, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	state := d.Start()
	next, ok := d.Next(state, 'a')
	if !ok {
		t.Fatal("no transition on 'a' from start")
	}
	again, ok := d.Next(next, 'a')
	if !ok || again != next {
		t.Errorf("a* loop not collapsed: %d then %d", next, again)
	}
	if d.States() > 2 {
		t.Errorf("States() = %d for a*, want at most 2", d.States())
	}
}

// TestDeterminize_MaxStates tests the powerset blowup guard.
func TestDeterminize_MaxStates(t *testing.T) {
	n := buildNFA(t, "abc")
	_, err := Determinize(n, Config{MaxStates: 1})
	if !errors.Is(err, ErrTooManyStates) {
		t.Fatalf("err = %v, want ErrTooManyStates", err)
	}

	if _, err := Determinize(n, DefaultConfig()); err != nil {
		t.Fatalf("default config failed: %v", err)
	}
}

// TestDeterminize_NonAcceptingStart tests that the start state only accepts
// when a pattern matches the empty string.
func TestDeterminize_NonAcceptingStart(t *testing.T) {
	n := buildNFA(t, "ab")
	d, err := Determinize(n, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Match(d.Start()); ok {
		t.Error("start state accepting for pattern \"ab\"")
	}

	n = buildNFA(t, "a*")
	d, err = Determinize(n, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Match(d.Start()); !ok {
		t.Error("start state not accepting for pattern \"a*\"")
	}
}
