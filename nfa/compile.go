package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/lexgen/syntax"
)

// DefaultMaxDepth bounds AST recursion during compilation. Character classes
// lower to alternation chains (one level per member), so the bound is well
// above syntax.MaxClassSize.
const DefaultMaxDepth = 1000

// ErrTooDeep indicates the pattern AST nests deeper than the configured limit
var ErrTooDeep = errors.New("nfa: pattern nests too deeply")

// Config configures NFA compilation behavior
type Config struct {
	// MaxDepth limits recursion during compilation to prevent stack
	// overflow on adversarially nested patterns. Default: DefaultMaxDepth.
	MaxDepth int
}

// DefaultConfig returns a compiler configuration with sensible defaults
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// Builder owns one compilation session: the state-id counter and the
// transition relation shared by every fragment compiled in the session.
//
// The counter is never reset while the session lives, so ids stay globally
// fresh across patterns and across merges. Allocation is sequential, which
// makes automaton shape deterministic run-to-run for a given registration
// order.
type Builder struct {
	config Config
	next   StateID
	trans  map[transKey][]StateID
	depth  int
}

// NewBuilder creates a builder with default configuration.
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultConfig())
}

// NewBuilderWithConfig creates a builder with the given configuration.
func NewBuilderWithConfig(config Config) *Builder {
	if config.MaxDepth == 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	return &Builder{
		config: config,
		trans:  make(map[transKey][]StateID),
	}
}

// States returns the number of states allocated so far.
func (b *Builder) States() int {
	return int(b.next)
}

// alloc returns a fresh state id.
func (b *Builder) alloc() StateID {
	id := b.next
	b.next++
	return id
}

// add inserts (from, sym) → targets into the transition relation.
// The key must be fresh: state ids are globally unique within the session,
// so an existing key means the compiler is broken. Construction aborts
// immediately rather than overwrite and produce a silently wrong automaton.
func (b *Builder) add(from StateID, sym rune, targets ...StateID) {
	key := transKey{from: from, sym: sym}
	if _, ok := b.trans[key]; ok {
		panic(fmt.Sprintf("lexgen: internal error: duplicate transition key (state %d, symbol %q)", from, sym))
	}
	b.trans[key] = targets
}

// Compile builds the Thompson NFA fragment for one pattern AST.
//
// Every case produces a fragment with exactly one start and one accept
// state, and the accept state has no outgoing edges; later constructs attach
// epsilon edges to it exactly once when embedding the fragment.
func (b *Builder) Compile(node syntax.Node) (Fragment, error) {
	b.depth = 0
	return b.compile(node)
}

func (b *Builder) compile(node syntax.Node) (Fragment, error) {
	b.depth++
	defer func() { b.depth-- }()
	if b.depth > b.config.MaxDepth {
		return Fragment{Start: InvalidState, Accept: InvalidState}, ErrTooDeep
	}

	switch n := node.(type) {
	case *syntax.Terminal:
		return b.compileTerminal(n), nil
	case *syntax.Sequence:
		return b.compileSequence(n)
	case *syntax.Alternation:
		return b.compileAlternation(n)
	case *syntax.Repetition:
		return b.compileRepetition(n)
	default:
		panic(fmt.Sprintf("lexgen: internal error: unknown AST node %T", node))
	}
}

// compileTerminal: start --c--> end.
func (b *Builder) compileTerminal(n *syntax.Terminal) Fragment {
	start := b.alloc()
	end := b.alloc()
	b.add(start, n.Ch, end)
	return Fragment{Start: start, Accept: end}
}

// compileSequence threads item fragments left to right through fresh
// junction states:
//
//	start --ε--> f1 --ε--> j1 --ε--> f2 --ε--> j2 ... --ε--> end
//
// An empty sequence still yields start --ε--> end, matching the empty
// string.
func (b *Builder) compileSequence(n *syntax.Sequence) (Fragment, error) {
	start := b.alloc()
	cur := start
	for _, item := range n.Items {
		f, err := b.compile(item)
		if err != nil {
			return Fragment{Start: InvalidState, Accept: InvalidState}, err
		}
		junction := b.alloc()
		b.add(cur, Epsilon, f.Start)
		b.add(f.Accept, Epsilon, junction)
		cur = junction
	}
	if cur == start {
		end := b.alloc()
		b.add(start, Epsilon, end)
		cur = end
	}
	return Fragment{Start: start, Accept: cur}, nil
}

// compileAlternation: a fresh start forks into both branches, both branch
// accepts join into a fresh end.
func (b *Builder) compileAlternation(n *syntax.Alternation) (Fragment, error) {
	start := b.alloc()
	left, err := b.compile(n.Left)
	if err != nil {
		return Fragment{Start: InvalidState, Accept: InvalidState}, err
	}
	right, err := b.compile(n.Right)
	if err != nil {
		return Fragment{Start: InvalidState, Accept: InvalidState}, err
	}
	end := b.alloc()
	b.add(start, Epsilon, left.Start, right.Start)
	b.add(left.Accept, Epsilon, end)
	b.add(right.Accept, Epsilon, end)
	return Fragment{Start: start, Accept: end}, nil
}

// compileRepetition (zero-or-more): the fresh start can skip straight to the
// end (zero occurrences) or enter the inner fragment; the inner accept loops
// back to the inner start (repeat) or exits to the end.
func (b *Builder) compileRepetition(n *syntax.Repetition) (Fragment, error) {
	start := b.alloc()
	inner, err := b.compile(n.Inner)
	if err != nil {
		return Fragment{Start: InvalidState, Accept: InvalidState}, err
	}
	end := b.alloc()
	b.add(start, Epsilon, inner.Start, end)
	b.add(inner.Accept, Epsilon, inner.Start, end)
	return Fragment{Start: start, Accept: end}, nil
}
