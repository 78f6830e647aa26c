// Package lexgen generates lexical analyzers from (pattern, token) pairs.
//
// Each pattern is a regular expression; lexgen compiles every pattern into a
// Thompson NFA, merges them into one multi-pattern automaton, determinizes
// it by subset construction and scans input with maximal-munch semantics:
// the longest possible prefix is matched at every position, with ties broken
// by registration order (first registered wins).
//
// Basic usage:
//
//	lx := lexgen.New[string]()
//	lx.MustRegister("if", "IF")
//	lx.MustRegister("while", "WHILE")
//	lx.MustRegister("[a-z]+", "IDENT")
//
//	tokens, err := lx.Scan("ifwhilefoo")
//	// tokens = ["IF", "WHILE", "IDENT"]
//
// The token payload is an opaque, copyable value; lexgen never inspects it.
// Automata are rebuilt lazily: registering after a scan marks the lexer
// dirty and the next scan rebuilds. A lexer is not safe for concurrent
// mutation, but once built, any number of goroutines may scan.
//
// When every registered pattern is a plain literal (a keyword/operator
// table), scanning bypasses the DFA for an Aho-Corasick based fast path with
// identical semantics.
package lexgen

import (
	"iter"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/literal"
	"github.com/coregx/lexgen/nfa"
	"github.com/coregx/lexgen/syntax"
)

// Config configures automaton construction limits and strategy.
type Config struct {
	// MaxStates caps the DFA size during subset construction.
	// Zero means dfa.DefaultMaxStates.
	MaxStates int

	// MaxDepth limits pattern AST nesting during compilation.
	// Zero means nfa.DefaultMaxDepth.
	MaxDepth int

	// UseLiteralScanner enables the Aho-Corasick fast path when every
	// registered pattern is a plain literal. Semantics are identical to
	// the DFA path; this is purely a construction/speed trade.
	UseLiteralScanner bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxStates:         dfa.DefaultMaxStates,
		MaxDepth:          nfa.DefaultMaxDepth,
		UseLiteralScanner: true,
	}
}

// Lexer scans input text into tokens of type T.
//
// The zero value is not usable; create one with New or NewWithConfig.
type Lexer[T any] struct {
	config  Config
	builder *nfa.Builder

	// Registered patterns, parallel by index; the index is the pattern's
	// registration order and its disambiguation priority.
	fragments []nfa.Fragment
	asts      []syntax.Node
	tokens    []T

	// Built engines, valid while dirty is false. Exactly one of dfa/lit
	// is non-nil after a successful build.
	dfa   *dfa.DFA
	lit   *literal.Scanner
	dirty bool
}

// New creates a lexer with the default configuration.
func New[T any]() *Lexer[T] {
	return NewWithConfig[T](DefaultConfig())
}

// NewWithConfig creates a lexer with the given configuration.
func NewWithConfig[T any](config Config) *Lexer[T] {
	return &Lexer[T]{
		config:  config,
		builder: nfa.NewBuilderWithConfig(nfa.Config{MaxDepth: config.MaxDepth}),
	}
}

// Register parses and compiles pattern and appends it to the pattern list
// with the given token. Patterns registered earlier win disambiguation ties.
//
// Registration does not build the scanning automaton; that happens lazily on
// the next Scan or Tokens call. A failed Register leaves the lexer unchanged
// apart from dead states in the compilation session.
func (l *Lexer[T]) Register(pattern string, token T) error {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}
	frag, err := l.builder.Compile(node)
	if err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}
	l.fragments = append(l.fragments, frag)
	l.asts = append(l.asts, node)
	l.tokens = append(l.tokens, token)
	l.dirty = true
	return nil
}

// MustRegister is like Register but panics on error.
// Useful for token tables known to be valid at compile time.
func (l *Lexer[T]) MustRegister(pattern string, token T) {
	if err := l.Register(pattern, token); err != nil {
		panic("lexgen: Register(`" + pattern + "`): " + err.Error())
	}
}

// Patterns returns the number of registered patterns.
func (l *Lexer[T]) Patterns() int {
	return len(l.fragments)
}

// Scan tokenizes text into the full token sequence using maximal munch.
//
// With no registered patterns the result is empty for any input. On
// unrecognized input Scan returns a *ScanError carrying the byte offset
// where the failing match attempt began; construction failures (pattern set
// determinizes past Config.MaxStates) surface as dfa.ErrTooManyStates.
func (l *Lexer[T]) Scan(text string) ([]T, error) {
	var tokens []T
	for token, err := range l.Tokens(text) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// Tokens returns a lazy token sequence over text.
//
// The sequence is finite and restartable: every call starts from a fresh
// cursor and yields identical results for identical inputs. If scanning
// fails, the final yield carries a zero-valued token and the error.
func (l *Lexer[T]) Tokens(text string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if len(l.fragments) == 0 {
			return
		}
		if err := l.build(); err != nil {
			var zero T
			yield(zero, err)
			return
		}
		if l.lit != nil {
			l.scanLiteral(text, yield)
			return
		}
		l.scanDFA(text, yield)
	}
}

// build (re)constructs the scanning engine if the pattern set changed since
// the last build. The state-id counter is shared across builds of one lexer
// and is never reset, so rebuilt automata never alias old state ids.
func (l *Lexer[T]) build() error {
	if !l.dirty {
		return nil
	}

	l.dfa = nil
	l.lit = nil
	if l.config.UseLiteralScanner {
		if texts, ok := literal.Extract(l.asts); ok {
			lit, err := literal.NewScanner(texts)
			if err == nil {
				l.lit = lit
				l.dirty = false
				return nil
			}
			// Fall through to the DFA path; the literal scanner is
			// an optimization, never a requirement.
		}
	}

	merged := l.builder.Merge(l.fragments)
	d, err := dfa.Determinize(merged, dfa.Config{MaxStates: l.config.MaxStates})
	if err != nil {
		return err
	}
	l.dfa = d
	l.dirty = false
	return nil
}
