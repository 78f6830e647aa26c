package lexgen

import (
	"unicode/utf8"

	"github.com/coregx/lexgen/nfa"
)

// scanDFA drives the DFA over text with maximal munch.
//
// Each run starts at the current cursor in the DFA start state and keeps a
// checkpoint of the most recent accepting position and its winning pattern.
// When the run stalls (no transition, or end of input) the checkpoint token
// is emitted and scanning resumes from the checkpoint; a run with no
// checkpoint is unrecognized input at the run's starting offset.
//
// A checkpoint that has not advanced past the run start (an empty match) is
// treated as stuck: emitting it would loop forever without consuming input.
func (l *Lexer[T]) scanDFA(text string, yield func(T, error) bool) {
	d := l.dfa
	pos := 0
	for pos < len(text) {
		runStart := pos
		state := d.Start()
		cur := pos
		lastEnd := -1
		var lastPattern nfa.PatternID

		for {
			if p, ok := d.Match(state); ok {
				lastEnd = cur
				lastPattern = p
			}
			if cur >= len(text) {
				break
			}
			r, size := utf8.DecodeRuneInString(text[cur:])
			next, ok := d.Next(state, r)
			if !ok {
				break
			}
			state = next
			cur += size
		}

		if lastEnd <= runStart {
			var zero T
			yield(zero, &ScanError{Offset: runStart})
			return
		}
		if !yield(l.tokens[lastPattern], nil) {
			return
		}
		pos = lastEnd
	}
}

// scanLiteral is the literal fast path: same contract as scanDFA, with the
// longest-literal-at-cursor decision delegated to the literal scanner.
func (l *Lexer[T]) scanLiteral(text string, yield func(T, error) bool) {
	pos := 0
	for pos < len(text) {
		pattern, end, ok := l.lit.Next(text, pos)
		if !ok {
			var zero T
			yield(zero, &ScanError{Offset: pos})
			return
		}
		if !yield(l.tokens[pattern], nil) {
			return
		}
		pos = end
	}
}
