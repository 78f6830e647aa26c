// Package literal provides a fast scanning path for pattern sets made up
// entirely of plain literals.
//
// Keyword-style token tables (if, while, operators, punctuation) need no
// regex machinery at all: an Aho-Corasick automaton over the literal set
// answers whether any literal occurs at or after the cursor, and a small
// per-first-byte candidate table confirms the longest literal at the cursor
// with registration-order tie-break. The candidate-then-confirm split keeps
// the result independent of the automaton's match-kind: only its "no match
// found ⇒ nothing matches here" direction is relied on, which holds for
// every match kind.
package literal

import (
	"sort"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/lexgen/syntax"
)

// Extract reports whether every AST is a plain non-empty literal, and if so
// returns the literal texts in registration order.
//
// A literal AST is a Terminal or a Sequence of literal ASTs. Alternation and
// repetition disqualify the set, as does the empty literal (it would match
// without consuming input, which the scanner rejects anyway).
func Extract(nodes []syntax.Node) ([]string, bool) {
	texts := make([]string, len(nodes))
	for i, node := range nodes {
		runes, ok := flatten(node, nil)
		if !ok || len(runes) == 0 {
			return nil, false
		}
		texts[i] = string(runes)
	}
	return texts, true
}

func flatten(node syntax.Node, runes []rune) ([]rune, bool) {
	switch n := node.(type) {
	case *syntax.Terminal:
		return append(runes, n.Ch), true
	case *syntax.Sequence:
		ok := true
		for _, item := range n.Items {
			runes, ok = flatten(item, runes)
			if !ok {
				return nil, false
			}
		}
		return runes, true
	default:
		return nil, false
	}
}

// candidate is one literal that can match at a position.
type candidate struct {
	text    string
	pattern int // registration order
}

// Scanner matches literals with maximal-munch semantics.
type Scanner struct {
	auto *ahocorasick.Automaton

	// byFirst groups candidates by their first byte, longest first and
	// ties broken by registration order, so the first prefix hit at a
	// position is the winner.
	byFirst map[byte][]candidate
}

// NewScanner builds a literal scanner over texts, where each text's index is
// its pattern's registration order. Texts must be non-empty.
func NewScanner(texts []string) (*Scanner, error) {
	builder := ahocorasick.NewBuilder()
	for _, text := range texts {
		builder.AddPattern([]byte(text))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}

	byFirst := make(map[byte][]candidate)
	for i, text := range texts {
		b := text[0]
		byFirst[b] = append(byFirst[b], candidate{text: text, pattern: i})
	}
	for b := range byFirst {
		cands := byFirst[b]
		sort.SliceStable(cands, func(i, j int) bool {
			if len(cands[i].text) != len(cands[j].text) {
				return len(cands[i].text) > len(cands[j].text)
			}
			return cands[i].pattern < cands[j].pattern
		})
	}

	return &Scanner{auto: auto, byFirst: byFirst}, nil
}

// Next finds the longest literal starting exactly at pos in text.
// It returns the winning pattern's registration order and the position just
// past the match. ok is false when no literal matches at pos.
func (s *Scanner) Next(text string, pos int) (pattern, end int, ok bool) {
	// Fast rejection: if the automaton finds nothing at or after pos, no
	// literal can match at pos. A non-nil find only means "something
	// matches somewhere"; the confirm step decides what matches here.
	if m := s.auto.Find([]byte(text), pos); m == nil {
		return 0, 0, false
	}

	// Confirm: the longest literal that is a prefix of text[pos:] wins;
	// candidates are pre-sorted longest first, registration order second.
	rest := text[pos:]
	for _, c := range s.byFirst[text[pos]] {
		if len(c.text) <= len(rest) && rest[:len(c.text)] == c.text {
			return c.pattern, pos + len(c.text), true
		}
	}
	return 0, 0, false
}
