package syntax

import (
	"fmt"
	resyntax "regexp/syntax"
)

// MaxClassSize limits how many characters a character class may contain
// before parsing rejects it. Classes are lowered to alternation chains over
// their members, so unbounded classes like [^a] or . would explode into
// thousands of branches.
const MaxClassSize = 128

// ParseError describes why a pattern could not be parsed or lowered.
type ParseError struct {
	// Pattern is the offending pattern source.
	Pattern string

	// Offset is the byte offset of the problem within Pattern,
	// or -1 when the position is unknown.
	Offset int

	// Message describes the problem.
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("syntax: parsing %q at offset %d: %s", e.Pattern, e.Offset, e.Message)
	}
	return fmt.Sprintf("syntax: parsing %q: %s", e.Pattern, e.Message)
}

// Parse parses a regex pattern into the four-node AST.
//
// Parsing is delegated to regexp/syntax; the resulting tree is then lowered
// into {Terminal, Sequence, Alternation, Repetition}. Surface conveniences
// that lower losslessly are accepted:
//
//	[abc], [a-z]  →  alternation chain over the class members
//	x+            →  x·x*
//	x?            →  x|ε
//	a|b|c         →  nested binary alternations
//	(x)           →  x (grouping only; captures carry no meaning here)
//
// Constructs with no equivalent in the core AST (anchors, word boundaries,
// dot, negated or oversized classes, counted repetition) are rejected with a
// *ParseError.
func Parse(pattern string) (Node, error) {
	re, err := resyntax.Parse(pattern, resyntax.Perl)
	if err != nil {
		msg := err.Error()
		if serr, ok := err.(*resyntax.Error); ok {
			msg = string(serr.Code)
			if serr.Expr != "" {
				msg += ": " + serr.Expr
			}
		}
		return nil, &ParseError{Pattern: pattern, Offset: -1, Message: msg}
	}
	return lower(re, pattern)
}

// lower converts a regexp/syntax tree into the core AST.
func lower(re *resyntax.Regexp, pattern string) (Node, error) {
	switch re.Op {
	case resyntax.OpEmptyMatch:
		return &Sequence{}, nil

	case resyntax.OpLiteral:
		if re.Flags&resyntax.FoldCase != 0 {
			return nil, unsupported(pattern, "case-insensitive literal")
		}
		if len(re.Rune) == 1 {
			return &Terminal{Ch: re.Rune[0]}, nil
		}
		items := make([]Node, len(re.Rune))
		for i, r := range re.Rune {
			items[i] = &Terminal{Ch: r}
		}
		return &Sequence{Items: items}, nil

	case resyntax.OpCharClass:
		return lowerClass(re, pattern)

	case resyntax.OpConcat:
		items := make([]Node, 0, len(re.Sub))
		for _, sub := range re.Sub {
			node, err := lower(sub, pattern)
			if err != nil {
				return nil, err
			}
			items = append(items, node)
		}
		return &Sequence{Items: items}, nil

	case resyntax.OpAlternate:
		return lowerAlternate(re.Sub, pattern)

	case resyntax.OpStar:
		inner, err := lower(re.Sub[0], pattern)
		if err != nil {
			return nil, err
		}
		return &Repetition{Inner: inner}, nil

	case resyntax.OpPlus:
		// x+ is x·x*. The inner node is shared between both positions;
		// nodes are immutable so sharing is safe.
		inner, err := lower(re.Sub[0], pattern)
		if err != nil {
			return nil, err
		}
		return &Sequence{Items: []Node{inner, &Repetition{Inner: inner}}}, nil

	case resyntax.OpQuest:
		inner, err := lower(re.Sub[0], pattern)
		if err != nil {
			return nil, err
		}
		return &Alternation{Left: inner, Right: &Sequence{}}, nil

	case resyntax.OpCapture:
		// Groups exist only for precedence; captures carry no meaning.
		return lower(re.Sub[0], pattern)

	case resyntax.OpRepeat:
		return nil, unsupported(pattern, fmt.Sprintf("counted repetition {%d,%d}", re.Min, re.Max))

	case resyntax.OpAnyChar, resyntax.OpAnyCharNotNL:
		return nil, unsupported(pattern, "'.' (unbounded character class)")

	case resyntax.OpBeginLine, resyntax.OpEndLine, resyntax.OpBeginText, resyntax.OpEndText:
		return nil, unsupported(pattern, "anchor")

	case resyntax.OpWordBoundary, resyntax.OpNoWordBoundary:
		return nil, unsupported(pattern, "word boundary")

	case resyntax.OpNoMatch:
		return nil, unsupported(pattern, "empty character class")

	default:
		return nil, unsupported(pattern, fmt.Sprintf("operator %v", re.Op))
	}
}

// lowerClass expands a character class into an alternation chain over its
// members. re.Rune holds inclusive [lo, hi] pairs.
func lowerClass(re *resyntax.Regexp, pattern string) (Node, error) {
	size := 0
	for i := 0; i < len(re.Rune); i += 2 {
		size += int(re.Rune[i+1]-re.Rune[i]) + 1
		if size > MaxClassSize {
			return nil, unsupported(pattern,
				fmt.Sprintf("character class with more than %d characters", MaxClassSize))
		}
	}
	if size == 0 {
		return nil, unsupported(pattern, "empty character class")
	}

	members := make([]Node, 0, size)
	for i := 0; i < len(re.Rune); i += 2 {
		for r := re.Rune[i]; r <= re.Rune[i+1]; r++ {
			members = append(members, &Terminal{Ch: r})
		}
	}
	return foldAlternate(members), nil
}

// lowerAlternate folds an n-way alternation into nested binary alternations.
func lowerAlternate(subs []*resyntax.Regexp, pattern string) (Node, error) {
	branches := make([]Node, 0, len(subs))
	for _, sub := range subs {
		node, err := lower(sub, pattern)
		if err != nil {
			return nil, err
		}
		branches = append(branches, node)
	}
	return foldAlternate(branches), nil
}

// foldAlternate right-folds nodes into binary Alternations.
// Right association keeps the first branch shallowest, preserving
// registration-independent shape for identical inputs.
func foldAlternate(nodes []Node) Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return &Alternation{Left: nodes[0], Right: foldAlternate(nodes[1:])}
}

func unsupported(pattern, what string) *ParseError {
	return &ParseError{Pattern: pattern, Offset: -1, Message: "unsupported: " + what}
}
