package syntax

import (
	"errors"
	"strings"
	"testing"
)

// TestParse_Accepted tests that supported surface syntax parses and lowers.
func TestParse_Accepted(t *testing.T) {
	tests := []struct {
		pattern string
	}{
		{"a"},
		{"if"},
		{"while"},
		{""},
		{"(0|1)|2"},
		{"a|b|c"},
		{"[abc]"},
		{"[a-z]"},
		{"[a-zA-Z0-9]"},
		{"[a-z]+"},
		{"ab*"},
		{"(ab)*"},
		{"colou?r"},
		{"((a|b)*c)+"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			node, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("expected success, got error: %v", err)
			}
			if node == nil {
				t.Fatal("nil node without error")
			}
		})
	}
}

// TestParse_Rejected tests rejection of constructs outside the core AST.
func TestParse_Rejected(t *testing.T) {
	tests := []struct {
		pattern string
		want    string // substring of the diagnostic
	}{
		{"(", ""},
		{"a{2,5}", "counted repetition"},
		{".", "unbounded character class"},
		{"[^a]", "character class"},
		{"^a", "anchor"},
		{"a$", "anchor"},
		{`a\b`, "word boundary"},
		{"(?i)abc", "case-insensitive"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatal("expected error, got success")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if perr.Pattern != tt.pattern {
				t.Errorf("ParseError.Pattern = %q, want %q", perr.Pattern, tt.pattern)
			}
			if tt.want != "" && !strings.Contains(perr.Message, tt.want) {
				t.Errorf("diagnostic %q does not mention %q", perr.Message, tt.want)
			}
		})
	}
}

// TestParse_LoweringShapes pins the lowering of a few fixed patterns.
func TestParse_LoweringShapes(t *testing.T) {
	t.Run("single char is a terminal", func(t *testing.T) {
		node, err := Parse("a")
		if err != nil {
			t.Fatal(err)
		}
		term, ok := node.(*Terminal)
		if !ok {
			t.Fatalf("got %T, want *Terminal", node)
		}
		if term.Ch != 'a' {
			t.Errorf("Ch = %q, want 'a'", term.Ch)
		}
	})

	t.Run("literal string is a terminal sequence", func(t *testing.T) {
		node, err := Parse("if")
		if err != nil {
			t.Fatal(err)
		}
		seq, ok := node.(*Sequence)
		if !ok {
			t.Fatalf("got %T, want *Sequence", node)
		}
		if len(seq.Items) != 2 {
			t.Fatalf("len(Items) = %d, want 2", len(seq.Items))
		}
		for i, want := range []rune{'i', 'f'} {
			term, ok := seq.Items[i].(*Terminal)
			if !ok || term.Ch != want {
				t.Errorf("Items[%d] = %v, want terminal %q", i, seq.Items[i], want)
			}
		}
	})

	t.Run("empty pattern is an empty sequence", func(t *testing.T) {
		node, err := Parse("")
		if err != nil {
			t.Fatal(err)
		}
		seq, ok := node.(*Sequence)
		if !ok {
			t.Fatalf("got %T, want *Sequence", node)
		}
		if len(seq.Items) != 0 {
			t.Errorf("len(Items) = %d, want 0", len(seq.Items))
		}
	})

	t.Run("star wraps a repetition", func(t *testing.T) {
		node, err := Parse("(ab)*")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := node.(*Repetition); !ok {
			t.Fatalf("got %T, want *Repetition", node)
		}
	})

	t.Run("plus lowers to x then x star", func(t *testing.T) {
		node, err := Parse("a+")
		if err != nil {
			t.Fatal(err)
		}
		seq, ok := node.(*Sequence)
		if !ok {
			t.Fatalf("got %T, want *Sequence", node)
		}
		if len(seq.Items) != 2 {
			t.Fatalf("len(Items) = %d, want 2", len(seq.Items))
		}
		if _, ok := seq.Items[1].(*Repetition); !ok {
			t.Errorf("Items[1] = %T, want *Repetition", seq.Items[1])
		}
	})

	t.Run("class lowers to alternation chain", func(t *testing.T) {
		node, err := Parse("[ab]")
		if err != nil {
			t.Fatal(err)
		}
		alt, ok := node.(*Alternation)
		if !ok {
			t.Fatalf("got %T, want *Alternation", node)
		}
		left, ok := alt.Left.(*Terminal)
		if !ok || left.Ch != 'a' {
			t.Errorf("Left = %v, want terminal 'a'", alt.Left)
		}
		right, ok := alt.Right.(*Terminal)
		if !ok || right.Ch != 'b' {
			t.Errorf("Right = %v, want terminal 'b'", alt.Right)
		}
	})
}

// TestParse_ClassSizeLimit tests the MaxClassSize guard.
func TestParse_ClassSizeLimit(t *testing.T) {
	// \x00-\x7f plus enough of Unicode to blow the limit.
	if _, err := Parse(`[\x{0000}-\x{1000}]`); err == nil {
		t.Fatal("expected oversized class to be rejected")
	}
	if _, err := Parse("[a-z0-9]"); err != nil {
		t.Fatalf("36-character class should be accepted, got %v", err)
	}
}

// TestNodeString tests the debug representations.
func TestNodeString(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Terminal{Ch: 'a'}, `'a'`},
		{&Sequence{}, "ε"},
		{&Repetition{Inner: &Terminal{Ch: 'x'}}, `'x'*`},
		{
			&Alternation{Left: &Terminal{Ch: 'a'}, Right: &Terminal{Ch: 'b'}},
			`('a'|'b')`,
		},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
