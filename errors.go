package lexgen

import "fmt"

// PatternError reports that a pattern handed to Register could not be used.
// It wraps the parser or compiler diagnostic.
type PatternError struct {
	// Pattern is the offending pattern source.
	Pattern string

	// Err is the underlying diagnostic, typically a *syntax.ParseError.
	Err error
}

// Error implements the error interface
func (e *PatternError) Error() string {
	return fmt.Sprintf("lexgen: invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying diagnostic
func (e *PatternError) Unwrap() error {
	return e.Err
}

// ScanError reports that no registered pattern matches the input at Offset.
type ScanError struct {
	// Offset is the byte offset into the input where the failing match
	// attempt began.
	Offset int
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("lexgen: no token matches input at offset %d", e.Offset)
}
