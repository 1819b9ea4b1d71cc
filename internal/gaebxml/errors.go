package gaebxml

import "fmt"

// ParseError reports a file that could not be parsed as XML at all.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError reports well-formed XML that is not a GAEB DA XML document,
// typically a missing or unrecognized namespace.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}
