package geo_matrix

import (
	"fmt"
)

// FileAccessError reports a series matrix that could not be opened or read.
// Unwrap exposes the OS error, so errors.Is(err, fs.ErrNotExist) works for a
// missing path.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read series matrix %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a malformed header or data section.
// Line is 1-based; zero means the problem is not tied to a single line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

func parseErrorf(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// LookupError reports a probe ID or tissue group absent from the loaded matrix.
type LookupError struct {
	Kind string // "probe" or "group"
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s ID '%s' not found", e.Kind, e.Key)
}
