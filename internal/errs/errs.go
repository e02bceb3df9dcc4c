// Package errs defines the error taxonomy shared by the extraction pipeline.
//
// Structural problems (a missing workbook, an unrecognized section, a table with no
// extraction instructions) surface as *Error values carrying a Kind. Data-quality
// problems are not errors; see the cleanse package diagnostics.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnsupportedType
	KindProcessing
	KindConfiguration
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnsupportedType:
		return "unsupported type"
	case KindProcessing:
		return "processing error"
	case KindConfiguration:
		return "configuration error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks. Every *Error matches the sentinel of its Kind.
var (
	ErrNotFound        = errors.New("file not found")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrProcessing      = errors.New("processing error")
	ErrConfiguration   = errors.New("configuration error")
)

// Error is a structural failure raised by one pipeline stage.
type Error struct {
	Kind    Kind
	Op      string // stage or operation, e.g. "locate", "classify", "extract"
	Subject string // path, section or table name the failure is about
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s %q", e.Op, e.Kind, e.Subject)
	}
	return fmt.Sprintf("%s: %s %q: %v", e.Op, e.Kind, e.Subject, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindProcessing:
		return ErrProcessing
	case KindConfiguration:
		return ErrConfiguration
	default:
		return nil
	}
}

// NotFound creates a KindNotFound error for path.
func NotFound(op, path string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Subject: path, Err: err}
}

// Unsupported creates a KindUnsupportedType error.
func Unsupported(op, subject string, err error) *Error {
	return &Error{Kind: KindUnsupportedType, Op: op, Subject: subject, Err: err}
}

// Processing creates a KindProcessing error for a logical table.
func Processing(op, table string, err error) *Error {
	return &Error{Kind: KindProcessing, Op: op, Subject: table, Err: err}
}

// Configuration creates a KindConfiguration error.
func Configuration(op, subject string, err error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Subject: subject, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
