package resdata

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-resdata/internal/dtype"
)

// Common errors
var (
	ErrIncompleteRecord = errors.New("incomplete record")
	ErrCorruptRecord    = errors.New("corrupt record")
	ErrUnsupportedType  = dtype.ErrUnsupportedType
	ErrInvalidLiteral   = errors.New("invalid literal")
	ErrNameTooLong      = errors.New("keyword name too long")
	ErrKeywordNotFound  = errors.New("keyword not found")
	ErrTypeMismatch     = errors.New("keyword type mismatch")
	ErrChecksumMismatch = errors.New("record checksum mismatch")
	ErrUnknownFormat    = errors.New("not a keyword file")
)

// FormatError reports a malformed keyword stream. Offset is the byte offset
// at which the problem was detected and Keyword is the name of the record
// being decoded, when known.
type FormatError struct {
	Offset  int64
	Keyword string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("keyword %q at offset %d: %v", e.Keyword, e.Offset, e.Err)
	}
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(offset int64, keyword string, kind, detail error) error {
	err := kind
	switch {
	case detail == nil:
	case errors.Is(detail, kind):
		err = detail
	default:
		err = fmt.Errorf("%w: %w", kind, detail)
	}
	return &FormatError{Offset: offset, Keyword: keyword, Err: err}
}
