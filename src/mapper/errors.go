package mapper

import "errors"

var (
	// ErrParse indicates the source text is not well-formed XML.
	ErrParse = errors.New("source XML parsing failed")
	// ErrValidation indicates a recognized field failed typed coercion or a
	// value constraint. The whole document is rejected; there is no partial
	// fallback.
	ErrValidation = errors.New("field validation failed")
)
