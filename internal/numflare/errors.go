package numflare

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned by Encode for non-finite numbers and
	// negative widths or decimal counts.
	ErrInvalidValue = errors.New("numflare: invalid value")
	// ErrParse is wrapped by every *ParseError returned from Decode.
	ErrParse = errors.New("numflare: parse error")
)

// ParseError describes a token that does not follow the token grammar.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("numflare: decode %q: %s", e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func parseErr(token, reason string) error {
	return &ParseError{Token: token, Reason: reason}
}
