package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an error so callers can decide between failing fast and carrying on.
type Kind uint8

const (
	Other Kind = iota
	Invalid
	Config
	Serialization
	Publish
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Config:
		return "config"
	case Serialization:
		return "serialization"
	case Publish:
		return "publish"
	case Unavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// Error is a kinded error with an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// E builds a new kinded error. err may be nil.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the outermost *Error in the chain, Other if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether err carries the given kind.
func Is(kind Kind, err error) bool {
	return err != nil && KindOf(err) == kind
}

// ValidationErrors collects field level violations, keeping insertion order.
type ValidationErrors struct {
	fields []string
	msgs   map[string][]string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{msgs: make(map[string][]string)}
}

// Add records a violation for field.
func (ve *ValidationErrors) Add(field, msg string) {
	if _, ok := ve.msgs[field]; !ok {
		ve.fields = append(ve.fields, field)
	}
	ve.msgs[field] = append(ve.msgs[field], msg)
}

// Len returns the number of fields with at least one violation.
func (ve *ValidationErrors) Len() int { return len(ve.fields) }

// Fields returns the violating fields in the order they were added.
func (ve *ValidationErrors) Fields() []string {
	out := make([]string, len(ve.fields))
	copy(out, ve.fields)
	return out
}

// Err returns nil when nothing was added.
func (ve *ValidationErrors) Err() error {
	if len(ve.fields) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationErrors) Error() string {
	parts := make([]string, 0, len(ve.fields))
	for _, f := range ve.fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, strings.Join(ve.msgs[f], ", ")))
	}
	return strings.Join(parts, "; ")
}
