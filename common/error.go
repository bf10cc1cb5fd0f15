package common

import "strings"

// Error carries a message and an optional base error. errors.Is and errors.As
// walk through the base, so a contextual error still matches its kind.
type Error struct {
	info string
	base error
}

func (e *Error) Error() string {
	if e.base == nil {
		return e.info
	}
	var b strings.Builder
	b.WriteString(e.info)
	b.WriteString(" | ")
	b.WriteString(e.base.Error())
	return b.String()
}

// Base sets the underlying error and returns e.
func (e *Error) Base(err error) *Error {
	e.base = err
	return e
}

func (e *Error) Unwrap() error {
	return e.base
}

func NewError(info string) *Error {
	return &Error{
		info: info,
	}
}

// Must panics if err is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
