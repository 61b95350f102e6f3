// file: internals/apperr/list.go
package apperr

import "strings"

// List aggregates several domain errors from one batch operation, so a
// ballot with three bad targets reports all three instead of the first.
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	parts := make([]string, 0, len(l))
	for _, e := range l {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// First returns the leading error, which also decides the HTTP status.
func (l List) First() *Error {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// Unwrap lets errors.As find the first entry, so KindOf works on a List.
func (l List) Unwrap() error {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// Flatten returns err itself for single errors and the contained slice for
// lists; controllers use it to render one message per failure.
func Flatten(err error) []*Error {
	switch t := err.(type) {
	case List:
		return t
	case *Error:
		return []*Error{t}
	default:
		return nil
	}
}
