// Package fault defines the single error class the protocol core raises.
//
// Every invariant violation, arithmetic overflow, stale read, or
// authorization failure surfaces as a *Fault. There is no recoverable error
// path inside the core: a non-nil error aborts the operation. A Fault does
// not roll anything back: mutations an operation applied before it faulted
// stay in place.
package fault

import (
	"errors"
	"fmt"
)

// Category classifies a Fault for metrics and logging. Categories are not a
// second error class: every category still aborts the calling operation.
type Category string

const (
	Overflow            Category = "overflow"
	InsufficientBalance Category = "insufficient_balance"
	Uninitialized       Category = "uninitialized"
	Stale               Category = "stale"
	Unauthorized        Category = "unauthorized"
	InvalidState        Category = "invalid_state"
	InvalidArgument      Category = "invalid_argument"
)

// Fault is the protocol's single fatal error type.
type Fault struct {
	Category Category
	Message  string
	Err      error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Category, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

func (f *Fault) Unwrap() error { return f.Err }

// New constructs a Fault in the given category.
func New(category Category, format string, args ...any) *Fault {
	return &Fault{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a category and message to an underlying error.
func Wrap(category Category, err error, format string, args ...any) *Fault {
	return &Fault{Category: category, Message: fmt.Sprintf(format, args...), Err: err}
}

// Is reports whether err is a *Fault of the given category.
func Is(err error, category Category) bool {
	var f *Fault
	if !errors.As(err, &f) {
		return false
	}
	return f.Category == category
}
