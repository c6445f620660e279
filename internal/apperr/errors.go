// Package apperr defines the error taxonomy shared across the layout
// engine and its command-line tools.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the CLI entrypoints can map it to an exit
// code without inspecting error text.
type Kind int

const (
	// Internal is the zero value and covers unexpected failures in the
	// concurrency substrate or emitter.
	Internal Kind = iota
	Usage
	Input
	Config
	NoFeasiblePacking
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage error"
	case Input:
		return "input error"
	case Config:
		return "config error"
	case NoFeasiblePacking:
		return "no feasible packing"
	default:
		return "internal error"
	}
}

// ExitCode returns the process exit code for a Kind, per the CLI contract:
// 0 success, 1 usage, 2 input, 3 no feasible packing, other non-zero for
// internal failures.
func (k Kind) ExitCode() int {
	switch k {
	case Usage:
		return 1
	case Input, Config:
		return 2
	case NoFeasiblePacking:
		return 3
	default:
		return 70
	}
}

// Error wraps a cause with a Kind so callers can branch on classification
// while still getting a normal wrapped error chain.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind wrapping err. Returns nil if err
// is nil, so it composes with the common `if err != nil { return apperr.New(...) }`
// idiom without an extra guard at call sites.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds an *Error from a format string.
func Newf(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err's chain, defaulting to Internal when
// err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
