package tokenizer

import (
	"context"
	"errors"
)

// Kind classifies an Error
type Kind int

const (
	// KindInvalidArgument is a caller contract violation, e.g. a non-positive budget
	KindInvalidArgument Kind = iota + 1
	// KindTokenizer is a failure of the encode/decode capability itself
	KindTokenizer
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindTokenizer:
		return "tokenizer failure"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidArgument matches every Error of KindInvalidArgument with errors.Is
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTokenizerFailure matches every Error of KindTokenizer with errors.Is
	ErrTokenizerFailure = errors.New("tokenizer failure")
)

// Error is the typed error returned by tokenizer, splitter and trimmer operations.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "trimmer.Trim"
	Op string
	// Message is a stable, human readable description
	Message string
	// Err is the underlying cause, if any
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrTokenizerFailure:
		return e.Kind == KindTokenizer
	}
	return false
}

// InvalidArgument returns a KindInvalidArgument error for op.
func InvalidArgument(op string, message string) error {
	return &Error{
		Kind:    KindInvalidArgument,
		Op:      op,
		Message: message,
	}
}

// Failure wraps a tokenizer error for op. Context cancellation and errors that
// are already typed pass through unchanged.
func Failure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{
		Kind: KindTokenizer,
		Op:   op,
		Err:  err,
	}
}

// IsInvalidArgument reports whether err is a KindInvalidArgument error
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
