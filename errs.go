package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Kind identifies the behavioural category of an error raised by the
// library. Kinds are not Go types: every error returned by a public
// function can be matched against one of these sentinels with errors.Is.
type Kind int

const (
	// KindInvalidVariables is raised by a ValidatedKeyMap when a key or
	// value fails the non-null/non-blank invariant.
	KindInvalidVariables Kind = iota + 1
	// KindInvalidPlaceholder is raised by the placeholder engine on a
	// resolution cycle or a malformed PlaceholderSpec.
	KindInvalidPlaceholder
	// KindProvider is raised by a ResourceProvider; always logged and the
	// resource skipped, never surfaced to a Manager.Load caller.
	KindProvider
	// KindLoader is raised by a ResourceLoader; always logged and the
	// resource skipped, never surfaced to a Manager.Load caller.
	KindLoader
	// KindConversion is raised by the typed value resolver on a type
	// mismatch between a tree node and the requested Go type.
	KindConversion
	// KindMissingKey is raised by a convenience typed getter called
	// without a default when the path does not exist.
	KindMissingKey
)

func (k Kind) String() string {
	switch k {
	case KindInvalidVariables:
		return "invalid variables"
	case KindInvalidPlaceholder:
		return "invalid placeholder"
	case KindProvider:
		return "provider error"
	case KindLoader:
		return "loader error"
	case KindConversion:
		return "conversion error"
	case KindMissingKey:
		return "missing key"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type carrying a Kind. Every error the
// library raises on purpose (as opposed to a wrapped third-party error)
// is an *Error, so callers can discriminate with errors.Is against the
// package-level sentinels below.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes *Error match the Kind sentinels (ErrInvalidVariables etc.)
// via errors.Is, without requiring callers to compare Kind fields by hand.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.Kind == e.Kind && sentinel.Msg == ""
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// NewProviderError builds a *Error{Kind: KindProvider} for use by
// ResourceProvider implementations living outside this package (the
// bundled providers/classpath and providers/file packages).
func NewProviderError(msg string) *Error { return newError(KindProvider, msg, nil) }

// NewLoaderError builds a *Error{Kind: KindLoader} for use by
// ResourceLoader implementations living outside this package (the
// bundled loaders/* packages).
func NewLoaderError(msg string) *Error { return newError(KindLoader, msg, nil) }

// Sentinels usable with errors.Is(err, config.ErrInvalidPlaceholder) etc.
// They carry no message so Error.Is matches purely on Kind.
var (
	ErrInvalidVariables   = &Error{Kind: KindInvalidVariables}
	ErrInvalidPlaceholder = &Error{Kind: KindInvalidPlaceholder}
	ErrProvider           = &Error{Kind: KindProvider}
	ErrLoader             = &Error{Kind: KindLoader}
	ErrConversion         = &Error{Kind: KindConversion}
	ErrMissingKey         = &Error{Kind: KindMissingKey}
)

// joinErrors accumulates a batch of independent failures (e.g. every
// invalid entry in a PutAll call) into a single error using the pack's
// go-multierror idiom, or returns nil if errs is empty.
func joinErrors(errs []error) error {
	var result *multierror.Error
	for _, e := range errs {
		result = multierror.Append(result, e)
	}
	return result.ErrorOrNil()
}
