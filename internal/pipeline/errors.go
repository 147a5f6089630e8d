package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a calculation did not produce a plain result.
type Kind int

const (
	InvalidInput Kind = iota + 1
	MapParseError
	// UnsupportedRuleset comes with a valid result that only carries
	// the primary pp value.
	UnsupportedRuleset
	InternalComputationError
)

var kindNames = map[Kind]string{
	InvalidInput:             "invalid input",
	MapParseError:            "map parse error",
	UnsupportedRuleset:       "unsupported ruleset",
	InternalComputationError: "internal computation error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by Run. Op names the step that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

var (
	ErrInvalidInput       = &Error{Kind: InvalidInput}
	ErrMapParse           = &Error{Kind: MapParseError}
	ErrUnsupportedRuleset = &Error{Kind: UnsupportedRuleset}
	ErrInternal           = &Error{Kind: InternalComputationError}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if "" != e.Op {
		msg = e.Op + ": " + msg
	}
	if nil != e.Err {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so the sentinels above work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf reports the Kind of err, or 0 when err is not from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func fail(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
