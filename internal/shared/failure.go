package shared

import (
	"fmt"
	"runtime"
	"strings"
)

// FieldError is a single per-field validation message.
type FieldError struct {
	Field   string
	Message string
}

// ArgumentProblem distinguishes the InvalidArgument sub-kinds.
type ArgumentProblem int

const (
	// ArgIllegal is a caller-supplied value rejected by the handler.
	ArgIllegal ArgumentProblem = iota
	// ArgMissing is a required parameter that was not supplied.
	ArgMissing
	// ArgTypeMismatch is a parameter that could not be converted to its type.
	ArgTypeMismatch
)

// String returns the string representation of the ArgumentProblem.
func (p ArgumentProblem) String() string {
	switch p {
	case ArgMissing:
		return "Missing"
	case ArgTypeMismatch:
		return "TypeMismatch"
	default:
		return "Illegal"
	}
}

// Failure is a classified cause of request termination.
// Exactly one Kind is set per instance; kinds are never combined. Chains of
// several failures are built with Wrap or errors.Join instead.
type Failure struct {
	Kind    Kind
	Message string

	// Fields is only populated for KindValidation, in reporting order.
	Fields []FieldError

	// Argument is only meaningful for KindInvalidArgument.
	Argument ArgumentProblem

	cause error
	stack []uintptr
}

// Error implements error.
func (f *Failure) Error() string {
	s := SentinelOf(f.Kind)
	if s == nil {
		if f.Message == "" {
			return "internal error"
		}
		return f.Message
	}
	prefix := s.Error()
	if f.Message == "" {
		return prefix
	}
	return prefix + ": " + f.Message
}

// Unwrap returns the cause, if any.
func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.cause
}

// Is reports whether target is the sentinel of this failure's kind.
func (f *Failure) Is(target error) bool {
	s := SentinelOf(f.Kind)
	return s != nil && s == target
}

// Stack returns the program counters captured when the failure was created.
// Only generic failures capture a stack.
func (f *Failure) Stack() []uintptr { return f.stack }

// StackTrace formats the captured stack one frame per line.
func (f *Failure) StackTrace() string {
	if len(f.stack) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(f.stack)
	for {
		fr, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", fr.Function, fr.File, fr.Line)
		if !more {
			break
		}
	}
	return b.String()
}

func newFailure(kind Kind, msg string, cause error) *Failure {
	return &Failure{Kind: kind, Message: msg, cause: cause}
}

// Internal creates an unclassified failure and captures the caller's stack.
func Internal(msg string, cause error) *Failure {
	f := newFailure(KindGeneric, msg, cause)
	f.stack = callers(3)
	return f
}

// Recovered converts a recovered panic value into a generic failure.
// The stack is captured at the recovery site, which for deferred recover
// calls still includes the panicking frames.
func Recovered(v any) *Failure {
	var cause error
	switch x := v.(type) {
	case error:
		cause = x
	default:
		cause = fmt.Errorf("%v", x)
	}
	f := newFailure(KindGeneric, "panic: "+cause.Error(), cause)
	f.stack = callers(3)
	return f
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

// Connection creates a connection failure.
func Connection(msg string, cause error) *Failure {
	return newFailure(KindConnection, msg, cause)
}

// BusinessRule creates a business rule violation.
func BusinessRule(msg string) *Failure {
	return newFailure(KindBusinessRule, msg, nil)
}

// BusinessRulef creates a business rule violation with a formatted message.
func BusinessRulef(format string, args ...any) *Failure {
	return newFailure(KindBusinessRule, fmt.Sprintf(format, args...), nil)
}

// Unauthorized creates an unauthorized-operation failure. Its message is
// shown to clients as is, so it must not carry internal details.
func Unauthorized(msg string) *Failure {
	return newFailure(KindUnauthorized, msg, nil)
}

// Transport creates a protocol-level request failure.
func Transport(msg string, cause error) *Failure {
	return newFailure(KindTransport, msg, cause)
}

// UnsupportedMethod creates a failure for a method the route does not accept.
func UnsupportedMethod(method, path string) *Failure {
	return newFailure(KindUnsupportedMedia, fmt.Sprintf("method %s not supported for %s", method, path), nil)
}

// UnsupportedMediaType creates a failure for an unaccepted content type.
func UnsupportedMediaType(contentType string) *Failure {
	return newFailure(KindUnsupportedMedia, fmt.Sprintf("content type %q not supported", contentType), nil)
}

// IllegalArgument creates an invalid-argument failure whose message is safe
// to echo back to the caller.
func IllegalArgument(msg string) *Failure {
	f := newFailure(KindInvalidArgument, msg, nil)
	f.Argument = ArgIllegal
	return f
}

// MissingArgument creates a failure for a required parameter that is absent.
func MissingArgument(name string) *Failure {
	f := newFailure(KindInvalidArgument, fmt.Sprintf("required parameter %q is missing", name), nil)
	f.Argument = ArgMissing
	return f
}

// ArgumentTypeMismatch creates a failure for a parameter that failed conversion.
func ArgumentTypeMismatch(name string, cause error) *Failure {
	f := newFailure(KindInvalidArgument, fmt.Sprintf("parameter %q has the wrong type", name), cause)
	f.Argument = ArgTypeMismatch
	return f
}

// Validation creates a validation failure from per-field errors, kept in
// the order given.
func Validation(fields ...FieldError) *Failure {
	f := newFailure(KindValidation, fmt.Sprintf("%d field error(s)", len(fields)), nil)
	f.Fields = fields
	return f
}

// MessageConversion creates a failure for an undecodable payload.
func MessageConversion(msg string, cause error) *Failure {
	return newFailure(KindMessageConversion, msg, cause)
}

// RouteNotFound creates a failure for a path no handler serves.
func RouteNotFound(method, path string) *Failure {
	return newFailure(KindRouteNotFound, fmt.Sprintf("no handler for %s %s", method, path), nil)
}

// PayloadTooLarge creates a failure for a body larger than limit bytes.
func PayloadTooLarge(limit int64, cause error) *Failure {
	return newFailure(KindPayloadTooLarge, fmt.Sprintf("request body exceeds %d bytes", limit), cause)
}

// FailureOf returns the first deciding failure of the given kind, in branch
// order. Causes of a failure are not searched.
func FailureOf(err error, kind Kind) (*Failure, bool) {
	if err == nil || kind == KindGeneric {
		return nil, false
	}
	for _, f := range Decisive(err) {
		if f.Kind == kind {
			return f, true
		}
	}
	return nil, false
}
