// Package shared contains the failure taxonomy used across the application.
package shared

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors, one per classified failure kind.
var (
	// ErrConnection indicates that an upstream connection could not be made
	ErrConnection = errors.New("connection failure")

	// ErrBusinessRule indicates that a business rule rejected the operation
	ErrBusinessRule = errors.New("business rule violated")

	// ErrUnauthorized indicates that the caller may not perform the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransport indicates a malformed request at the protocol level
	ErrTransport = errors.New("transport protocol error")

	// ErrUnsupportedMedia indicates an unsupported request method or media type
	ErrUnsupportedMedia = errors.New("unsupported method or media type")

	// ErrInvalidArgument indicates a missing, mistyped or illegal parameter
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation indicates that payload validation failed
	ErrValidation = errors.New("validation failed")

	// ErrMessageConversion indicates that the payload could not be decoded
	ErrMessageConversion = errors.New("message conversion failed")

	// ErrRouteNotFound indicates that no handler serves the requested route
	ErrRouteNotFound = errors.New("route not found")

	// ErrPayloadTooLarge indicates that the request body exceeded its limit
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Kind represents a category of failure.
type Kind int

const (
	// KindGeneric represents an unclassified failure
	KindGeneric Kind = iota
	// KindConnection represents upstream connection failures
	KindConnection
	// KindBusinessRule represents business rule violations
	KindBusinessRule
	// KindUnauthorized represents operations the caller may not perform
	KindUnauthorized
	// KindTransport represents protocol-level request errors
	KindTransport
	// KindUnsupportedMedia represents unsupported methods or media types
	KindUnsupportedMedia
	// KindInvalidArgument represents missing, mistyped or illegal parameters
	KindInvalidArgument
	// KindValidation represents per-field payload validation failures
	KindValidation
	// KindMessageConversion represents undecodable payloads
	KindMessageConversion
	// KindRouteNotFound represents requests no handler serves
	KindRouteNotFound
	// KindPayloadTooLarge represents oversized request bodies
	KindPayloadTooLarge
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "Connection"
	case KindBusinessRule:
		return "BusinessRule"
	case KindUnauthorized:
		return "Unauthorized"
	case KindTransport:
		return "Transport"
	case KindUnsupportedMedia:
		return "UnsupportedMedia"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindValidation:
		return "Validation"
	case KindMessageConversion:
		return "MessageConversion"
	case KindRouteNotFound:
		return "RouteNotFound"
	case KindPayloadTooLarge:
		return "PayloadTooLarge"
	default:
		return "Generic"
	}
}

// kindToSentinel maps failure kinds to their corresponding sentinel errors.
var kindToSentinel = map[Kind]error{
	KindConnection:        ErrConnection,
	KindBusinessRule:      ErrBusinessRule,
	KindUnauthorized:      ErrUnauthorized,
	KindTransport:         ErrTransport,
	KindUnsupportedMedia:  ErrUnsupportedMedia,
	KindInvalidArgument:   ErrInvalidArgument,
	KindValidation:        ErrValidation,
	KindMessageConversion: ErrMessageConversion,
	KindRouteNotFound:     ErrRouteNotFound,
	KindPayloadTooLarge:   ErrPayloadTooLarge,
}

// kindPriorities defines the deterministic order for failure classification,
// most specific first. KindGeneric is the implicit default and never listed.
var kindPriorities = []Kind{
	KindPayloadTooLarge,
	KindRouteNotFound,
	KindMessageConversion,
	KindValidation,
	KindInvalidArgument,
	KindUnsupportedMedia,
	KindTransport,
	KindUnauthorized,
	KindBusinessRule,
	KindConnection,
}

// Precedence returns a copy of the classification order used by KindOf.
func Precedence() []Kind {
	out := make([]Kind, len(kindPriorities))
	copy(out, kindPriorities)
	return out
}

// KindOf returns the Kind of the given error.
// Only the deciding failures count (see Decisive): a failure's own cause is
// never consulted. When errors.Join or a multi-%w error holds several
// deciding failures, the first kind in priority order wins.
//
// The classification priority (highest to lowest):
//  1. KindPayloadTooLarge, KindRouteNotFound, KindMessageConversion
//  2. KindValidation, KindInvalidArgument
//  3. KindUnsupportedMedia, KindTransport
//  4. KindUnauthorized, KindBusinessRule, KindConnection
//
// Returns KindGeneric for nil and unrecognized errors.
func KindOf(err error) Kind {
	decisive := Decisive(err)
	for _, kind := range kindPriorities {
		for _, f := range decisive {
			if f.Kind == kind {
				return kind
			}
		}
	}
	return KindGeneric
}

// HasKind reports whether one of the deciding failures of err has kind.
// Unlike KindOf(err) == kind it also reports a lower priority kind held by a
// sibling branch of a joined error.
func HasKind(err error, kind Kind) bool {
	if err == nil {
		return kind == KindGeneric
	}
	if kind == KindGeneric {
		return KindOf(err) == KindGeneric
	}
	_, ok := FailureOf(err, kind)
	return ok
}

// Decisive returns the failures that decide the kind of err, one per branch.
// Each branch is walked outermost first through plain wrappers and stops at
// the first *Failure or recognized native error (see Recognize). Whatever
// that failure wraps is left alone. Only errors.Join and multi-%w errors
// split the walk into branches.
func Decisive(err error) []*Failure {
	var out []*Failure
	seen := make(map[error]bool)
	var walk func(e error)
	walk = func(e error) {
		for e != nil && !isSeen(seen, e) {
			if f, ok := e.(*Failure); ok {
				if f != nil {
					out = append(out, f)
				}
				return
			}
			if f, ok := Recognize(e); ok {
				out = append(out, f)
				return
			}
			switch u := e.(type) {
			case interface{ Unwrap() []error }:
				for _, branch := range u.Unwrap() {
					walk(branch)
				}
				return
			case interface{ Unwrap() error }:
				e = u.Unwrap()
			default:
				return
			}
		}
	}
	walk(err)
	return out
}

// SentinelOf returns the sentinel error for the given Kind.
// For KindGeneric, it returns nil.
func SentinelOf(kind Kind) error {
	if sentinel, exists := kindToSentinel[kind]; exists {
		return sentinel
	}
	return nil
}

// MarkKind wraps an error in a *Failure of the given kind, preserving the
// original error as its cause. The failure message is the original message.
// If err is nil, returns a bare failure of the kind (or nil for KindGeneric).
// If kind is KindGeneric, returns the original error unchanged.
//
// This function is idempotent: marking an error with a kind it already has
// returns the error unchanged.
//
// Example usage for adapting third-party errors:
//
//	if errors.Is(err, sql.ErrNoRows) {
//	    return shared.MarkKind(err, shared.KindBusinessRule)
//	}
func MarkKind(err error, kind Kind) error {
	if kind == KindGeneric {
		return err
	}
	if SentinelOf(kind) == nil {
		return err
	}
	if err == nil {
		return newFailure(kind, "", nil)
	}
	if HasKind(err, kind) {
		return err
	}
	return newFailure(kind, err.Error(), err)
}

// Wrap wraps an error with additional context.
// It returns a new error that formats as "context: err".
// If err is nil, Wrap returns nil.
// If context is empty, returns the original error.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	if context == "" {
		return err
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
// If formatted context is empty, returns the original error.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	context := fmt.Sprintf(format, args...)
	if context == "" {
		return err
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Cause returns the deepest error in the chain.
// For errors.Join, returns the last leaf reached in breadth-first order.
// If err is nil, Cause returns nil.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	all := UnwrapAll(err)
	for i := len(all) - 1; i >= 0; i-- {
		candidate := all[i]
		hasNested := false
		if unwrapper, ok := candidate.(interface{ Unwrap() []error }); ok {
			hasNested = len(unwrapper.Unwrap()) > 0
		} else {
			hasNested = errors.Unwrap(candidate) != nil
		}
		if !hasNested {
			return candidate
		}
	}
	return err
}

// UnwrapAll returns all errors in the error chain, from outermost to innermost.
// The first element is the original error, and the remaining are causes.
// For errors created with errors.Join, this flattens the entire error graph.
// If err is nil, returns nil slice.
func UnwrapAll(err error) []error {
	if err == nil {
		return nil
	}

	var result []error
	seen := make(map[error]bool) // prevent infinite loops
	queue := []error{err}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == nil || isSeen(seen, current) {
			continue
		}
		result = append(result, current)

		if unwrapper, ok := current.(interface{ Unwrap() []error }); ok {
			queue = append(queue, unwrapper.Unwrap()...)
		} else if nested := errors.Unwrap(current); nested != nil {
			queue = append(queue, nested)
		}
	}

	return result
}

// isSeen records err in seen and reports whether it was already there.
// Errors with uncomparable dynamic types (validator.ValidationErrors is a
// slice) cannot be map keys and are never deduplicated.
func isSeen(seen map[error]bool, err error) bool {
	if !reflect.TypeOf(err).Comparable() {
		return false
	}
	if seen[err] {
		return true
	}
	seen[err] = true
	return false
}
