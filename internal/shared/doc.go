// Package shared contains the failure taxonomy used by request handlers and
// the translation layer.
//
// # Failure Kinds
//
// Every failure that ends a request belongs to exactly one Kind:
//
//   - KindConnection: upstream connection could not be made
//   - KindBusinessRule: a business rule rejected the operation
//   - KindUnauthorized: the caller may not perform the operation
//   - KindTransport: malformed request at the protocol level
//   - KindUnsupportedMedia: unsupported method or media type
//   - KindInvalidArgument: missing, mistyped or illegal parameter
//   - KindValidation: per-field payload validation failed
//   - KindMessageConversion: payload could not be decoded
//   - KindRouteNotFound: no handler serves the route
//   - KindPayloadTooLarge: request body exceeded its limit
//   - KindGeneric: anything else
//
// Handlers raise failures with the constructors:
//
//	if qty <= 0 {
//	    return shared.IllegalArgument("quantity must be positive")
//	}
//	if !account.CanWithdraw(amount) {
//	    return shared.BusinessRule("insufficient funds")
//	}
//
// # Classification
//
// KindOf walks each branch of the error chain outermost first and stops at
// the first *Failure or recognized native error. That failure decides the
// kind; its cause is kept for logs but never reclassified. A Generic failure
// wrapping an Unauthorized one is Generic. Only when errors.Join or a
// multi-%w error holds several deciding failures does priority choose:
//
//	Priority | Kind
//	---------|----------------------
//	1        | KindPayloadTooLarge
//	2        | KindRouteNotFound
//	3        | KindMessageConversion
//	4        | KindValidation
//	5        | KindInvalidArgument
//	6        | KindUnsupportedMedia
//	7        | KindTransport
//	8        | KindUnauthorized
//	9        | KindBusinessRule
//	10       | KindConnection
//	-        | KindGeneric (default)
//
// Native errors are recognized without wrapping: *http.MaxBytesError,
// *json.SyntaxError, *json.UnmarshalTypeError, validator.ValidationErrors,
// *strconv.NumError, jwt token errors, *pgconn.ConnectError and dial errors.
//
// # Marking and Wrapping
//
// MarkKind adapts any error into the taxonomy while keeping it reachable
// through errors.Is and errors.As:
//
//	if errors.Is(err, sql.ErrNoRows) {
//	    return shared.MarkKind(err, shared.KindBusinessRule)
//	}
//
// Wrap and Wrapf add context without changing the kind.
//
// # Error Message Style Guide
//
// - Use lowercase messages: "token expired" not "Token expired"
// - Avoid punctuation so messages compose when wrapped
// - Messages of KindUnauthorized and IllegalArgument reach the client, keep
// them free of internal details
package shared
