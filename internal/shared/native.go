package shared

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recognizer converts a single native error (not its chain) into a failure.
type recognizer func(err error) (*Failure, bool)

// recognizers are tried in order; the first hit wins.
var recognizers = []recognizer{
	recognizeMaxBytes,
	recognizeJSON,
	recognizeValidator,
	recognizeNumber,
	recognizeJWT,
	recognizeConnection,
}

// Recognize classifies a stdlib or third-party error that does not carry a
// *Failure itself. Only err is inspected, not the errors it wraps; use
// KindOf or FailureOf to walk a chain.
func Recognize(err error) (*Failure, bool) {
	if err == nil {
		return nil, false
	}
	for _, r := range recognizers {
		if f, ok := r(err); ok {
			f.cause = err
			return f, true
		}
	}
	return nil, false
}

func recognizeMaxBytes(err error) (*Failure, bool) {
	mbe, ok := err.(*http.MaxBytesError)
	if !ok {
		return nil, false
	}
	return &Failure{Kind: KindPayloadTooLarge, Message: fmt.Sprintf("request body exceeds %d bytes", mbe.Limit)}, true
}

func recognizeJSON(err error) (*Failure, bool) {
	switch e := err.(type) {
	case *json.SyntaxError:
		return &Failure{Kind: KindMessageConversion, Message: e.Error()}, true
	case *json.UnmarshalTypeError:
		return &Failure{Kind: KindMessageConversion, Message: e.Error()}, true
	}
	return nil, false
}

func recognizeValidator(err error) (*Failure, bool) {
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}
	fields := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, FieldError{Field: fe.Field(), Message: FieldMessage(fe)})
	}
	f := Validation(fields...)
	return f, true
}

func recognizeNumber(err error) (*Failure, bool) {
	ne, ok := err.(*strconv.NumError)
	if !ok {
		return nil, false
	}
	return &Failure{
		Kind:     KindInvalidArgument,
		Argument: ArgTypeMismatch,
		Message:  fmt.Sprintf("cannot parse %q", ne.Num),
	}, true
}

var jwtErrors = []error{
	jwt.ErrTokenExpired,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenMalformed,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenInvalidClaims,
}

// recognizeJWT passes the token error text through, since clients see it
// verbatim for unauthorized operations. jwt wraps its sentinels with
// multi-%w errors, so the chain walk reaches the sentinel itself.
func recognizeJWT(err error) (*Failure, bool) {
	for _, target := range jwtErrors {
		if err == target {
			return &Failure{Kind: KindUnauthorized, Message: err.Error()}, true
		}
	}
	return nil, false
}

func recognizeConnection(err error) (*Failure, bool) {
	switch e := err.(type) {
	case *pgconn.ConnectError:
		return &Failure{Kind: KindConnection, Message: e.Error()}, true
	case *net.OpError:
		if e.Op == "dial" {
			return &Failure{Kind: KindConnection, Message: e.Error()}, true
		}
	case syscall.Errno:
		if e == syscall.ECONNREFUSED {
			return &Failure{Kind: KindConnection, Message: e.Error()}, true
		}
	}
	return nil, false
}

// FieldMessage renders the default message for a validator field error.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed on %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
