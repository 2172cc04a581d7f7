package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resultguard/internal/shared"
)

type signup struct {
	Name  string `validate:"required"`
	Age   int    `validate:"gt=0"`
	Email string `validate:"required,email"`
	Role  string `validate:"oneof=admin user"`
}

func TestRecognize_Validator(t *testing.T) {
	err := validator.New().Struct(signup{Email: "nope", Role: "root"})
	require.Error(t, err)

	f, ok := shared.FailureOf(fmt.Errorf("bind: %w", err), shared.KindValidation)
	require.True(t, ok)

	require.Len(t, f.Fields, 4)
	assert.Equal(t, shared.FieldError{Field: "Name", Message: "must not be blank"}, f.Fields[0])
	assert.Equal(t, shared.FieldError{Field: "Age", Message: "must be positive"}, f.Fields[1])
	assert.Equal(t, shared.FieldError{Field: "Email", Message: "must be a valid email address"}, f.Fields[2])
	assert.Equal(t, shared.FieldError{Field: "Role", Message: "must be one of: admin user"}, f.Fields[3])
	assert.ErrorIs(t, f, shared.ErrValidation)
}

func TestRecognize_ValidatorLengths(t *testing.T) {
	type req struct {
		Code  string `validate:"min=3"`
		Count int    `validate:"max=5"`
		Tag   string `validate:"alpha"`
	}

	err := validator.New().Struct(req{Code: "a", Count: 9, Tag: "1"})
	f, ok := shared.Recognize(err)
	require.True(t, ok)

	require.Len(t, f.Fields, 3)
	assert.Equal(t, "must be at least 3 characters", f.Fields[0].Message)
	assert.Equal(t, "must not exceed 5", f.Fields[1].Message)
	assert.Equal(t, "failed on alpha", f.Fields[2].Message)
}

func TestRecognize(t *testing.T) {
	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, json.Unmarshal([]byte("{"), &struct{}{}), &syntaxErr)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, json.Unmarshal([]byte(`{"n":"x"}`), &struct{ N int }{}), &typeErr)

	_, numErr := strconv.ParseInt("12a", 10, 64)

	tests := []struct {
		name string
		err  error
		kind shared.Kind
	}{
		{"max bytes", &http.MaxBytesError{Limit: 10}, shared.KindPayloadTooLarge},
		{"json syntax", syntaxErr, shared.KindMessageConversion},
		{"json type", typeErr, shared.KindMessageConversion},
		{"strconv", numErr, shared.KindInvalidArgument},
		{"jwt expired", jwt.ErrTokenExpired, shared.KindUnauthorized},
		{"jwt malformed", jwt.ErrTokenMalformed, shared.KindUnauthorized},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, shared.KindConnection},
		{"econnrefused", syscall.ECONNREFUSED, shared.KindConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := shared.Recognize(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, f.Kind)
			assert.ErrorIs(t, f, tt.err)
			assert.Equal(t, tt.kind, shared.KindOf(shared.Wrap(tt.err, "ctx")))
		})
	}
}

func TestRecognize_NumberIsTypeMismatch(t *testing.T) {
	_, err := strconv.Atoi("seven")

	f, ok := shared.Recognize(err)
	require.True(t, ok)
	assert.Equal(t, shared.ArgTypeMismatch, f.Argument)
	assert.Equal(t, `cannot parse "seven"`, f.Message)
}

func TestRecognize_Unknown(t *testing.T) {
	tests := []error{
		nil,
		errors.New("plain"),
		&net.OpError{Op: "read", Err: errors.New("reset")},
		syscall.EPIPE,
		shared.BusinessRule("already a failure"),
	}

	for _, err := range tests {
		_, ok := shared.Recognize(err)
		assert.False(t, ok, "%v", err)
	}
}

func TestRecognize_JWTParseError(t *testing.T) {
	key := []byte("secret")
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) { return key, nil })
	require.Error(t, err)

	f, ok := shared.FailureOf(err, shared.KindUnauthorized)
	require.True(t, ok)
	assert.Contains(t, []string{jwt.ErrTokenInvalidClaims.Error(), jwt.ErrTokenExpired.Error()}, f.Message)
}

// connectClosedPort dials a local port nothing listens on.
func connectClosedPort(t *testing.T) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgconn.Connect(ctx, "postgres://app@127.0.0.1:1/orders?sslmode=disable&connect_timeout=2")
	if conn != nil {
		_ = conn.Close(ctx)
	}
	require.Error(t, err)
	return err
}

func TestRecognize_PgConnectError(t *testing.T) {
	err := connectClosedPort(t)

	var connectErr *pgconn.ConnectError
	require.ErrorAs(t, err, &connectErr)

	f, ok := shared.Recognize(connectErr)
	require.True(t, ok)
	assert.Equal(t, shared.KindConnection, f.Kind)
	assert.ErrorIs(t, f, shared.ErrConnection)
	assert.Equal(t, shared.KindConnection, shared.KindOf(shared.Wrap(err, "load orders")))
}
