package web

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"resultguard/internal/shared"
)

// BindJSON decodes the body into v and runs gin's struct validation.
// Decoder, size and validator errors are returned as is; the translator
// recognizes them. Empty and truncated bodies become MessageConversion.
func BindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return shared.MessageConversion("empty request body", err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return shared.MessageConversion("truncated request body", err)
	}
	return err
}

// ParamInt reads an integer from the path, falling back to the query string.
func ParamInt(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	if raw == "" {
		raw = c.Query(name)
	}
	if raw == "" {
		return 0, shared.MissingArgument(name)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, shared.ArgumentTypeMismatch(name, err)
	}
	return n, nil
}
