package translate_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resultguard/internal/shared"
	"resultguard/internal/translate"
)

func TestSeverity_Level(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, translate.SeverityInfo.Level())
	assert.Equal(t, slog.LevelWarn, translate.SeverityWarn.Level())
	assert.Equal(t, slog.LevelError, translate.SeverityError.Level())
	assert.Equal(t, "warn", translate.SeverityWarn.String())
}

func TestSlogLogger_WritesRecordAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := translate.New(translate.NewSlogLogger(l))

	tr.Translate(shared.Unauthorized("token expired"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "unauthorized operation: token expired", line["msg"])
	assert.Equal(t, "Unauthorized", line["kind"])
	assert.EqualValues(t, 401, line["code"])
	assert.NotContains(t, line, "diagnostic")
}

func TestSlogLogger_ErrorCarriesDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	tr := translate.New(translate.NewSlogLogger(l))

	tr.Translate(shared.Internal("nil map write", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Contains(t, line["diagnostic"], "nil map write")
}

func TestSlogLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	tr := translate.New(translate.NewSlogLogger(l))

	tr.Translate(shared.Validation(shared.FieldError{Field: "a", Message: "b"}))

	assert.Empty(t, buf.String())
}
