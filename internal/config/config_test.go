package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("HTTP_MAX_BODY_BYTES", "")
	t.Setenv("HTTP_MIRROR_STATUS", "")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", c.Env)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, int64(10<<20), c.HTTP.MaxBodyBytes)
	assert.False(t, c.HTTP.MirrorStatus)
	assert.Equal(t, "info", c.Log.ConsoleLevel)
	assert.Equal(t, "resultguard", c.Metrics.Namespace)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("HTTP_MAX_BODY_BYTES", "2048")
	t.Setenv("HTTP_MIRROR_STATUS", "true")
	t.Setenv("LOG_CONSOLE_LEVEL", "WARN")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", c.Env)
	assert.Equal(t, ":9000", c.HTTP.Addr)
	assert.Equal(t, int64(2048), c.HTTP.MaxBodyBytes)
	assert.True(t, c.HTTP.MirrorStatus)
	assert.Equal(t, "warn", c.Log.ConsoleLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown env", "ENV", "staging"},
		{"bad level", "LOG_FILE_LEVEL", "trace"},
		{"body size not a number", "HTTP_MAX_BODY_BYTES", "ten"},
		{"body size not positive", "HTTP_MAX_BODY_BYTES", "-1"},
		{"mirror not a bool", "HTTP_MIRROR_STATUS", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
