package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Env  string `validate:"required,oneof=dev prod"`
	HTTP struct {
		Addr         string `validate:"required"`
		MaxBodyBytes int64  `validate:"gt=0"`
		// MirrorStatus writes the result code as the HTTP status when it is a
		// valid one. Otherwise every translated failure is sent with 200.
		MirrorStatus bool
	}
	Log struct {
		ConsoleLevel string `validate:"required,oneof=debug info warn error"`
		FileLevel    string `validate:"required,oneof=debug info warn error"`
		File         string
	}
	Metrics struct {
		Namespace string `validate:"required"`
	}
}

var validate = validator.New()

// Load reads configuration from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	c.Env = getenv("ENV", "prod")
	c.HTTP.Addr = getenv("HTTP_ADDR", ":8080")
	c.Log.ConsoleLevel = strings.ToLower(getenv("LOG_CONSOLE_LEVEL", "info"))
	c.Log.FileLevel = strings.ToLower(getenv("LOG_FILE_LEVEL", "debug"))
	c.Log.File = getenv("LOG_FILE", "data/logs/resultguard.log")
	c.Metrics.Namespace = getenv("METRICS_NAMESPACE", "resultguard")

	var err error
	if c.HTTP.MaxBodyBytes, err = strconv.ParseInt(getenv("HTTP_MAX_BODY_BYTES", "10485760"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("HTTP_MAX_BODY_BYTES: %w", err)
	}
	if c.HTTP.MirrorStatus, err = strconv.ParseBool(getenv("HTTP_MIRROR_STATUS", "false")); err != nil {
		return Config{}, fmt.Errorf("HTTP_MIRROR_STATUS: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
